package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReconcileOwes recomputes drifted owes flags on sales.
	TaskReconcileOwes = "sales:reconcile_owes"
	// TaskPurgeTokens sweeps the token store and reports the live count.
	TaskPurgeTokens = "auth:purge_tokens"
)

// NewReconcileOwesTask constructs the owes reconciliation task.
func NewReconcileOwesTask() *asynq.Task {
	return asynq.NewTask(TaskReconcileOwes, nil)
}

// NewPurgeTokensTask constructs the token sweep task.
func NewPurgeTokensTask() *asynq.Task {
	return asynq.NewTask(TaskPurgeTokens, nil)
}

// SalesReconciler is the slice of the sales service the worker needs.
type SalesReconciler interface {
	ReconcileOwes(ctx context.Context) (int64, error)
}

// TokenCounter is the slice of the token store the worker needs.
type TokenCounter interface {
	Count(ctx context.Context) (int64, error)
}

// NewReconcileOwesHandler returns the asynq handler for TaskReconcileOwes.
// The update is idempotent, so retries are safe.
func NewReconcileOwesHandler(logger *slog.Logger, reconciler SalesReconciler) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		corrected, err := reconciler.ReconcileOwes(ctx)
		if err != nil {
			logger.Error("owes reconciliation failed", slog.Any("error", err))
			return err
		}
		logger.Info("owes reconciliation done", slog.Int64("corrected", corrected))
		return nil
	}
}

// NewPurgeTokensHandler returns the asynq handler for TaskPurgeTokens.
// Expiry itself is handled by Redis TTLs; this sweep only observes.
func NewPurgeTokensHandler(logger *slog.Logger, counter TokenCounter) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		live, err := counter.Count(ctx)
		if err != nil {
			logger.Error("token sweep failed", slog.Any("error", err))
			return err
		}
		logger.Info("token sweep done", slog.Int64("live_tokens", live))
		return nil
	}
}
