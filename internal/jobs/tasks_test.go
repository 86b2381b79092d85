package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline/internal/jobs"
)

type fakeReconciler struct {
	corrected int64
	err       error
	calls     int
}

func (f *fakeReconciler) ReconcileOwes(ctx context.Context) (int64, error) {
	f.calls++
	return f.corrected, f.err
}

type fakeCounter struct {
	live int64
	err  error
}

func (f *fakeCounter) Count(ctx context.Context) (int64, error) {
	return f.live, f.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestReconcileOwesHandler(t *testing.T) {
	reconciler := &fakeReconciler{corrected: 4}
	handler := jobs.NewReconcileOwesHandler(testLogger(), reconciler)

	require.NoError(t, handler(context.Background(), jobs.NewReconcileOwesTask()))
	assert.Equal(t, 1, reconciler.calls)
}

func TestReconcileOwesHandlerPropagatesError(t *testing.T) {
	boom := errors.New("db down")
	handler := jobs.NewReconcileOwesHandler(testLogger(), &fakeReconciler{err: boom})

	err := handler(context.Background(), jobs.NewReconcileOwesTask())
	assert.ErrorIs(t, err, boom)
}

func TestPurgeTokensHandler(t *testing.T) {
	handler := jobs.NewPurgeTokensHandler(testLogger(), &fakeCounter{live: 12})
	require.NoError(t, handler(context.Background(), jobs.NewPurgeTokensTask()))

	boom := errors.New("redis down")
	handler = jobs.NewPurgeTokensHandler(testLogger(), &fakeCounter{err: boom})
	assert.ErrorIs(t, handler(context.Background(), jobs.NewPurgeTokensTask()), boom)
}
