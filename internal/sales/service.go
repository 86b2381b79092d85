package sales

import (
	"context"
	"fmt"

	"github.com/ledgerline/ledgerline/internal/customers"
	"github.com/ledgerline/ledgerline/internal/sales/pricing"
)

type Service struct {
	repo         Repository
	customerRepo customers.Repository
}

func NewService(repo Repository, customerRepo customers.Repository) *Service {
	return &Service{repo: repo, customerRepo: customerRepo}
}

func buildLines(saleID int64, reqs []SaleLineRequest) ([]SaleLine, float64) {
	var total float64
	lines := make([]SaleLine, 0, len(reqs))
	for i, lineReq := range reqs {
		lineTotal := pricing.LineTotal(lineReq.UnitPrice, lineReq.Quantity, lineReq.ThirteenDozen)
		total += lineTotal

		line := SaleLine{
			SaleID:        saleID,
			ProductID:     lineReq.ProductID,
			Description:   lineReq.Description,
			Quantity:      lineReq.Quantity,
			UnitPrice:     lineReq.UnitPrice,
			ThirteenDozen: lineReq.ThirteenDozen,
			LineTotal:     lineTotal,
			LineOrder:     lineReq.LineOrder,
		}
		if line.LineOrder == 0 {
			line.LineOrder = i + 1
		}
		lines = append(lines, line)
	}
	return lines, total
}

func (s *Service) Create(ctx context.Context, req CreateSaleRequest) (*Sale, error) {
	if req.CustomerID != nil {
		if _, err := s.customerRepo.Get(ctx, *req.CustomerID); err != nil {
			return nil, fmt.Errorf("verify customer: %w", err)
		}
	}

	lines, total := buildLines(0, req.Lines)

	sale := Sale{
		CustomerID:     req.CustomerID,
		SaleDate:       req.SaleDate,
		TotalPrice:     total,
		PartialPayment: req.PartialPayment,
		Owes:           pricing.Owes(req.PartialPayment, total),
		Notes:          req.Notes,
	}

	var saleID int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		id, err := repo.Create(ctx, sale)
		if err != nil {
			return fmt.Errorf("create sale: %w", err)
		}
		saleID = id

		for _, line := range lines {
			line.SaleID = saleID
			if _, err := repo.InsertLine(ctx, line); err != nil {
				return fmt.Errorf("insert sale line: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, saleID)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateSaleRequest) (*Sale, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get sale: %w", err)
	}

	updates := make(map[string]interface{})
	if req.SaleDate != nil {
		updates["sale_date"] = *req.SaleDate
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	// The owes flag is derived: any change to partial payment or lines
	// recomputes it against the effective total.
	total := existing.TotalPrice
	partial := existing.PartialPayment

	var linesToInsert []SaleLine
	if req.Lines != nil {
		linesToInsert, total = buildLines(id, *req.Lines)
		updates["total_price"] = total
	}
	if req.PartialPayment != nil {
		partial = *req.PartialPayment
		updates["partial_payment"] = partial
	}
	if req.Lines != nil || req.PartialPayment != nil {
		updates["owes"] = pricing.Owes(partial, total)
	}

	if len(updates) == 0 {
		return existing, nil
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.Update(ctx, id, updates); err != nil {
			return err
		}
		if req.Lines != nil {
			if err := repo.DeleteLines(ctx, id); err != nil {
				return err
			}
			for _, line := range linesToInsert {
				if _, err := repo.InsertLine(ctx, line); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update sale: %w", err)
	}

	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Sale, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListSalesRequest) ([]Sale, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete sale: %w", err)
	}
	return nil
}

// ReconcileOwes refreshes drifted owes flags. Used by the background worker.
func (s *Service) ReconcileOwes(ctx context.Context) (int64, error) {
	return s.repo.ReconcileOwes(ctx)
}
