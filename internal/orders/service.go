package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/ledgerline/ledgerline/internal/customers"
	"github.com/ledgerline/ledgerline/internal/sales/pricing"
)

var ErrInvalidStatus = errors.New("invalid status transition")

type Service struct {
	repo         Repository
	customerRepo customers.Repository
}

func NewService(repo Repository, customerRepo customers.Repository) *Service {
	return &Service{repo: repo, customerRepo: customerRepo}
}

func buildLines(orderID int64, reqs []OrderLineRequest) ([]OrderLine, float64) {
	var total float64
	lines := make([]OrderLine, 0, len(reqs))
	for i, lineReq := range reqs {
		lineTotal := pricing.LineTotal(lineReq.UnitPrice, lineReq.Quantity, lineReq.ThirteenDozen)
		total += lineTotal

		line := OrderLine{
			OrderID:       orderID,
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

func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (*Order, error) {
	if _, err := s.customerRepo.Get(ctx, req.CustomerID); err != nil {
		return nil, fmt.Errorf("verify customer: %w", err)
	}

	lines, total := buildLines(0, req.Lines)

	order := Order{
		CustomerID:   req.CustomerID,
		Status:       OrderStatusPending,
		OrderDate:    req.OrderDate,
		DeliveryDate: req.DeliveryDate,
		TotalPrice:   total,
		Notes:        req.Notes,
	}

	var orderID int64
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		id, err := repo.Create(ctx, order)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}
		orderID = id

		for _, line := range lines {
			line.OrderID = orderID
			if _, err := repo.InsertLine(ctx, line); err != nil {
				return fmt.Errorf("insert order line: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.repo.Get(ctx, orderID)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateOrderRequest) (*Order, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	if req.Lines != nil && existing.Status != OrderStatusPending {
		return nil, fmt.Errorf("%w: lines can only change on PENDING orders", ErrInvalidStatus)
	}

	updates := make(map[string]interface{})
	if req.OrderDate != nil {
		updates["order_date"] = *req.OrderDate
	}
	if req.DeliveryDate != nil {
		updates["delivery_date"] = *req.DeliveryDate
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}
	if req.Status != nil {
		if !ValidStatus(*req.Status) {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidStatus, *req.Status)
		}
		if existing.Status == OrderStatusCancelled && *req.Status != OrderStatusCancelled {
			return nil, fmt.Errorf("%w: cancelled orders stay cancelled", ErrInvalidStatus)
		}
		updates["status"] = string(*req.Status)
	}

	var linesToInsert []OrderLine
	if req.Lines != nil {
		var total float64
		linesToInsert, total = buildLines(id, *req.Lines)
		updates["total_price"] = total
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if len(updates) > 0 {
			if err := repo.Update(ctx, id, updates); err != nil {
				return err
			}
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
		return nil, fmt.Errorf("update order: %w", err)
	}

	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		return repo.Delete(ctx, id)
	})
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}
