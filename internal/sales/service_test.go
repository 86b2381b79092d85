package sales_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline/internal/customers"
	"github.com/ledgerline/ledgerline/internal/sales"
)

type stubSaleRepo struct {
	byID        map[int64]sales.Sale
	lines       map[int64][]sales.SaleLine
	nextID      int64
	reconciled  int64
	listByPages [][]sales.Sale
	listTotal   int
	listCalls   int
}

func newStubSaleRepo() *stubSaleRepo {
	return &stubSaleRepo{
		byID:   make(map[int64]sales.Sale),
		lines:  make(map[int64][]sales.SaleLine),
		nextID: 1,
	}
}

func (s *stubSaleRepo) WithTx(ctx context.Context, fn func(context.Context, sales.Repository) error) error {
	return fn(ctx, s)
}

func (s *stubSaleRepo) Get(ctx context.Context, id int64) (*sales.Sale, error) {
	sale, ok := s.byID[id]
	if !ok {
		return nil, sales.ErrNotFound
	}
	sale.Lines = s.lines[id]
	return &sale, nil
}

func (s *stubSaleRepo) List(ctx context.Context, req sales.ListSalesRequest) ([]sales.Sale, int, error) {
	if s.listByPages != nil {
		if s.listCalls >= len(s.listByPages) {
			return nil, s.listTotal, nil
		}
		page := s.listByPages[s.listCalls]
		s.listCalls++
		return page, s.listTotal, nil
	}
	var out []sales.Sale
	for _, sale := range s.byID {
		out = append(out, sale)
	}
	return out, len(out), nil
}

func (s *stubSaleRepo) Create(ctx context.Context, sale sales.Sale) (int64, error) {
	id := s.nextID
	s.nextID++
	sale.ID = id
	s.byID[id] = sale
	return id, nil
}

func (s *stubSaleRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	sale, ok := s.byID[id]
	if !ok {
		return sales.ErrNotFound
	}
	if v, ok := updates["total_price"]; ok {
		sale.TotalPrice = v.(float64)
	}
	if v, ok := updates["partial_payment"]; ok {
		sale.PartialPayment = v.(float64)
	}
	if v, ok := updates["owes"]; ok {
		sale.Owes = v.(bool)
	}
	s.byID[id] = sale
	return nil
}

func (s *stubSaleRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := s.byID[id]; !ok {
		return sales.ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

func (s *stubSaleRepo) InsertLine(ctx context.Context, line sales.SaleLine) (int64, error) {
	line.ID = int64(len(s.lines[line.SaleID]) + 1)
	s.lines[line.SaleID] = append(s.lines[line.SaleID], line)
	return line.ID, nil
}

func (s *stubSaleRepo) DeleteLines(ctx context.Context, saleID int64) error {
	delete(s.lines, saleID)
	return nil
}

func (s *stubSaleRepo) GetLines(ctx context.Context, saleID int64) ([]sales.SaleLine, error) {
	return s.lines[saleID], nil
}

func (s *stubSaleRepo) ReconcileOwes(ctx context.Context) (int64, error) {
	return s.reconciled, nil
}

type stubCustomerRepo struct{}

func (stubCustomerRepo) WithTx(ctx context.Context, fn func(context.Context, customers.Repository) error) error {
	return fn(ctx, stubCustomerRepo{})
}

func (stubCustomerRepo) Get(ctx context.Context, id int64) (*customers.Customer, error) {
	return &customers.Customer{ID: id, Name: "Stub"}, nil
}

func (stubCustomerRepo) List(ctx context.Context, req customers.ListCustomersRequest) ([]customers.Customer, int, error) {
	return nil, 0, nil
}

func (stubCustomerRepo) Create(ctx context.Context, c customers.Customer) (int64, error) {
	return 0, nil
}

func (stubCustomerRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	return nil
}

func (stubCustomerRepo) Delete(ctx context.Context, id int64) error {
	return nil
}

func TestCreateDerivesOwes(t *testing.T) {
	repo := newStubSaleRepo()
	svc := sales.NewService(repo, stubCustomerRepo{})

	sale, err := svc.Create(context.Background(), sales.CreateSaleRequest{
		SaleDate:       time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC),
		PartialPayment: 100,
		Lines: []sales.SaleLineRequest{
			{ProductID: 1, Quantity: 13, UnitPrice: 15.99, ThirteenDozen: true},
		},
	})
	require.NoError(t, err)

	assert.InDelta(t, 15.99*12, sale.TotalPrice, 1e-9)
	assert.True(t, sale.Owes, "partial payment below total")
}

func TestCreateSettledSaleDoesNotOwe(t *testing.T) {
	repo := newStubSaleRepo()
	svc := sales.NewService(repo, stubCustomerRepo{})

	sale, err := svc.Create(context.Background(), sales.CreateSaleRequest{
		SaleDate:       time.Now(),
		PartialPayment: 20,
		Lines:          []sales.SaleLineRequest{{ProductID: 1, Quantity: 2, UnitPrice: 10}},
	})
	require.NoError(t, err)

	assert.InDelta(t, 20, sale.TotalPrice, 1e-9)
	assert.False(t, sale.Owes, "payment equal to total settles the sale")
}

func TestUpdatePartialPaymentRecomputesOwes(t *testing.T) {
	repo := newStubSaleRepo()
	svc := sales.NewService(repo, stubCustomerRepo{})

	created, err := svc.Create(context.Background(), sales.CreateSaleRequest{
		SaleDate:       time.Now(),
		PartialPayment: 5,
		Lines:          []sales.SaleLineRequest{{ProductID: 1, Quantity: 2, UnitPrice: 10}},
	})
	require.NoError(t, err)
	require.True(t, created.Owes)

	paid := 20.0
	updated, err := svc.Update(context.Background(), created.ID, sales.UpdateSaleRequest{PartialPayment: &paid})
	require.NoError(t, err)
	assert.False(t, updated.Owes)
}

func TestUpdateLinesRecomputesTotalAndOwes(t *testing.T) {
	repo := newStubSaleRepo()
	svc := sales.NewService(repo, stubCustomerRepo{})

	created, err := svc.Create(context.Background(), sales.CreateSaleRequest{
		SaleDate:       time.Now(),
		PartialPayment: 20,
		Lines:          []sales.SaleLineRequest{{ProductID: 1, Quantity: 2, UnitPrice: 10}},
	})
	require.NoError(t, err)
	require.False(t, created.Owes)

	bigger := []sales.SaleLineRequest{{ProductID: 1, Quantity: 5, UnitPrice: 10}}
	updated, err := svc.Update(context.Background(), created.ID, sales.UpdateSaleRequest{Lines: &bigger})
	require.NoError(t, err)

	assert.InDelta(t, 50, updated.TotalPrice, 1e-9)
	assert.True(t, updated.Owes, "total grew past the recorded payment")
}

func TestExportCSVPagesThroughEverything(t *testing.T) {
	note := "wholesale"
	customerID := int64(3)
	repo := newStubSaleRepo()
	repo.listTotal = 3
	repo.listByPages = [][]sales.Sale{
		{
			{ID: 1, SaleDate: time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), TotalPrice: 10412.5, PartialPayment: 400, Owes: true, Notes: &note},
			{ID: 2, SaleDate: time.Date(2026, 1, 6, 0, 0, 0, 0, time.UTC), TotalPrice: 25, PartialPayment: 25},
		},
		{
			{ID: 3, CustomerID: &customerID, SaleDate: time.Date(2026, 1, 7, 0, 0, 0, 0, time.UTC), TotalPrice: 99.9, PartialPayment: 99.9},
		},
	}
	svc := sales.NewService(repo, stubCustomerRepo{})

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCSV(context.Background(), &buf, sales.ListSalesRequest{}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4, "header plus three rows")
	assert.Equal(t, "id,customer_id,sale_date,total_price,partial_payment,owes,notes", lines[0])
	assert.Contains(t, lines[1], `"10,412.50"`)
	assert.Contains(t, lines[1], "true")
	assert.Contains(t, lines[3], "3,2026-01-07,99.90,99.90,false,")
}
