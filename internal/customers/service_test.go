package customers_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerline/ledgerline/internal/customers"
)

type stubRepo struct {
	byID    map[int64]customers.Customer
	nextID  int64
	updates map[string]interface{}
	deleted []int64
}

func newStubRepo() *stubRepo {
	return &stubRepo{byID: make(map[int64]customers.Customer), nextID: 1}
}

func (s *stubRepo) WithTx(ctx context.Context, fn func(context.Context, customers.Repository) error) error {
	return fn(ctx, s)
}

func (s *stubRepo) Get(ctx context.Context, id int64) (*customers.Customer, error) {
	c, ok := s.byID[id]
	if !ok {
		return nil, customers.ErrNotFound
	}
	return &c, nil
}

func (s *stubRepo) List(ctx context.Context, req customers.ListCustomersRequest) ([]customers.Customer, int, error) {
	var out []customers.Customer
	for _, c := range s.byID {
		out = append(out, c)
	}
	return out, len(out), nil
}

func (s *stubRepo) Create(ctx context.Context, c customers.Customer) (int64, error) {
	id := s.nextID
	s.nextID++
	c.ID = id
	s.byID[id] = c
	return id, nil
}

func (s *stubRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	if _, ok := s.byID[id]; !ok {
		return customers.ErrNotFound
	}
	s.updates = updates
	c := s.byID[id]
	if v, ok := updates["name"]; ok {
		c.Name = v.(string)
	}
	if v, ok := updates["is_active"]; ok {
		c.IsActive = v.(bool)
	}
	s.byID[id] = c
	return nil
}

func (s *stubRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := s.byID[id]; !ok {
		return customers.ErrNotFound
	}
	delete(s.byID, id)
	s.deleted = append(s.deleted, id)
	return nil
}

func TestCreateSetsActive(t *testing.T) {
	repo := newStubRepo()
	svc := customers.NewService(repo)

	email := "ada@example.com"
	created, err := svc.Create(context.Background(), customers.CreateCustomerRequest{
		Name:  "Ada Lovelace",
		Email: &email,
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)
	assert.Equal(t, "Ada Lovelace", created.Name)
	require.NotNil(t, created.Email)
	assert.Equal(t, email, *created.Email)
}

func TestUpdateOnlySendsChangedColumns(t *testing.T) {
	repo := newStubRepo()
	svc := customers.NewService(repo)

	created, err := svc.Create(context.Background(), customers.CreateCustomerRequest{Name: "Before"})
	require.NoError(t, err)

	name := "After"
	updated, err := svc.Update(context.Background(), created.ID, customers.UpdateCustomerRequest{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "After", updated.Name)
	assert.Len(t, repo.updates, 1)
	assert.Contains(t, repo.updates, "name")
}

func TestUpdateWithoutchangesReturnsExisting(t *testing.T) {
	repo := newStubRepo()
	svc := customers.NewService(repo)

	created, err := svc.Create(context.Background(), customers.CreateCustomerRequest{Name: "Same"})
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), created.ID, customers.UpdateCustomerRequest{})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Nil(t, repo.updates)
}

func TestUpdateMissingCustomer(t *testing.T) {
	svc := customers.NewService(newStubRepo())

	name := "Ghost"
	_, err := svc.Update(context.Background(), 404, customers.UpdateCustomerRequest{Name: &name})
	assert.ErrorIs(t, err, customers.ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo := newStubRepo()
	svc := customers.NewService(repo)

	created, err := svc.Create(context.Background(), customers.CreateCustomerRequest{Name: "Bye"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.ID))
	assert.Equal(t, []int64{created.ID}, repo.deleted)

	err = svc.Delete(context.Background(), created.ID)
	assert.ErrorIs(t, err, customers.ErrNotFound)
}
