package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ledgerline/ledgerline/pkg/liststore"
)

// List is the envelope every collection endpoint returns.
type List[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// ListParams are the query parameters accepted by collection endpoints.
// Filters carries resource-specific keys (e.g. "status", "minPrice")
// forwarded verbatim.
type ListParams struct {
	Limit     int
	Skip      int
	Search    string
	SortBy    string
	Direction string
	Filters   map[string]string
}

func (p ListParams) values() url.Values {
	v := url.Values{}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Skip > 0 {
		v.Set("skip", strconv.Itoa(p.Skip))
	}
	if p.Search != "" {
		v.Set("q", p.Search)
	}
	if p.SortBy != "" {
		v.Set("sortBy", p.SortBy)
	}
	if p.Direction != "" {
		v.Set("direction", p.Direction)
	}
	for key, value := range p.Filters {
		if value != "" {
			v.Set(key, value)
		}
	}
	return v
}

// Resource is the generic request core behind every typed facade: standard
// list, get, create, update and delete against one collection path.
type Resource[T liststore.Entity] struct {
	client *Client
	path   string
}

// NewResource binds a collection path such as "/customers".
func NewResource[T liststore.Entity](c *Client, path string) *Resource[T] {
	return &Resource[T]{client: c, path: path}
}

func (r *Resource[T]) List(ctx context.Context, params ListParams) (List[T], error) {
	var out List[T]
	err := r.client.do(ctx, http.MethodGet, r.path, params.values(), nil, &out)
	return out, err
}

func (r *Resource[T]) Get(ctx context.Context, id int64) (T, error) {
	var out T
	err := r.client.do(ctx, http.MethodGet, r.itemPath(id), nil, nil, &out)
	return out, err
}

func (r *Resource[T]) Create(ctx context.Context, body any) (T, error) {
	var out T
	err := r.client.do(ctx, http.MethodPost, r.path, nil, body, &out)
	return out, err
}

func (r *Resource[T]) Update(ctx context.Context, id int64, body any) (T, error) {
	var out T
	err := r.client.do(ctx, http.MethodPatch, r.itemPath(id), nil, body, &out)
	return out, err
}

func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	return r.client.do(ctx, http.MethodDelete, r.itemPath(id), nil, nil, nil)
}

func (r *Resource[T]) itemPath(id int64) string {
	return r.path + "/" + strconv.FormatInt(id, 10)
}

// StoreOps adapts the resource to a list store backend, so one store per
// screen drives pagination and optimistic merge over this resource.
func (r *Resource[T]) StoreOps() liststore.Ops[T] {
	return liststore.Ops[T]{
		FetchPage: func(ctx context.Context, q liststore.Query, skip int) (liststore.Page[T], error) {
			out, err := r.List(ctx, ListParams{
				Limit:     q.Limit,
				Skip:      skip,
				Search:    q.Search,
				SortBy:    q.SortBy,
				Direction: q.Direction,
				Filters:   q.Filters,
			})
			if err != nil {
				return liststore.Page[T]{}, err
			}
			return liststore.Page[T]{Items: out.Data, Total: out.Total, Skip: out.Skip, Limit: out.Limit}, nil
		},
		Create: func(ctx context.Context, draft any) (T, error) {
			return r.Create(ctx, draft)
		},
		Update: func(ctx context.Context, id int64, patch any) (T, error) {
			return r.Update(ctx, id, patch)
		},
		Delete: func(ctx context.Context, id int64) error {
			return r.Delete(ctx, id)
		},
	}
}

// CustomersAPI is the typed facade over /customers.
type CustomersAPI struct{ *Resource[Customer] }

func NewCustomersAPI(c *Client) *CustomersAPI {
	return &CustomersAPI{NewResource[Customer](c, "/customers")}
}

// ProductsAPI is the typed facade over /products.
type ProductsAPI struct{ *Resource[Product] }

func NewProductsAPI(c *Client) *ProductsAPI {
	return &ProductsAPI{NewResource[Product](c, "/products")}
}

// OrdersAPI is the typed facade over /orders.
type OrdersAPI struct{ *Resource[Order] }

func NewOrdersAPI(c *Client) *OrdersAPI {
	return &OrdersAPI{NewResource[Order](c, "/orders")}
}

// SalesAPI is the typed facade over /sales.
type SalesAPI struct{ *Resource[Sale] }

func NewSalesAPI(c *Client) *SalesAPI {
	return &SalesAPI{NewResource[Sale](c, "/sales")}
}

// ExportCSV downloads the full sales ledger as CSV.
func (s *SalesAPI) ExportCSV(ctx context.Context) ([]byte, error) {
	return s.Resource.client.download(ctx, "/sales/export")
}

// AuthAPI signs users in and out.
type AuthAPI struct {
	client *Client
}

func NewAuthAPI(c *Client) *AuthAPI {
	return &AuthAPI{client: c}
}

func (a *AuthAPI) Login(ctx context.Context, email, password string) (LoginResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResponse
	err := a.client.do(ctx, http.MethodPost, "/auth/login", nil, body, &out)
	return out, err
}

func (a *AuthAPI) Logout(ctx context.Context) error {
	return a.client.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}
