package shared

import (
	"net/http"
	"strconv"
	"strings"
)

const (
	// DefaultLimit applies when a list request omits limit.
	DefaultLimit = 20
	// MaxLimit caps a single page.
	MaxLimit = 200
)

// Page holds offset pagination parameters for list queries.
type Page struct {
	Limit int
	Skip  int
}

// SortDirection is either "asc" or "desc".
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ListQuery carries the common query parameters every list endpoint accepts.
type ListQuery struct {
	Page      Page
	Search    string
	SortBy    string
	Direction SortDirection
}

// ParseListQuery extracts limit/skip/q/sortBy/direction from the request,
// clamping limit into [1, MaxLimit] and skip to >= 0.
func ParseListQuery(r *http.Request) ListQuery {
	q := ListQuery{
		Page:      Page{Limit: DefaultLimit},
		Search:    strings.TrimSpace(r.URL.Query().Get("q")),
		SortBy:    r.URL.Query().Get("sortBy"),
		Direction: SortAsc,
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			q.Page.Limit = parsed
		}
	}
	if q.Page.Limit > MaxLimit {
		q.Page.Limit = MaxLimit
	}
	if v := r.URL.Query().Get("skip"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			q.Page.Skip = parsed
		}
	}
	if strings.EqualFold(r.URL.Query().Get("direction"), "desc") {
		q.Direction = SortDesc
	}
	return q
}

// ListEnvelope is the wire format for paginated list responses.
type ListEnvelope[T any] struct {
	Data  []T `json:"data"`
	Total int `json:"total"`
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// NewListEnvelope builds the response envelope, never emitting a null data array.
func NewListEnvelope[T any](data []T, total int, page Page) ListEnvelope[T] {
	if data == nil {
		data = []T{}
	}
	return ListEnvelope[T]{Data: data, Total: total, Skip: page.Skip, Limit: page.Limit}
}
