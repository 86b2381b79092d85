// Package liststore implements the shared state machine behind every
// paginated resource list: one fetch pipeline that either replaces or
// appends a page, plus optimistic merge of create, update and delete results
// without refetching.
package liststore

import (
	"context"
	"sync"
)

// Entity is anything the store can hold. The identifier drives merge
// operations, so it must be stable across fetches.
type Entity interface {
	EntityID() int64
}

// Query carries the list parameters forwarded to the backend on every page
// fetch. Skip is owned by the store and not part of the query.
type Query struct {
	Limit     int
	Search    string
	SortBy    string
	Direction string
	Filters   map[string]string
}

// Page is one fetched slice of the collection together with the server's
// view of the whole.
type Page[T Entity] struct {
	Items []T
	Total int
	Skip  int
	Limit int
}

// Ops binds a store to a backend resource. FetchPage is required; the
// mutation funcs may be nil for read-only lists.
type Ops[T Entity] struct {
	FetchPage func(ctx context.Context, q Query, skip int) (Page[T], error)
	Create    func(ctx context.Context, draft any) (T, error)
	Update    func(ctx context.Context, id int64, patch any) (T, error)
	Delete    func(ctx context.Context, id int64) error
}

// Store keeps the accumulated items of one paginated list plus the in-flight
// and error state a view needs to render it. Safe for concurrent use.
type Store[T Entity] struct {
	mu  sync.Mutex
	ops Ops[T]

	items []T
	total int
	skip  int

	loading    bool
	fetching   bool
	submitting bool
	generalErr string
	submitErr  string
	closed     bool
}

// New builds an empty store bound to the given backend operations.
func New[T Entity](ops Ops[T]) *Store[T] {
	return &Store[T]{ops: ops}
}

// FetchFirst loads the first page and replaces whatever is held. It flags
// the load with Loading, which views render as a full placeholder, unlike
// the incremental Fetching flag.
func (s *Store[T]) FetchFirst(ctx context.Context, q Query) {
	s.fetch(ctx, q, true)
}

// FetchMore loads the page after the last held item and appends it. A
// FetchMore on an empty store behaves like FetchFirst.
func (s *Store[T]) FetchMore(ctx context.Context, q Query) {
	s.fetch(ctx, q, false)
}

func (s *Store[T]) fetch(ctx context.Context, q Query, first bool) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	skip := len(s.items)
	if first {
		skip = 0
	}
	flag := &s.fetching
	if first {
		flag = &s.loading
	}
	*flag = true
	s.generalErr = ""
	s.mu.Unlock()

	page, err := s.ops.FetchPage(ctx, q, skip)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	*flag = false
	if err != nil {
		s.generalErr = err.Error()
		return
	}
	if first {
		s.items = page.Items
	} else {
		s.items = append(s.items, page.Items...)
	}
	s.total = page.Total
	s.skip = page.Skip
}

// CreateItem submits a draft and, on success, prepends the created record so
// it is visible without a refetch.
func (s *Store[T]) CreateItem(ctx context.Context, draft any) (T, error) {
	return s.submit(func() (T, error) {
		return s.ops.Create(ctx, draft)
	}, func(created T) {
		s.items = append([]T{created}, s.items...)
		s.total++
	})
}

// UpdateItem submits a patch and, on success, swaps the held record with the
// server's authoritative version.
func (s *Store[T]) UpdateItem(ctx context.Context, id int64, patch any) (T, error) {
	return s.submit(func() (T, error) {
		return s.ops.Update(ctx, id, patch)
	}, func(updated T) {
		for i, item := range s.items {
			if item.EntityID() == id {
				s.items[i] = updated
				return
			}
		}
	})
}

// DeleteItem removes the record on the server and drops it from the held
// items on success.
func (s *Store[T]) DeleteItem(ctx context.Context, id int64) error {
	var zero T
	_, err := s.submit(func() (T, error) {
		return zero, s.ops.Delete(ctx, id)
	}, func(T) {
		for i, item := range s.items {
			if item.EntityID() == id {
				s.items = append(s.items[:i], s.items[i+1:]...)
				s.total--
				return
			}
		}
	})
	return err
}

// submit runs one mutation under the Submitting flag, recording the error
// message for the view and applying merge only on success.
func (s *Store[T]) submit(op func() (T, error), merge func(T)) (T, error) {
	var zero T
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return zero, nil
	}
	s.submitting = true
	s.submitErr = ""
	s.mu.Unlock()

	result, err := op()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return zero, nil
	}
	s.submitting = false
	if err != nil {
		s.submitErr = err.Error()
		return zero, err
	}
	merge(result)
	return result, nil
}

// Reset drops all held items and state so the next fetch starts from the
// first page. In-flight flags are cleared; a late response from a fetch
// started before the reset still lands, last write wins.
func (s *Store[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.total = 0
	s.skip = 0
	s.loading = false
	s.fetching = false
	s.submitting = false
	s.generalErr = ""
	s.submitErr = ""
}

// Close detaches the store from its view. Every subsequent operation is a
// no-op, and in-flight responses arriving after Close are discarded.
func (s *Store[T]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.items = nil
	s.loading = false
	s.fetching = false
	s.submitting = false
}

// Items returns a copy of the held records in display order.
func (s *Store[T]) Items() []T {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]T, len(s.items))
	copy(out, s.items)
	return out
}

// Total is the server-reported collection size from the latest page.
func (s *Store[T]) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.total
}

// HasMore reports whether the server holds records beyond the held items.
func (s *Store[T]) HasMore() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) < s.total
}

// HasData reports whether at least one record is held.
func (s *Store[T]) HasData() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items) > 0
}

// Loading reports a first-page load in flight.
func (s *Store[T]) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Fetching reports an incremental page load in flight.
func (s *Store[T]) Fetching() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetching
}

// Submitting reports a mutation in flight.
func (s *Store[T]) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// InFlight reports whether any operation is outstanding. Callers use it to
// avoid stacking requests, e.g. suppressing scroll-triggered fetches.
func (s *Store[T]) InFlight() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading || s.fetching || s.submitting
}

// GeneralError is the human-readable message of the last failed fetch, empty
// when the last fetch succeeded.
func (s *Store[T]) GeneralError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generalErr
}

// SubmitError is the human-readable message of the last failed mutation.
func (s *Store[T]) SubmitError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitErr
}
