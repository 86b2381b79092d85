package liststore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID   int64
	Name string
}

func (r record) EntityID() int64 { return r.ID }

// fakeBackend serves a fixed collection in pages and counts calls.
type fakeBackend struct {
	all        []record
	fetchCalls int
	fetchErr   error
	createErr  error
	block      chan struct{}
}

func (b *fakeBackend) ops() Ops[record] {
	return Ops[record]{
		FetchPage: func(ctx context.Context, q Query, skip int) (Page[record], error) {
			b.fetchCalls++
			if b.block != nil {
				<-b.block
			}
			if b.fetchErr != nil {
				return Page[record]{}, b.fetchErr
			}
			limit := q.Limit
			if limit <= 0 {
				limit = 20
			}
			end := skip + limit
			if end > len(b.all) {
				end = len(b.all)
			}
			var items []record
			if skip < len(b.all) {
				items = b.all[skip:end]
			}
			return Page[record]{Items: items, Total: len(b.all), Skip: skip, Limit: limit}, nil
		},
		Create: func(ctx context.Context, draft any) (record, error) {
			if b.createErr != nil {
				return record{}, b.createErr
			}
			r := draft.(record)
			b.all = append(b.all, r)
			return r, nil
		},
		Update: func(ctx context.Context, id int64, patch any) (record, error) {
			return patch.(record), nil
		},
		Delete: func(ctx context.Context, id int64) error {
			return nil
		},
	}
}

func collection(n int) []record {
	all := make([]record, n)
	for i := range all {
		all[i] = record{ID: int64(i + 1), Name: "rec"}
	}
	return all
}

func TestFetchFirstReplacesAndFetchMoreAppends(t *testing.T) {
	backend := &fakeBackend{all: collection(5)}
	store := New(backend.ops())
	q := Query{Limit: 2}

	store.FetchFirst(context.Background(), q)
	require.Len(t, store.Items(), 2)
	assert.Equal(t, 5, store.Total())
	assert.True(t, store.HasMore())

	store.FetchMore(context.Background(), q)
	items := store.Items()
	require.Len(t, items, 4)
	assert.Equal(t, int64(3), items[2].ID, "appended page continues where the held items end")

	store.FetchFirst(context.Background(), q)
	require.Len(t, store.Items(), 2, "first-page fetch replaces, it does not append")
}

func TestHasMoreTracksServerTotal(t *testing.T) {
	backend := &fakeBackend{all: collection(3)}
	store := New(backend.ops())
	q := Query{Limit: 2}

	store.FetchFirst(context.Background(), q)
	assert.True(t, store.HasMore())

	store.FetchMore(context.Background(), q)
	assert.Len(t, store.Items(), 3)
	assert.False(t, store.HasMore())
	assert.True(t, store.HasData())
}

func TestCreatePrependsWithoutRefetch(t *testing.T) {
	backend := &fakeBackend{all: collection(2)}
	store := New(backend.ops())
	store.FetchFirst(context.Background(), Query{Limit: 10})
	fetchesBefore := backend.fetchCalls

	created, err := store.CreateItem(context.Background(), record{ID: 99, Name: "fresh"})
	require.NoError(t, err)
	assert.Equal(t, int64(99), created.ID)

	items := store.Items()
	require.Len(t, items, 3)
	assert.Equal(t, int64(99), items[0].ID, "created record shows first")
	assert.Equal(t, 3, store.Total())
	assert.Equal(t, fetchesBefore, backend.fetchCalls, "merge must not refetch")
}

func TestUpdateSwapsHeldRecord(t *testing.T) {
	backend := &fakeBackend{all: collection(3)}
	store := New(backend.ops())
	store.FetchFirst(context.Background(), Query{Limit: 10})

	_, err := store.UpdateItem(context.Background(), 2, record{ID: 2, Name: "renamed"})
	require.NoError(t, err)

	items := store.Items()
	assert.Equal(t, "renamed", items[1].Name)
	assert.Equal(t, 3, store.Total(), "update leaves total untouched")
}

func TestDeleteDropsHeldRecord(t *testing.T) {
	backend := &fakeBackend{all: collection(3)}
	store := New(backend.ops())
	store.FetchFirst(context.Background(), Query{Limit: 10})

	require.NoError(t, store.DeleteItem(context.Background(), 2))

	items := store.Items()
	require.Len(t, items, 2)
	for _, item := range items {
		assert.NotEqual(t, int64(2), item.ID)
	}
	assert.Equal(t, 2, store.Total())
}

func TestFetchErrorRecordedAndFlagCleared(t *testing.T) {
	backend := &fakeBackend{fetchErr: errors.New("the server is temporarily unreachable")}
	store := New(backend.ops())

	store.FetchFirst(context.Background(), Query{Limit: 10})

	assert.Equal(t, "the server is temporarily unreachable", store.GeneralError())
	assert.False(t, store.Loading(), "flag clears even on failure")
	assert.False(t, store.InFlight())

	backend.fetchErr = nil
	backend.all = collection(1)
	store.FetchFirst(context.Background(), Query{Limit: 10})
	assert.Empty(t, store.GeneralError(), "next attempt clears the recorded error")
	assert.True(t, store.HasData())
}

func TestRejectedFetchLeavesHeldItemsUntouched(t *testing.T) {
	backend := &fakeBackend{all: collection(2)}
	store := New(backend.ops())
	store.FetchFirst(context.Background(), Query{Limit: 10})
	require.Len(t, store.Items(), 2)

	backend.fetchErr = errors.New("the server encountered an internal error")
	store.FetchMore(context.Background(), Query{Limit: 10})

	assert.Len(t, store.Items(), 2)
	assert.Equal(t, 2, store.Total())
	assert.NotEmpty(t, store.GeneralError())
}

func TestSubmitErrorDoesNotMerge(t *testing.T) {
	backend := &fakeBackend{all: collection(1), createErr: errors.New("some fields failed validation")}
	store := New(backend.ops())
	store.FetchFirst(context.Background(), Query{Limit: 10})

	_, err := store.CreateItem(context.Background(), record{ID: 50})
	require.Error(t, err)
	assert.Equal(t, "some fields failed validation", store.SubmitError())
	assert.Len(t, store.Items(), 1, "failed create leaves held items alone")
	assert.False(t, store.Submitting())
}

func TestResetClearsEverything(t *testing.T) {
	backend := &fakeBackend{all: collection(3), fetchErr: nil}
	store := New(backend.ops())
	store.FetchFirst(context.Background(), Query{Limit: 10})

	store.Reset()

	assert.False(t, store.HasData())
	assert.Equal(t, 0, store.Total())
	assert.Empty(t, store.GeneralError())
	assert.False(t, store.InFlight())
}

func TestClosedStoreIgnoresOperations(t *testing.T) {
	backend := &fakeBackend{all: collection(3)}
	store := New(backend.ops())
	store.FetchFirst(context.Background(), Query{Limit: 10})
	fetchesBefore := backend.fetchCalls

	store.Close()

	store.FetchFirst(context.Background(), Query{Limit: 10})
	store.FetchMore(context.Background(), Query{Limit: 10})
	_, _ = store.CreateItem(context.Background(), record{ID: 9})
	_ = store.DeleteItem(context.Background(), 1)

	assert.Equal(t, fetchesBefore, backend.fetchCalls, "closed store must not call the backend")
	assert.False(t, store.HasData())
	assert.False(t, store.InFlight())
}

func TestLateResponseAfterCloseIsDiscarded(t *testing.T) {
	backend := &fakeBackend{all: collection(3), block: make(chan struct{})}
	store := New(backend.ops())

	done := make(chan struct{})
	go func() {
		store.FetchFirst(context.Background(), Query{Limit: 10})
		close(done)
	}()

	// Wait for the fetch to be in flight, then detach the store before the
	// response lands.
	for !store.Loading() {
	}
	store.Close()
	close(backend.block)
	<-done

	assert.False(t, store.HasData())
}

func TestInFlightSuppressesStackedFetches(t *testing.T) {
	backend := &fakeBackend{all: collection(6), block: make(chan struct{})}
	store := New(backend.ops())
	q := Query{Limit: 2}

	done := make(chan struct{})
	go func() {
		store.FetchMore(context.Background(), q)
		close(done)
	}()
	for !store.InFlight() {
	}

	// A scroll handler consults InFlight before fetching again; while one
	// page is outstanding no further call is issued.
	if !store.InFlight() {
		store.FetchMore(context.Background(), q)
	}
	assert.Equal(t, 1, backend.fetchCalls)

	close(backend.block)
	<-done
	assert.Len(t, store.Items(), 2)
}
