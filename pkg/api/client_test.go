package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseQuery(t *testing.T, raw string) url.Values {
	t.Helper()
	v, err := url.ParseQuery(raw)
	require.NoError(t, err)
	return v
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":[],"total":0,"skip":0,"limit":20}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithTokenSource(StaticToken("tok-123")))
	_, err := NewCustomersAPI(client).List(context.Background(), ListParams{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestNoTokenMeansNoHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"data":[],"total":0,"skip":0,"limit":20}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, WithTokenSource(TokenFunc(func() string { return "" })))
	_, err := NewProductsAPI(client).List(context.Background(), ListParams{})
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestListParamsEncoded(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"data":[],"total":0,"skip":10,"limit":10}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := NewProductsAPI(client).List(context.Background(), ListParams{
		Limit:     10,
		Skip:      10,
		Search:    "flour",
		SortBy:    "name",
		Direction: "asc",
		Filters:   map[string]string{"isActive": "true"},
	})
	require.NoError(t, err)

	q := mustParseQuery(t, gotQuery)
	assert.Equal(t, "10", q.Get("limit"))
	assert.Equal(t, "10", q.Get("skip"))
	assert.Equal(t, "flour", q.Get("q"))
	assert.Equal(t, "name", q.Get("sortBy"))
	assert.Equal(t, "asc", q.Get("direction"))
	assert.Equal(t, "true", q.Get("isActive"))
}

func TestListDecodesEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":1,"name":"Acme"},{"id":2,"name":"Beta"}],"total":5,"skip":0,"limit":2}`))
	}))
	defer srv.Close()

	out, err := NewCustomersAPI(NewClient(srv.URL)).List(context.Background(), ListParams{Limit: 2})
	require.NoError(t, err)
	require.Len(t, out.Data, 2)
	assert.Equal(t, int64(1), out.Data[0].ID)
	assert.Equal(t, "Beta", out.Data[1].Name)
	assert.Equal(t, 5, out.Total)
}

func TestUnauthorizedInvokesHookAndMatchesSentinel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"token expired"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	hookCalls := 0
	client := NewClient(srv.URL, WithOnUnauthorized(func() { hookCalls++ }))

	_, err := NewCustomersAPI(client).Get(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, hookCalls)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "token expired", apiErr.Message)
}

func TestErrorMessageFromProblemBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"type":"about:blank","title":"Not Found","status":404,"detail":"product 42 not found","message":"product 42 not found"}`))
	}))
	defer srv.Close()

	_, err := NewProductsAPI(NewClient(srv.URL)).Get(context.Background(), 42)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "product 42 not found", apiErr.Message)
}

func TestTransportErrorMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening any more

	_, err := NewCustomersAPI(NewClient(srv.URL)).Get(context.Background(), 1)
	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Zero(t, apiErr.Status)
	assert.NotEmpty(t, apiErr.Message)
}

func TestDeleteAcceptsNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := NewCustomersAPI(NewClient(srv.URL)).Delete(context.Background(), 3)
	assert.NoError(t, err)
}

func TestExportCSVDownloadsRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sales/export", r.URL.Path)
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("id,sale_date,total_price\n1,2026-01-15,120.00\n"))
	}))
	defer srv.Close()

	body, err := NewSalesAPI(NewClient(srv.URL)).ExportCSV(context.Background())
	require.NoError(t, err)
	assert.Contains(t, string(body), "total_price")
}

func TestLoginPostsCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		w.Write([]byte(`{"token":"tok-1","user":{"id":1,"email":"a@b.c","name":"Ada","is_active":true}}`))
	}))
	defer srv.Close()

	out, err := NewAuthAPI(NewClient(srv.URL)).Login(context.Background(), "a@b.c", "secret")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", out.Token)
	assert.Equal(t, "Ada", out.User.Name)
}
