package faire

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yatelabs/faire-sync/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(config.FaireConfig{
		BaseURL: srv.URL,
		APIKey:  "test-token",
		Timeout: 2 * time.Second,
	}, zap.NewNop())

	return client, srv
}

func TestGetOrders_Success(t *testing.T) {
	var gotToken, gotQuery string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotToken = r.Header.Get("X-FAIRE-ACCESS-TOKEN")
		gotQuery = r.URL.RawQuery
		assert.Equal(t, "/orders", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"page": 1, "orders": [
			{"id": "o1", "display_id": "D1", "created_at": "2023-01-01T00:00:00Z",
			 "updated_at": "2023-01-01T00:00:00Z", "state": "NEW",
			 "retailer_id": "r1", "source": "web"}
		]}`))
	})

	payload, err := client.GetOrders(context.Background(), OrderListParams{Limit: 50, Page: 1})
	require.NoError(t, err)

	assert.Equal(t, "test-token", gotToken)
	assert.Contains(t, gotQuery, "limit=50")
	assert.Contains(t, gotQuery, "page=1")
	require.Len(t, payload.Orders, 1)
	assert.Equal(t, "o1", payload.Orders[0].ID)
}

func TestGetOrders_NotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetOrders(context.Background(), OrderListParams{})

	var fetchErr *RemoteFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusNotFound, fetchErr.StatusCode)
	assert.True(t, IsNotFound(err))
}

func TestGetOrders_ServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.GetOrders(context.Background(), OrderListParams{})

	var fetchErr *RemoteFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusBadGateway, fetchErr.StatusCode)
	assert.False(t, IsNotFound(err))
}

func TestGetOrders_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(config.FaireConfig{
		BaseURL: srv.URL,
		APIKey:  "test-token",
		Timeout: 20 * time.Millisecond,
	}, zap.NewNop())

	_, err := client.GetOrders(context.Background(), OrderListParams{})

	var fetchErr *RemoteFetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Zero(t, fetchErr.StatusCode)
}

func TestGetOrder_Success(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders/bo_42", r.URL.Path)
		w.Write([]byte(`{"id": "bo_42", "display_id": "D42",
			"created_at": "2023-01-01T00:00:00Z", "updated_at": "2023-01-01T00:00:00Z",
			"state": "NEW", "retailer_id": "r1", "source": "web"}`))
	})

	payload, err := client.GetOrder(context.Background(), "bo_42")
	require.NoError(t, err)
	assert.Equal(t, "bo_42", payload.ID)
}

func TestGetOrder_NotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetOrder(context.Background(), "missing")
	assert.True(t, IsNotFound(err))
}
