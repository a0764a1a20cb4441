package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type itemInput struct {
	ID string `path:"id"`
}

func TestMetrics_Middleware(t *testing.T) {
	m := New(prometheus.NewRegistry())

	_, api := humatest.New(t)
	api.UseMiddleware(m.Middleware())
	huma.Register(api, huma.Operation{
		OperationID: "item-delete",
		Method:      http.MethodDelete,
		Path:        "/items/{id}",
	}, func(ctx context.Context, in *itemInput) (*struct{}, error) {
		if in.ID == "missing" {
			return nil, huma.Error404NotFound("no such item")
		}
		return nil, nil
	})

	api.Delete("/items/a")
	api.Delete("/items/b")
	api.Delete("/items/missing")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("DELETE", "/items/{id}", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("DELETE", "/items/{id}", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.requestsInFlight))
}

func TestMetrics_Handler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.requestsTotal.WithLabelValues("GET", "/health", "200").Inc()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{method="GET",path="/health",status="200"} 1`)
}
