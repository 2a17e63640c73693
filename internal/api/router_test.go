package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fxinsight/internal/domain"
	"fxinsight/internal/metrics"
	"fxinsight/internal/rate"
	"fxinsight/internal/rate/handler"

	"github.com/stretchr/testify/require"
)

type stubProvider struct{ ds *rate.Dataset }

func (s stubProvider) Dataset(context.Context) (*rate.Dataset, error) { return s.ds, nil }
func (s stubProvider) Refresh(context.Context) (*rate.Dataset, error) { return s.ds, nil }

func newTestRouter() http.Handler {
	currencies := domain.NewCurrencySet([]domain.Currency{{Code: "EUR", Name: "Euro Zone-Euro", Color: "#003399"}})
	d := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	table := domain.Table{{Date: d, Currency: "EUR", Rate: 0.92, CurrencyName: "Euro Zone-Euro"}}
	ds := &rate.Dataset{
		Table:   table,
		Bundle:  metrics.NewEngine(metrics.Config{}).Compute(table),
		Summary: table.Describe(),
	}
	h := handler.NewRateHandler(rate.NewValidator(currencies.Codes()), stubProvider{ds: ds}, currencies)
	return NewRouter(h)
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter()

	cases := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/healthz", http.StatusOK},
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/charts/time_series", http.StatusOK},
		{http.MethodGet, "/charts/nope", http.StatusNotFound},
		{http.MethodGet, "/api/v1/currencies", http.StatusOK},
		{http.MethodGet, "/api/v1/rates?currency=EUR", http.StatusOK},
		{http.MethodGet, "/api/v1/rates?currency=JPY", http.StatusBadRequest},
		{http.MethodGet, "/api/v1/summary", http.StatusOK},
		{http.MethodGet, "/api/v1/metrics", http.StatusOK},
		{http.MethodGet, "/api/v1/metrics/extremes", http.StatusOK},
		{http.MethodGet, "/api/v1/metrics/nope", http.StatusNotFound},
		{http.MethodGet, "/api/v1/export/csv", http.StatusOK},
		{http.MethodGet, "/api/v1/export/xml", http.StatusNotFound},
		{http.MethodPost, "/api/v1/refresh", http.StatusOK},
		{http.MethodGet, "/api/v1/refresh", http.StatusMethodNotAllowed},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
			require.Equal(t, tc.want, rr.Code)
		})
	}
}

func TestRouter_PrometheusEndpoint(t *testing.T) {
	router := newTestRouter()
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `fxinsight_http_requests_total{method="GET",path="/api/v1/summary",status="200"}`)
}
