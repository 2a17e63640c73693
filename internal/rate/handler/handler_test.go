package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"fxinsight/internal/domain"
	"fxinsight/internal/metrics"
	"fxinsight/internal/rate"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockValidator struct{ mock.Mock }

func (m *MockValidator) ValidateCodes(codes []string) error {
	args := m.Called(codes)
	return args.Error(0)
}

func (m *MockValidator) SupportedCodes() []string {
	args := m.Called()
	codes, _ := args.Get(0).([]string)
	return codes
}

type MockService struct{ mock.Mock }

func (m *MockService) Dataset(ctx context.Context) (*rate.Dataset, error) {
	args := m.Called(ctx)
	ds, _ := args.Get(0).(*rate.Dataset)
	return ds, args.Error(1)
}

func (m *MockService) Refresh(ctx context.Context) (*rate.Dataset, error) {
	args := m.Called(ctx)
	ds, _ := args.Get(0).(*rate.Dataset)
	return ds, args.Error(1)
}

type errorJSON struct {
	Error string `json:"error"`
}

var (
	testCurrencies = domain.NewCurrencySet([]domain.Currency{
		{Code: "EUR", Name: "Euro Zone-Euro", Color: "#003399"},
		{Code: "GBP", Name: "United Kingdom-Pound", Color: "#C8102E"},
	})
	testNow = time.Date(2025, 1, 2, 15, 4, 5, 0, time.UTC)
)

func newTestHandler() (*Handler, *MockValidator, *MockService) {
	mockValidator := new(MockValidator)
	mockService := new(MockService)
	h := NewRateHandler(mockValidator, mockService, testCurrencies)
	h.now = func() time.Time { return testNow }
	return h, mockValidator, mockService
}

func testDataset() *rate.Dataset {
	ends := []string{"03-31", "06-30", "09-30", "12-31"}
	var table domain.Table
	for i := 0; i < 8; i++ {
		d, _ := time.Parse(domain.DateLayout, fmt.Sprintf("%d-%s", 2022+i/4, ends[i%4]))
		table = append(table,
			domain.Observation{Date: d, Currency: "EUR", Rate: 0.90 + 0.01*float64(i%3), CurrencyName: "Euro Zone-Euro"},
			domain.Observation{Date: d, Currency: "GBP", Rate: 0.80 + 0.02*float64(i%2), CurrencyName: "United Kingdom-Pound"},
		)
	}
	engine := metrics.NewEngine(metrics.Config{Currencies: testCurrencies.Codes()})
	return &rate.Dataset{
		Table:    table,
		Bundle:   engine.Compute(table),
		Summary:  table.Describe(),
		LoadedAt: testNow,
	}
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	var ej errorJSON
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &ej))
	return ej.Error
}

// --- GetCurrencies ---

func TestHandler_GetCurrencies(t *testing.T) {
	h, mockValidator, _ := newTestHandler()
	mockValidator.On("SupportedCodes").Return([]string{"EUR", "GBP"}).Once()

	rr := httptest.NewRecorder()
	h.GetCurrencies(rr, httptest.NewRequest(http.MethodGet, "/api/v1/currencies", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res GetCurrenciesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, []string{"EUR", "GBP"}, res.Codes)
	require.Equal(t, CurrencyInfo{Code: "GBP", Name: "United Kingdom-Pound", Color: "#C8102E"}, res.Currencies[1])
	mockValidator.AssertExpectations(t)
}

// --- GetRates ---

func TestHandler_GetRates_ValidationError(t *testing.T) {
	h, mockValidator, mockService := newTestHandler()
	mockValidator.On("ValidateCodes", []string{"EUR", "JPY"}).
		Return(fmt.Errorf("%w: JPY", rate.ErrCurrencyUnsupported)).Once()

	rr := httptest.NewRecorder()
	h.GetRates(rr, httptest.NewRequest(http.MethodGet, "/api/v1/rates?currency=eur,%20jpy", nil))

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "currency not supported: JPY", decodeError(t, rr))
	mockService.AssertNotCalled(t, "Dataset", mock.Anything)
	mockValidator.AssertExpectations(t)
}

func TestHandler_GetRates_Filtered(t *testing.T) {
	h, mockValidator, mockService := newTestHandler()
	mockValidator.On("ValidateCodes", []string{"GBP"}).Return(nil).Once()
	mockService.On("Dataset", mock.Anything).Return(testDataset(), nil).Once()

	rr := httptest.NewRecorder()
	h.GetRates(rr, httptest.NewRequest(http.MethodGet, "/api/v1/rates?currency=gbp", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res GetRatesResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, 8, res.Summary.TotalRecords)
	require.Len(t, res.Records, 8)
	for _, rec := range res.Records {
		require.Equal(t, "GBP", rec.Currency)
	}
	mockValidator.AssertExpectations(t)
	mockService.AssertExpectations(t)
}

func TestHandler_GetRates_DatasetErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "transport",
			err:        fmt.Errorf("failed to fetch rates: %w", domain.ErrTransport),
			wantStatus: http.StatusBadGateway,
			wantMsg:    "couldn't load rates from the Treasury API",
		},
		{
			name:       "schema drift",
			err:        domain.ErrSchemaDrift,
			wantStatus: http.StatusBadGateway,
			wantMsg:    "couldn't load rates from the Treasury API",
		},
		{
			name:       "no data",
			err:        domain.ErrNoData,
			wantStatus: http.StatusBadGateway,
			wantMsg:    "couldn't load rates from the Treasury API",
		},
		{
			name:       "internal",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantMsg:    "ups, couldn't load rates this time",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, _, mockService := newTestHandler()
			mockService.On("Dataset", mock.Anything).Return(nil, tc.err).Once()

			rr := httptest.NewRecorder()
			h.GetRates(rr, httptest.NewRequest(http.MethodGet, "/api/v1/rates", nil))

			require.Equal(t, tc.wantStatus, rr.Code)
			require.Equal(t, tc.wantMsg, decodeError(t, rr))
			mockService.AssertExpectations(t)
		})
	}
}

// --- Summary and metrics ---

func TestHandler_GetSummary(t *testing.T) {
	h, _, mockService := newTestHandler()
	mockService.On("Dataset", mock.Anything).Return(testDataset(), nil).Once()

	rr := httptest.NewRecorder()
	h.GetSummary(rr, httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res GetSummaryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, 16, res.Summary.TotalRecords)
	require.Equal(t, "2022-03-31", res.Summary.DateRange.Start)
	require.Equal(t, "2023-12-31", res.Summary.DateRange.End)
	require.True(t, res.LoadedAt.Equal(testNow))
}

func TestHandler_GetMetrics(t *testing.T) {
	h, _, mockService := newTestHandler()
	mockService.On("Dataset", mock.Anything).Return(testDataset(), nil).Once()

	rr := httptest.NewRecorder()
	h.GetMetrics(rr, httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	for _, name := range metrics.TableNames {
		require.Contains(t, res, name)
	}
}

func TestHandler_GetMetric_Trends(t *testing.T) {
	h, _, mockService := newTestHandler()
	mockService.On("Dataset", mock.Anything).Return(testDataset(), nil).Once()

	rr := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/metrics/trends", nil), "name", metrics.TableTrends)
	h.GetMetric(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	require.Equal(t, "EUR", rows[0]["currency"])
	require.Contains(t, rows[0], "change_1y")
	require.Contains(t, rows[0], "direction_1q")
}

func TestHandler_GetMetric_Unknown(t *testing.T) {
	h, _, mockService := newTestHandler()
	mockService.On("Dataset", mock.Anything).Return(testDataset(), nil).Once()

	rr := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/metrics/nope", nil), "name", "nope")
	h.GetMetric(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "metric not found", decodeError(t, rr))
}

// --- Export ---

func TestHandler_Export_CSV(t *testing.T) {
	h, mockValidator, mockService := newTestHandler()
	mockValidator.On("ValidateCodes", []string{"EUR"}).Return(nil).Once()
	mockService.On("Dataset", mock.Anything).Return(testDataset(), nil).Once()

	rr := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/export/csv?currency=EUR", nil), "format", "csv")
	h.Export(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "text/csv", rr.Header().Get("Content-Type"))
	require.Equal(t, `attachment; filename="currency_data_20250102.csv"`, rr.Header().Get("Content-Disposition"))
	lines := strings.Split(strings.TrimSpace(rr.Body.String()), "\n")
	require.Equal(t, "date,currency,rate,currency_name", lines[0])
	require.Len(t, lines, 9)
	require.Equal(t, "2022-03-31,EUR,0.9,Euro Zone-Euro", lines[1])
}

func TestHandler_Export_Text(t *testing.T) {
	h, _, mockService := newTestHandler()
	mockService.On("Dataset", mock.Anything).Return(testDataset(), nil).Once()

	rr := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/export/txt", nil), "format", "txt")
	h.Export(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, `attachment; filename="summary_20250102.txt"`, rr.Header().Get("Content-Disposition"))
	require.Contains(t, rr.Body.String(), "Records: 16")
	require.Contains(t, rr.Body.String(), "Currencies: EUR, GBP")
}

func TestHandler_Export_UnsupportedFormat(t *testing.T) {
	h, _, mockService := newTestHandler()
	mockService.On("Dataset", mock.Anything).Return(testDataset(), nil).Once()

	rr := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/export/xml", nil), "format", "xml")
	h.Export(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "unsupported export format", decodeError(t, rr))
}

// --- Refresh ---

func TestHandler_Refresh_Success(t *testing.T) {
	h, _, mockService := newTestHandler()
	mockService.On("Refresh", mock.Anything).Return(testDataset(), nil).Once()

	rr := httptest.NewRecorder()
	h.Refresh(rr, httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	var res GetSummaryResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Equal(t, 16, res.Summary.TotalRecords)
	mockService.AssertNotCalled(t, "Dataset", mock.Anything)
	mockService.AssertExpectations(t)
}

func TestHandler_Refresh_AcquisitionError(t *testing.T) {
	h, _, mockService := newTestHandler()
	mockService.On("Refresh", mock.Anything).Return(nil, domain.ErrEmptyPayload).Once()

	rr := httptest.NewRecorder()
	h.Refresh(rr, httptest.NewRequest(http.MethodPost, "/api/v1/refresh", nil))

	require.Equal(t, http.StatusBadGateway, rr.Code)
}

// --- Dashboard and charts ---

func TestHandler_Dashboard_Renders(t *testing.T) {
	h, mockValidator, mockService := newTestHandler()
	mockValidator.On("SupportedCodes").Return([]string{"EUR", "GBP"}).Once()
	mockService.On("Dataset", mock.Anything).Return(testDataset(), nil).Once()

	rr := httptest.NewRecorder()
	h.Dashboard(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	require.Equal(t, "text/html; charset=utf-8", rr.Header().Get("Content-Type"))
	body := rr.Body.String()
	require.Contains(t, body, "Currency Intelligence Platform")
	require.Contains(t, body, "Loaded 16 records from 2022-03-31 to 2023-12-31")
	require.Contains(t, body, "EUR/USD")
	require.Contains(t, body, `data-chart="performance_summary"`)
	require.Contains(t, body, "Generated: 2025-01-02 15:04")
}

func TestHandler_Dashboard_DatasetError(t *testing.T) {
	h, mockValidator, mockService := newTestHandler()
	mockValidator.On("SupportedCodes").Return([]string{"EUR", "GBP"}).Once()
	mockService.On("Dataset", mock.Anything).Return(nil, domain.ErrTransport).Once()

	rr := httptest.NewRecorder()
	h.Dashboard(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusBadGateway, rr.Code)
	require.Contains(t, rr.Body.String(), "Failed to load data from US Treasury API")
}

func TestHandler_GetChart(t *testing.T) {
	h, _, mockService := newTestHandler()
	mockService.On("Dataset", mock.Anything).Return(testDataset(), nil).Once()

	rr := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/charts/correlation", nil), "name", "correlation")
	h.GetChart(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), "Currency Correlation Matrix")
}

func TestHandler_GetChart_NotFound(t *testing.T) {
	h, _, mockService := newTestHandler()
	mockService.On("Dataset", mock.Anything).Return(testDataset(), nil).Once()

	rr := httptest.NewRecorder()
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/charts/nope", nil), "name", "nope")
	h.GetChart(rr, req)

	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "chart not found", decodeError(t, rr))
}
