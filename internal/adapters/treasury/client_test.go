package treasury

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fxinsight/internal/adapters"
	"fxinsight/internal/domain"

	"github.com/stretchr/testify/require"
)

var testCurrencies = domain.NewCurrencySet([]domain.Currency{
	{Code: "EUR", Name: "Euro Zone-Euro"},
	{Code: "GBP", Name: "United Kingdom-Pound"},
	{Code: "CAD", Name: "Canada-Dollar"},
})

var start = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.Client(), srv.URL+"/v1/accounting/od/rates_of_exchange", 100, testCurrencies)
}

func TestClient_FetchRates_Success(t *testing.T) {
	var gotQuery map[string][]string
	var gotPath string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": [
				{"country_currency_desc": "United Kingdom-Pound", "exchange_rate": "0.787", "record_date": "2023-06-30"},
				{"country_currency_desc": "Euro Zone-Euro", "exchange_rate": "0.917", "record_date": "2023-06-30"},
				{"country_currency_desc": "Euro Zone-Euro", "exchange_rate": "0.931", "record_date": "2023-03-31"}
			],
			"meta": {"count": 3, "total-count": 3, "total-pages": 1}
		}`))
	})

	tbl, err := c.FetchRates(context.Background(), adapters.Query{Currencies: []string{"EUR", "GBP"}, Start: start})
	require.NoError(t, err)

	require.Equal(t, "/v1/accounting/od/rates_of_exchange", gotPath)
	require.Equal(t, []string{fields}, gotQuery["fields"])
	require.Equal(t, []string{"country_currency_desc:in:(Euro Zone-Euro,United Kingdom-Pound),record_date:gte:2020-01-01"}, gotQuery["filter"])
	require.Equal(t, []string{"100"}, gotQuery["page[size]"])
	require.Equal(t, []string{"1"}, gotQuery["page[number]"])

	require.Len(t, tbl, 3)
	require.Equal(t, "EUR", tbl[0].Currency)
	require.Equal(t, "2023-03-31", tbl[0].Date.Format(domain.DateLayout))
	require.InDelta(t, 0.931, tbl[0].Rate, 1e-12)
	require.Equal(t, "Euro Zone-Euro", tbl[0].CurrencyName)
	require.Equal(t, "GBP", tbl[1].Currency, "same-date rows keep response order")
}

func TestClient_FetchRates_FollowsPagination(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		page := r.URL.Query().Get("page[number]")
		_, _ = fmt.Fprintf(w, `{"data":[{"country_currency_desc":"Canada-Dollar","exchange_rate":"1.3%s","record_date":"2023-0%s-30"}],"meta":{"total-pages":2}}`, page, map[string]string{"1": "6", "2": "9"}[page])
	})

	tbl, err := c.FetchRates(context.Background(), adapters.Query{Currencies: []string{"CAD"}, Start: start})
	require.NoError(t, err)
	require.Equal(t, 2, calls)
	require.Len(t, tbl, 2)
	require.InDelta(t, 1.31, tbl[0].Rate, 1e-12)
	require.InDelta(t, 1.32, tbl[1].Rate, 1e-12)
}

func TestClient_FetchRates_TooManyPagesIsSchemaDrift(t *testing.T) {
	calls := 0
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		_, _ = w.Write([]byte(`{"data":[{"country_currency_desc":"Canada-Dollar","exchange_rate":"1.31","record_date":"2023-06-30"}],"meta":{"total-pages":500}}`))
	})

	tbl, err := c.FetchRates(context.Background(), adapters.Query{Currencies: []string{"CAD"}, Start: start})
	require.ErrorIs(t, err, domain.ErrSchemaDrift)
	require.Nil(t, tbl)
	require.Equal(t, maxPages, calls)
}

func TestClient_FetchRates_DropsInvalidRates(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data":[
			{"country_currency_desc":"Euro Zone-Euro","exchange_rate":"n/a","record_date":"2023-03-31"},
			{"country_currency_desc":"Euro Zone-Euro","exchange_rate":"0","record_date":"2023-06-30"},
			{"country_currency_desc":"Euro Zone-Euro","exchange_rate":"0.92","record_date":"2023-09-30"}
		]}`))
	})
	tbl, err := c.FetchRates(context.Background(), adapters.Query{Start: start})
	require.NoError(t, err)
	require.Len(t, tbl, 1)
	require.Equal(t, "2023-09-30", tbl[0].Date.Format(domain.DateLayout))
}

func TestClient_FetchRates_Errors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusServiceUnavailable, body: "nope", wantErr: domain.ErrTransport},
		{name: "empty data", status: http.StatusOK, body: `{"data":[],"meta":{"total-pages":0}}`, wantErr: domain.ErrEmptyPayload},
		{name: "only invalid rates", status: http.StatusOK, body: `{"data":[{"country_currency_desc":"Euro Zone-Euro","exchange_rate":"","record_date":"2023-03-31"}]}`, wantErr: domain.ErrEmptyPayload},
		{name: "invalid json", status: http.StatusOK, body: `{`, wantErr: domain.ErrSchemaDrift},
		{name: "no data key", status: http.StatusOK, body: `{"error":"bad filter"}`, wantErr: domain.ErrSchemaDrift},
		{name: "renamed field", status: http.StatusOK, body: `{"data":[{"currency":"Euro Zone-Euro","exchange_rate":"0.9","record_date":"2023-03-31"}]}`, wantErr: domain.ErrSchemaDrift},
		{name: "bad date", status: http.StatusOK, body: `{"data":[{"country_currency_desc":"Euro Zone-Euro","exchange_rate":"0.9","record_date":"31/03/2023"}]}`, wantErr: domain.ErrSchemaDrift},
		{name: "unmapped name", status: http.StatusOK, body: `{"data":[{"country_currency_desc":"Euro Zone-Euro ","exchange_rate":"0.9","record_date":"2023-03-31"}]}`, wantErr: domain.ErrUnmappedCurrency},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			})
			_, err := c.FetchRates(context.Background(), adapters.Query{Start: start})
			require.ErrorIs(t, err, tc.wantErr)
			require.True(t, IsAcquisitionError(err))
		})
	}
}

func TestClient_FetchRates_UnknownCode(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	_, err := c.FetchRates(context.Background(), adapters.Query{Currencies: []string{"JPY"}, Start: start})
	require.ErrorIs(t, err, domain.ErrUnknownCurrency)
	require.False(t, IsAcquisitionError(err))
}

func TestClient_FetchRates_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL + "/rates"
	srv.Close()

	c := NewClient(&http.Client{Timeout: time.Second}, endpoint, 10, testCurrencies)
	_, err := c.FetchRates(context.Background(), adapters.Query{Start: start})
	require.ErrorIs(t, err, domain.ErrTransport)
}

func TestClient_FetchRates_EndpointParseError(t *testing.T) {
	c := NewClient(&http.Client{}, "http://::1]", 10, testCurrencies)
	_, err := c.FetchRates(context.Background(), adapters.Query{Start: start})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to parse endpoint URL")
}
