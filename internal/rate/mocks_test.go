package rate

import (
	"context"
	"time"

	"fxinsight/internal/adapters"
	"fxinsight/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- Testify mocks ---

type MockRateClient struct{ mock.Mock }

func (m *MockRateClient) FetchRates(ctx context.Context, q adapters.Query) (domain.Table, error) {
	args := m.Called(ctx, q)
	t, _ := args.Get(0).(domain.Table)
	return t, args.Error(1)
}

type MockTableCache struct{ mock.Mock }

func (m *MockTableCache) Get(q adapters.Query) (domain.Table, bool, error) {
	args := m.Called(q)
	t, _ := args.Get(0).(domain.Table)
	return t, args.Bool(1), args.Error(2)
}

func (m *MockTableCache) Put(q adapters.Query, t domain.Table) error {
	args := m.Called(q, t)
	return args.Error(0)
}

func (m *MockTableCache) Invalidate(q adapters.Query) error {
	args := m.Called(q)
	return args.Error(0)
}

type MockSource struct{ mock.Mock }

func (m *MockSource) Load(ctx context.Context, q adapters.Query, force bool) (domain.Table, error) {
	args := m.Called(ctx, q, force)
	t, _ := args.Get(0).(domain.Table)
	return t, args.Error(1)
}

type MockDatasetCache struct{ mock.Mock }

func (m *MockDatasetCache) Get(key string) (any, bool) {
	args := m.Called(key)
	return args.Get(0), args.Bool(1)
}

func (m *MockDatasetCache) Set(key string, value any) {
	m.Called(key, value)
}

func (m *MockDatasetCache) Del(key string) {
	m.Called(key)
}

type MockRefresher struct{ mock.Mock }

func (m *MockRefresher) Refresh(ctx context.Context) (*Dataset, error) {
	args := m.Called(ctx)
	ds, _ := args.Get(0).(*Dataset)
	return ds, args.Error(1)
}

func testQuery() adapters.Query {
	return adapters.Query{
		Currencies: []string{"EUR", "GBP"},
		Start:      time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func testTable() domain.Table {
	d := func(s string) time.Time {
		t, _ := time.Parse(domain.DateLayout, s)
		return t
	}
	return domain.Table{
		{Date: d("2023-03-31"), Currency: "EUR", Rate: 0.92, CurrencyName: "Euro Zone-Euro"},
		{Date: d("2023-03-31"), Currency: "GBP", Rate: 0.81, CurrencyName: "United Kingdom-Pound"},
		{Date: d("2023-06-30"), Currency: "EUR", Rate: 0.91, CurrencyName: "Euro Zone-Euro"},
		{Date: d("2023-06-30"), Currency: "GBP", Rate: 0.79, CurrencyName: "United Kingdom-Pound"},
	}
}
