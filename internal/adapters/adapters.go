package adapters

import (
	"context"
	"time"

	"fxinsight/internal/domain"
)

// Query identifies a rate table: which currencies, from which date.
type Query struct {
	Currencies []string
	Start      time.Time
}

type RateClient interface {
	FetchRates(ctx context.Context, q Query) (domain.Table, error)
}

// TableCache persists fetched tables between runs.
type TableCache interface {
	Get(q Query) (domain.Table, bool, error)
	Put(q Query, t domain.Table) error
	Invalidate(q Query) error
}

// DatasetCache memoizes computed results in memory.
type DatasetCache interface {
	Get(key string) (any, bool)
	Set(key string, value any)
	Del(key string)
}
