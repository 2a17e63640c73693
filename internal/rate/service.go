package rate

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"fxinsight/internal/adapters"
	"fxinsight/internal/domain"
	"fxinsight/internal/metrics"
	"fxinsight/internal/platform/telemetry"

	"golang.org/x/sync/singleflight"
)

type Source interface {
	Load(ctx context.Context, q adapters.Query, force bool) (domain.Table, error)
}

// Dataset is a rate table together with everything derived from it.
type Dataset struct {
	Query    adapters.Query
	Table    domain.Table
	Bundle   metrics.Bundle
	Summary  domain.DataSummary
	LoadedAt time.Time
}

type Service struct {
	source   Source
	engine   *metrics.Engine
	memo     adapters.DatasetCache
	query    adapters.Query
	inflight singleflight.Group
	now      func() time.Time
}

func NewService(source Source, engine *metrics.Engine, memo adapters.DatasetCache, query adapters.Query) *Service {
	return &Service{source: source, engine: engine, memo: memo, query: query, now: time.Now}
}

// Dataset returns the memoized dataset, loading it on first use or after expiry.
func (s *Service) Dataset(ctx context.Context) (*Dataset, error) {
	if s.memo != nil {
		if v, ok := s.memo.Get(s.key()); ok {
			if ds, ok := v.(*Dataset); ok {
				telemetry.RecordCacheLookup("memo", true)
				return ds, nil
			}
		}
		telemetry.RecordCacheLookup("memo", false)
	}
	return s.load(ctx, false)
}

// Refresh drops memoized results and reloads from the remote source.
func (s *Service) Refresh(ctx context.Context) (*Dataset, error) {
	if s.memo != nil {
		s.memo.Del(s.key())
	}
	return s.load(ctx, true)
}

func (s *Service) Currencies() []string {
	return slices.Clone(s.query.Currencies)
}

func (s *Service) load(ctx context.Context, force bool) (*Dataset, error) {
	flight := s.key()
	if force {
		flight += ":force"
	}
	v, err, _ := s.inflight.Do(flight, func() (any, error) {
		started := time.Now()
		ds, err := s.build(ctx, force)
		telemetry.ObserveDatasetLoad(time.Since(started), err)
		if err != nil {
			return nil, err
		}
		if s.memo != nil {
			s.memo.Set(s.key(), ds)
		}
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dataset), nil
}

func (s *Service) build(ctx context.Context, force bool) (*Dataset, error) {
	table, err := s.source.Load(ctx, s.query, force)
	if err != nil {
		return nil, err
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("%w for %s", domain.ErrNoData, strings.Join(s.query.Currencies, ","))
	}
	return &Dataset{
		Query:    s.query,
		Table:    table,
		Bundle:   s.engine.Compute(table),
		Summary:  table.Describe(),
		LoadedAt: s.now().UTC(),
	}, nil
}

func (s *Service) key() string {
	codes := slices.Clone(s.query.Currencies)
	slices.Sort(codes)
	return "dataset:" + strings.Join(codes, ",") + ":" + s.query.Start.Format(domain.DateLayout)
}
