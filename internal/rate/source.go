package rate

import (
	"context"
	"fmt"

	"fxinsight/internal/adapters"
	"fxinsight/internal/domain"
	"fxinsight/internal/platform/telemetry"

	"github.com/sirupsen/logrus"
)

// CachedSource fetches rate tables through a file cache. A nil cache
// means every load goes to the remote source.
type CachedSource struct {
	client adapters.RateClient
	cache  adapters.TableCache
}

func NewCachedSource(client adapters.RateClient, cache adapters.TableCache) *CachedSource {
	return &CachedSource{client: client, cache: cache}
}

// Load returns the table for q. With force set the cache is bypassed but
// still refreshed with the new result.
func (s *CachedSource) Load(ctx context.Context, q adapters.Query, force bool) (domain.Table, error) {
	fields := logrus.Fields{"currencies": q.Currencies, "start": q.Start.Format(domain.DateLayout)}

	if s.cache != nil && !force {
		table, ok, err := s.cache.Get(q)
		switch {
		case err != nil:
			logrus.WithError(err).WithFields(fields).Warn("Cache read failed, falling back to remote source")
		case ok:
			telemetry.RecordCacheLookup("file", true)
			logrus.WithFields(fields).Infof("Loaded %d cached records", len(table))
			return table, nil
		}
		telemetry.RecordCacheLookup("file", false)
	}

	logrus.WithFields(fields).Info("Fetching rates from remote source")
	table, err := s.client.FetchRates(ctx, q)
	telemetry.RecordFetch(err)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rates: %w", err)
	}
	logrus.WithFields(fields).Infof("Fetched %d records", len(table))

	if s.cache != nil {
		if err = s.cache.Put(q, table); err != nil {
			logrus.WithError(err).WithFields(fields).Warn("Failed to cache fetched rates")
		}
	}
	return table, nil
}
