package filecache

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"fxinsight/internal/adapters"
	"fxinsight/internal/domain"
)

var header = []string{"date", "currency", "rate", "currency_name"}

// Store keeps fetched tables as CSV files. An entry is addressed by the
// source version, the requested currencies and the start date, so a request
// for a different currency set never reads another request's data.
type Store struct {
	dir     string
	version string
	ttl     time.Duration
	now     func() time.Time
}

func NewStore(dir, sourceVersion string, ttl time.Duration) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir %q failed: %w", dir, err)
	}
	return &Store{dir: dir, version: sourceVersion, ttl: ttl, now: time.Now}, nil
}

// Key is the content address of q.
func (s *Store) Key(q adapters.Query) string {
	codes := slices.Clone(q.Currencies)
	slices.Sort(codes)
	h := sha256.New()
	_, _ = fmt.Fprintf(h, "%s|%s|%s", s.version, strings.Join(codes, ","), q.Start.Format(domain.DateLayout))
	return hex.EncodeToString(h.Sum(nil))
}

func (s *Store) path(q adapters.Query) string {
	return filepath.Join(s.dir, fmt.Sprintf("rates_%s_%s.csv", q.Start.Format(domain.DateLayout), s.Key(q)[:12]))
}

// Get returns the cached table for q. Missing and stale entries are misses.
func (s *Store) Get(q adapters.Query) (domain.Table, bool, error) {
	p := s.path(q)
	info, err := os.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("stat cache entry failed: %w", err)
	}
	if s.ttl > 0 && s.now().Sub(info.ModTime()) > s.ttl {
		return nil, false, nil
	}

	f, err := os.Open(p)
	if err != nil {
		return nil, false, fmt.Errorf("open cache entry failed: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, false, fmt.Errorf("read cache entry %q failed: %w", p, err)
	}
	if len(records) == 0 || !slices.Equal(records[0], header) {
		return nil, false, fmt.Errorf("cache entry %q has unexpected header", p)
	}

	table := make(domain.Table, 0, len(records)-1)
	for i, rec := range records[1:] {
		o, err := decodeRecord(rec)
		if err != nil {
			return nil, false, fmt.Errorf("cache entry %q line %d: %w", p, i+2, err)
		}
		table = append(table, o)
	}
	return table, true, nil
}

// Put writes t atomically, replacing any previous entry for q.
func (s *Store) Put(q adapters.Query, t domain.Table) error {
	tmp, err := os.CreateTemp(s.dir, "rates-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file failed: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	w := csv.NewWriter(tmp)
	_ = w.Write(header)
	for _, o := range t {
		_ = w.Write([]string{
			o.Date.Format(domain.DateLayout),
			o.Currency,
			strconv.FormatFloat(o.Rate, 'f', -1, 64),
			o.CurrencyName,
		})
	}
	w.Flush()
	if err = w.Error(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write cache entry failed: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close cache entry failed: %w", err)
	}
	if err = os.Rename(tmp.Name(), s.path(q)); err != nil {
		return fmt.Errorf("commit cache entry failed: %w", err)
	}
	return nil
}

func (s *Store) Invalidate(q adapters.Query) error {
	if err := os.Remove(s.path(q)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove cache entry failed: %w", err)
	}
	return nil
}

// Clear removes every entry in the cache directory.
func (s *Store) Clear() error {
	matches, err := filepath.Glob(filepath.Join(s.dir, "rates_*.csv"))
	if err != nil {
		return err
	}
	for _, m := range matches {
		if err = os.Remove(m); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove cache entry failed: %w", err)
		}
	}
	return nil
}

func decodeRecord(rec []string) (domain.Observation, error) {
	if len(rec) != len(header) {
		return domain.Observation{}, fmt.Errorf("expected %d fields, got %d", len(header), len(rec))
	}
	date, err := time.Parse(domain.DateLayout, rec[0])
	if err != nil {
		return domain.Observation{}, fmt.Errorf("bad date: %w", err)
	}
	rate, err := strconv.ParseFloat(rec[2], 64)
	if err != nil {
		return domain.Observation{}, fmt.Errorf("bad rate: %w", err)
	}
	return domain.Observation{Date: date, Currency: rec[1], Rate: rate, CurrencyName: rec[3]}, nil
}
