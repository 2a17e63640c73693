package domain

import (
	"slices"
	"sort"
	"time"
)

const DateLayout = "2006-01-02"

// Observation is a single quoted rate: units of Currency per 1 USD on Date.
type Observation struct {
	Date         time.Time
	Currency     string
	Rate         float64
	CurrencyName string
}

// Table is an ordered collection of observations, ascending by date.
// Tables are never mutated once produced; helpers return new tables.
type Table []Observation

// SortByDate returns a copy of observations sorted ascending by date.
// Observations sharing a date keep their relative order.
func SortByDate(observations []Observation) Table {
	t := slices.Clone(observations)
	sort.SliceStable(t, func(i, j int) bool { return t[i].Date.Before(t[j].Date) })
	return t
}

// Codes returns distinct currency codes in order of first appearance.
func (t Table) Codes() []string {
	seen := make(map[string]struct{})
	codes := make([]string, 0, 4)
	for _, o := range t {
		if _, ok := seen[o.Currency]; ok {
			continue
		}
		seen[o.Currency] = struct{}{}
		codes = append(codes, o.Currency)
	}
	return codes
}

// Filter returns observations whose currency is in codes. Empty codes keeps everything.
func (t Table) Filter(codes []string) Table {
	if len(codes) == 0 {
		return slices.Clone(t)
	}
	keep := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		keep[c] = struct{}{}
	}
	out := make(Table, 0, len(t))
	for _, o := range t {
		if _, ok := keep[o.Currency]; ok {
			out = append(out, o)
		}
	}
	return out
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type DataSummary struct {
	TotalRecords       int            `json:"total_records"`
	DateRange          DateRange      `json:"date_range"`
	Currencies         []string       `json:"currencies"`
	RecordsPerCurrency map[string]int `json:"records_per_currency"`
}

// Describe summarizes table size and coverage.
func (t Table) Describe() DataSummary {
	s := DataSummary{
		TotalRecords:       len(t),
		Currencies:         t.Codes(),
		RecordsPerCurrency: make(map[string]int),
	}
	if len(t) == 0 {
		return s
	}
	start, end := t[0].Date, t[0].Date
	for _, o := range t {
		if o.Date.Before(start) {
			start = o.Date
		}
		if o.Date.After(end) {
			end = o.Date
		}
		s.RecordsPerCurrency[o.Currency]++
	}
	s.DateRange = DateRange{Start: start.Format(DateLayout), End: end.Format(DateLayout)}
	return s
}
