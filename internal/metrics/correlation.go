package metrics

import (
	"slices"
	"time"

	"fxinsight/internal/domain"
)

// CorrelationMatrix is a symmetric currency x currency matrix of Pearson
// coefficients. Axes are sorted alphabetically.
type CorrelationMatrix struct {
	Currencies []string  `json:"currencies"`
	Values     [][]Float `json:"values"`
}

// At returns the coefficient for the pair, absent for unknown codes.
func (m CorrelationMatrix) At(a, b string) Float {
	i := slices.Index(m.Currencies, a)
	j := slices.Index(m.Currencies, b)
	if i < 0 || j < 0 {
		return None[float64]()
	}
	return m.Values[i][j]
}

type cell struct {
	sum   float64
	count int
}

// correlation pivots the table into a date x currency grid, averaging
// duplicate (date, currency) observations, and correlates every pair of
// currencies over the dates both have a value for.
func (e *Engine) correlation(t domain.Table) CorrelationMatrix {
	grid := make(map[string]map[int64]*cell)
	dateSet := make(map[int64]struct{})
	for _, o := range t {
		key := dayKey(o.Date)
		dateSet[key] = struct{}{}
		col, ok := grid[o.Currency]
		if !ok {
			col = make(map[int64]*cell)
			grid[o.Currency] = col
		}
		c, ok := col[key]
		if !ok {
			c = &cell{}
			col[key] = c
		}
		c.sum += o.Rate
		c.count++
	}

	dates := make([]int64, 0, len(dateSet))
	for d := range dateSet {
		dates = append(dates, d)
	}
	slices.Sort(dates)

	codes := make([]string, 0, len(grid))
	for code := range grid {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	m := CorrelationMatrix{Currencies: codes, Values: make([][]Float, len(codes))}
	for i := range codes {
		m.Values[i] = make([]Float, len(codes))
	}
	for i, a := range codes {
		if len(grid[a]) >= 2 {
			m.Values[i][i] = Some(1.0)
		}
		for j := i + 1; j < len(codes); j++ {
			xs, ys := pairwiseComplete(grid[a], grid[codes[j]], dates)
			r := pearson(xs, ys)
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return m
}

func pairwiseComplete(a, b map[int64]*cell, dates []int64) ([]float64, []float64) {
	xs := make([]float64, 0, len(dates))
	ys := make([]float64, 0, len(dates))
	for _, d := range dates {
		ca, okA := a[d]
		cb, okB := b[d]
		if !okA || !okB {
			continue
		}
		xs = append(xs, ca.sum/float64(ca.count))
		ys = append(ys, cb.sum/float64(cb.count))
	}
	return xs, ys
}

func dayKey(t time.Time) int64 {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix()
}
