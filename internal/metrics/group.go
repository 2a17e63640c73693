package metrics

import (
	"sort"
	"time"

	"fxinsight/internal/domain"
)

type point struct {
	date time.Time
	rate float64
}

// grouped is the per-currency view of a table: each currency's observations
// in ascending date order. Built once per computation and shared by all metrics.
type grouped struct {
	order  []string // first appearance in the table
	byCode map[string][]point
}

func group(t domain.Table) grouped {
	g := grouped{byCode: make(map[string][]point)}
	for _, o := range t {
		pts, ok := g.byCode[o.Currency]
		if !ok {
			g.order = append(g.order, o.Currency)
		}
		g.byCode[o.Currency] = append(pts, point{date: o.Date, rate: o.Rate})
	}
	for _, pts := range g.byCode {
		sort.SliceStable(pts, func(i, j int) bool { return pts[i].date.Before(pts[j].date) })
	}
	return g
}

func rates(pts []point) []float64 {
	xs := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.rate
	}
	return xs
}
