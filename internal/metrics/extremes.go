package metrics

import "time"

type ExtremeRow struct {
	Currency    string    `json:"currency"`
	HighestRate float64   `json:"highest_rate"`
	HighestDate time.Time `json:"highest_date"`
	LowestRate  float64   `json:"lowest_rate"`
	LowestDate  time.Time `json:"lowest_date"`
	RangePct    Float     `json:"range_pct"`
}

func (e *Engine) extremes(g grouped) []ExtremeRow {
	rows := make([]ExtremeRow, 0, len(g.order))
	for _, code := range g.order {
		pts := g.byCode[code]
		if len(pts) == 0 {
			continue
		}
		hi, lo := pts[0], pts[0]
		for _, p := range pts[1:] {
			// strict comparisons keep the first occurrence on ties
			if p.rate > hi.rate {
				hi = p
			}
			if p.rate < lo.rate {
				lo = p
			}
		}
		rows = append(rows, ExtremeRow{
			Currency:    code,
			HighestRate: hi.rate,
			HighestDate: hi.date,
			LowestRate:  lo.rate,
			LowestDate:  lo.date,
			RangePct:    pctChange(lo.rate, hi.rate),
		})
	}
	return rows
}
