package metrics

import (
	"time"
)

type SummaryRow struct {
	Currency    string              `json:"currency"`
	CurrentRate Float               `json:"current_rate"`
	CurrentDate Optional[time.Time] `json:"current_date"`
	MinRate     Float               `json:"min_rate"`
	MaxRate     Float               `json:"max_rate"`
	MeanRate    Float               `json:"mean_rate"`
	StdRate     Float               `json:"std_rate"`
}

func (e *Engine) summary(g grouped) []SummaryRow {
	rows := make([]SummaryRow, 0, len(g.order)+len(e.cfg.Currencies))
	for _, code := range g.order {
		rows = append(rows, summarize(code, g.byCode[code]))
	}
	// configured currencies without data still get a row so callers can show "no data"
	for _, code := range e.cfg.Currencies {
		if _, ok := g.byCode[code]; !ok {
			rows = append(rows, summarize(code, nil))
		}
	}
	return rows
}

func summarize(code string, pts []point) SummaryRow {
	row := SummaryRow{Currency: code}
	if len(pts) == 0 {
		return row
	}
	last := pts[len(pts)-1]
	xs := rates(pts)
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = min(lo, x)
		hi = max(hi, x)
	}
	row.CurrentRate = Some(last.rate)
	row.CurrentDate = Some(last.date)
	row.MinRate = Some(lo)
	row.MaxRate = Some(hi)
	row.MeanRate = mean(xs)
	row.StdRate = sampleStd(xs)
	return row
}
