package metrics

import "time"

type SeriesPoint struct {
	Date       time.Time `json:"date"`
	Rate       float64   `json:"rate"`
	Return     Float     `json:"return"`
	Volatility Float     `json:"volatility"`
}

// CurrencySeries is the per-period view charts draw from.
type CurrencySeries struct {
	Currency string        `json:"currency"`
	Points   []SeriesPoint `json:"points"`
}

func (e *Engine) series(g grouped) []CurrencySeries {
	out := make([]CurrencySeries, 0, len(g.order))
	for _, code := range g.order {
		pts := g.byCode[code]
		rets := returns(pts)
		vol := e.rollingVolatility(rets)
		s := CurrencySeries{Currency: code, Points: make([]SeriesPoint, len(pts))}
		for i, p := range pts {
			s.Points[i] = SeriesPoint{Date: p.date, Rate: p.rate, Return: rets[i], Volatility: vol[i]}
		}
		out = append(out, s)
	}
	return out
}
