package metrics

import "math"

type VolatilityRow struct {
	Currency             string `json:"currency"`
	CurrentVolatility    Float  `json:"current_volatility"`
	AverageVolatility    Float  `json:"average_volatility"`
	VolatilityPercentile Float  `json:"volatility_percentile"`
}

// returns computes simple period-over-period returns; the first period has none.
func returns(pts []point) []Float {
	out := make([]Float, len(pts))
	for t := range pts {
		if t == 0 || pts[t-1].rate <= 0 {
			out[t] = None[float64]()
			continue
		}
		out[t] = Some((pts[t].rate - pts[t-1].rate) / pts[t-1].rate)
	}
	return out
}

// rollingVolatility is the trailing sample std of the last window returns,
// annualized. A value exists only when all window returns exist, so the
// first window observations of a series are always undefined.
func (e *Engine) rollingVolatility(rets []Float) []Float {
	w := e.cfg.VolatilityWindow
	scale := math.Sqrt(e.cfg.PeriodsPerYear)
	out := make([]Float, len(rets))
	buf := make([]float64, 0, w)
	for t := range rets {
		out[t] = None[float64]()
		if t+1 < w {
			continue
		}
		buf = buf[:0]
		for _, r := range rets[t+1-w : t+1] {
			v, ok := r.Get()
			if !ok {
				break
			}
			buf = append(buf, v)
		}
		if len(buf) < w {
			continue
		}
		if std, ok := sampleStd(buf).Get(); ok {
			out[t] = Some(std * scale)
		}
	}
	return out
}

func (e *Engine) volatility(g grouped) []VolatilityRow {
	rows := make([]VolatilityRow, 0, len(g.order))
	for _, code := range g.order {
		vol := e.rollingVolatility(returns(g.byCode[code]))
		rows = append(rows, summarizeVolatility(code, vol))
	}
	return rows
}

func summarizeVolatility(code string, vol []Float) VolatilityRow {
	row := VolatilityRow{Currency: code}
	if len(vol) == 0 {
		return row
	}
	defined := make([]float64, 0, len(vol))
	for _, v := range vol {
		if x, ok := v.Get(); ok {
			defined = append(defined, x)
		}
	}
	row.AverageVolatility = mean(defined)
	row.CurrentVolatility = vol[len(vol)-1]

	current, ok := row.CurrentVolatility.Get()
	if !ok {
		return row
	}
	// share of all periods, undefined ones included, whose volatility is below current
	below := 0
	for _, x := range defined {
		if x < current {
			below++
		}
	}
	row.VolatilityPercentile = Some(100 * float64(below) / float64(len(vol)))
	return row
}
