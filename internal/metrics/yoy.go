package metrics

type YoYRow struct {
	Currency     string  `json:"currency"`
	Year         int     `json:"year"`
	Rate         float64 `json:"rate"`
	YoYChangePct float64 `json:"yoy_change_pct"`
}

// yearOverYear compares each year's last rate with the previous calendar
// year's last rate. The first year with data has no baseline and is skipped,
// as is any year whose predecessor has no observations.
func (e *Engine) yearOverYear(g grouped) []YoYRow {
	rows := make([]YoYRow, 0)
	for _, code := range g.order {
		pts := g.byCode[code]
		yearly := make(map[int]float64)
		years := make([]int, 0)
		for _, p := range pts {
			y := p.date.Year()
			if _, ok := yearly[y]; !ok {
				years = append(years, y)
			}
			yearly[y] = p.rate
		}
		for _, y := range years {
			prev, ok := yearly[y-1]
			if !ok {
				continue
			}
			change, ok := pctChange(prev, yearly[y]).Get()
			if !ok {
				continue
			}
			rows = append(rows, YoYRow{Currency: code, Year: y, Rate: yearly[y], YoYChangePct: change})
		}
	}
	return rows
}
