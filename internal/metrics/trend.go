package metrics

import (
	"bytes"
	"encoding/json"
)

const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

type TrendChange struct {
	Label     string
	Periods   int
	ChangePct float64
	Direction string
}

// TrendRow holds one currency's changes over the lookback windows it has
// enough history for. Windows lacking history are left out entirely.
type TrendRow struct {
	Currency string
	Changes  []TrendChange
}

func (r TrendRow) Change(label string) (TrendChange, bool) {
	for _, c := range r.Changes {
		if c.Label == label {
			return c, true
		}
	}
	return TrendChange{}, false
}

// MarshalJSON flattens changes into change_<label> and direction_<label> keys.
func (r TrendRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"currency":`)
	code, err := json.Marshal(r.Currency)
	if err != nil {
		return nil, err
	}
	buf.Write(code)
	for _, c := range r.Changes {
		pct, err := json.Marshal(c.ChangePct)
		if err != nil {
			return nil, err
		}
		dir, err := json.Marshal(c.Direction)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"change_` + c.Label + `":`)
		buf.Write(pct)
		buf.WriteString(`,"direction_` + c.Label + `":`)
		buf.Write(dir)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (e *Engine) trends(g grouped) []TrendRow {
	rows := make([]TrendRow, 0, len(g.order))
	for _, code := range g.order {
		pts := g.byCode[code]
		row := TrendRow{Currency: code, Changes: make([]TrendChange, 0, len(e.cfg.TrendWindows))}
		n := len(pts)
		for _, w := range e.cfg.TrendWindows {
			if w.Periods <= 0 || n <= w.Periods {
				continue
			}
			change, ok := pctChange(pts[n-1-w.Periods].rate, pts[n-1].rate).Get()
			if !ok {
				continue
			}
			// zero change counts as down
			dir := DirectionDown
			if change > 0 {
				dir = DirectionUp
			}
			row.Changes = append(row.Changes, TrendChange{
				Label:     w.Label,
				Periods:   w.Periods,
				ChangePct: change,
				Direction: dir,
			})
		}
		rows = append(rows, row)
	}
	return rows
}
