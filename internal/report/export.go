package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"fxinsight/internal/domain"
)

const (
	dataSource = "US Department of Treasury"
	dataAPI    = "Fiscal Data Service"
)

var csvHeader = []string{"date", "currency", "rate", "currency_name"}

// Record is the exported shape of an observation.
type Record struct {
	Date         string  `json:"date"`
	Currency     string  `json:"currency"`
	Rate         float64 `json:"rate"`
	CurrencyName string  `json:"currency_name"`
}

func Records(t domain.Table) []Record {
	out := make([]Record, len(t))
	for i, o := range t {
		out[i] = Record{
			Date:         o.Date.Format(domain.DateLayout),
			Currency:     o.Currency,
			Rate:         o.Rate,
			CurrencyName: o.CurrencyName,
		}
	}
	return out
}

func WriteCSV(w io.Writer, t domain.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range Records(t) {
		row := []string{r.Date, r.Currency, strconv.FormatFloat(r.Rate, 'f', -1, 64), r.CurrencyName}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the table as an indented array of records.
func WriteJSON(w io.Writer, t domain.Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Records(t))
}

// WriteText writes a short plain-text description of the table.
func WriteText(w io.Writer, t domain.Table, generated time.Time) error {
	s := t.Describe()
	_, err := fmt.Fprintf(w, `Currency Data Summary
Generated: %s

Records: %d
Currencies: %s
Date Range: %s to %s

Data Source: %s
API: %s
`,
		generated.Format("2006-01-02 15:04:05"),
		s.TotalRecords,
		strings.Join(s.Currencies, ", "),
		s.DateRange.Start, s.DateRange.End,
		dataSource, dataAPI,
	)
	return err
}
