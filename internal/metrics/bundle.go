package metrics

import (
	"fmt"

	"fxinsight/internal/domain"
)

const (
	TableSummary      = "summary_stats"
	TableYearOverYear = "yoy_changes"
	TableVolatility   = "volatility"
	TableTrends       = "trends"
	TableExtremes     = "extremes"
	TableCorrelations = "correlations"
	TableSeries       = "series"
)

var TableNames = []string{
	TableSummary,
	TableYearOverYear,
	TableVolatility,
	TableTrends,
	TableExtremes,
	TableCorrelations,
	TableSeries,
}

// Bundle is every metric derived from one rate table.
type Bundle struct {
	Summary      []SummaryRow      `json:"summary_stats"`
	YearOverYear []YoYRow          `json:"yoy_changes"`
	Volatility   []VolatilityRow   `json:"volatility"`
	Trends       []TrendRow        `json:"trends"`
	Extremes     []ExtremeRow      `json:"extremes"`
	Correlations CorrelationMatrix `json:"correlations"`
	Series       []CurrencySeries  `json:"series"`
}

// Table returns the named metric table.
func (b Bundle) Table(name string) (any, error) {
	switch name {
	case TableSummary:
		return b.Summary, nil
	case TableYearOverYear:
		return b.YearOverYear, nil
	case TableVolatility:
		return b.Volatility, nil
	case TableTrends:
		return b.Trends, nil
	case TableExtremes:
		return b.Extremes, nil
	case TableCorrelations:
		return b.Correlations, nil
	case TableSeries:
		return b.Series, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownMetric, name)
	}
}

func (b Bundle) SummaryFor(code string) (SummaryRow, bool) {
	for _, r := range b.Summary {
		if r.Currency == code {
			return r, true
		}
	}
	return SummaryRow{}, false
}

func (b Bundle) TrendFor(code string) (TrendRow, bool) {
	for _, r := range b.Trends {
		if r.Currency == code {
			return r, true
		}
	}
	return TrendRow{}, false
}

func (b Bundle) VolatilityFor(code string) (VolatilityRow, bool) {
	for _, r := range b.Volatility {
		if r.Currency == code {
			return r, true
		}
	}
	return VolatilityRow{}, false
}
