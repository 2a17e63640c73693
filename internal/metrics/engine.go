package metrics

import (
	"slices"

	"fxinsight/internal/domain"
)

// TrendWindow is a lookback of Periods observations reported under Label.
type TrendWindow struct {
	Label   string
	Periods int
}

// DefaultTrendWindows look back one quarter, one year and two years of quarterly data.
var DefaultTrendWindows = []TrendWindow{
	{Label: "1q", Periods: 1},
	{Label: "1y", Periods: 4},
	{Label: "2y", Periods: 8},
}

const (
	DefaultVolatilityWindow = 4
	// DefaultPeriodsPerYear matches quarterly sampling.
	DefaultPeriodsPerYear = 4
)

type Config struct {
	// Currencies that always get a summary row, even when absent from the table.
	Currencies       []string
	VolatilityWindow int
	// PeriodsPerYear annualizes volatility by sqrt(PeriodsPerYear).
	PeriodsPerYear float64
	TrendWindows   []TrendWindow
}

// Engine derives statistics from a rate table. It holds no state between
// calls and never modifies its input.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	if cfg.VolatilityWindow <= 0 {
		cfg.VolatilityWindow = DefaultVolatilityWindow
	}
	if cfg.PeriodsPerYear <= 0 {
		cfg.PeriodsPerYear = DefaultPeriodsPerYear
	}
	if len(cfg.TrendWindows) == 0 {
		cfg.TrendWindows = DefaultTrendWindows
	}
	cfg.Currencies = slices.Clone(cfg.Currencies)
	cfg.TrendWindows = slices.Clone(cfg.TrendWindows)
	return &Engine{cfg: cfg}
}

// Compute builds every metric table from one grouping pass over t.
func (e *Engine) Compute(t domain.Table) Bundle {
	g := group(t)
	return Bundle{
		Summary:      e.summary(g),
		YearOverYear: e.yearOverYear(g),
		Volatility:   e.volatility(g),
		Trends:       e.trends(g),
		Extremes:     e.extremes(g),
		Correlations: e.correlation(t),
		Series:       e.series(g),
	}
}

func (e *Engine) Summary(t domain.Table) []SummaryRow { return e.summary(group(t)) }

func (e *Engine) YearOverYear(t domain.Table) []YoYRow { return e.yearOverYear(group(t)) }

func (e *Engine) Volatility(t domain.Table) []VolatilityRow { return e.volatility(group(t)) }

func (e *Engine) Trends(t domain.Table) []TrendRow { return e.trends(group(t)) }

func (e *Engine) Extremes(t domain.Table) []ExtremeRow { return e.extremes(group(t)) }

func (e *Engine) Correlation(t domain.Table) CorrelationMatrix { return e.correlation(t) }

func (e *Engine) Series(t domain.Table) []CurrencySeries { return e.series(group(t)) }
