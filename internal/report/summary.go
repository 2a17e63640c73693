package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"fxinsight/internal/domain"
	"fxinsight/internal/metrics"
)

// SummaryReport is the persisted digest of one analysis run.
type SummaryReport struct {
	DataSummary  domain.DataSummary      `json:"data_summary"`
	SummaryStats []metrics.SummaryRow    `json:"summary_stats"`
	Trends       []metrics.TrendRow      `json:"trends"`
	Volatility   []metrics.VolatilityRow `json:"volatility"`
	Extremes     []metrics.ExtremeRow    `json:"extremes"`
}

func NewSummaryReport(summary domain.DataSummary, b metrics.Bundle) SummaryReport {
	return SummaryReport{
		DataSummary:  summary,
		SummaryStats: b.Summary,
		Trends:       b.Trends,
		Volatility:   b.Volatility,
		Extremes:     b.Extremes,
	}
}

func WriteSummaryReport(path string, r SummaryReport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report dir: %w", err)
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode summary report: %w", err)
	}
	if err = os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write summary report: %w", err)
	}
	return nil
}
