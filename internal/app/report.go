package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"fxinsight/internal/config"
	"fxinsight/internal/domain"
	"fxinsight/internal/rate"
	"fxinsight/internal/report"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const summaryReportFile = "summary_report.json"

// RunReport runs the batch pipeline once: fetch, analyze, write artifacts.
func RunReport() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	configureLogging(appCfg.Logging)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, err := newSource(appCfg)
	if err != nil {
		return err
	}
	svc := rate.NewService(source, newEngine(appCfg), nil, newQuery(appCfg))
	return runReport(ctx, svc, appCfg, time.Now())
}

func runReport(ctx context.Context, svc *rate.Service, appCfg *config.AppConfig, now time.Time) error {
	log := logrus.WithField("run_id", uuid.NewString())

	log.Info("Step 1: Fetching data from US Treasury API")
	ds, err := svc.Dataset(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to load rates")
		return err
	}
	s := ds.Summary
	log.Infof("Loaded %d records, %s to %s, currencies: %s",
		s.TotalRecords, s.DateRange.Start, s.DateRange.End, strings.Join(s.Currencies, ", "))

	log.Info("Step 2: Metrics calculated (summary, year-over-year, volatility, trends, extremes, correlations)")

	log.Info("Step 3: Creating visualizations")
	charts := report.BuildCharts(ds.Bundle, appCfg.CurrencySet().Colors())
	paths, err := report.WriteChartPages(appCfg.Output.ChartsDir, charts)
	if err != nil {
		log.WithError(err).Error("Failed to write charts")
		return err
	}
	log.Infof("Created %d interactive visualizations in %s", len(paths), appCfg.Output.ChartsDir)

	log.Info("Step 4: Generating summary report")
	reportPath := filepath.Join(appCfg.Output.Dir, summaryReportFile)
	if err = report.WriteSummaryReport(reportPath, report.NewSummaryReport(ds.Summary, ds.Bundle)); err != nil {
		log.WithError(err).Error("Failed to write summary report")
		return err
	}
	log.Infof("Summary report saved to %s", reportPath)

	if err = writeExports(appCfg.Output.Dir, ds.Table, now); err != nil {
		log.WithError(err).Error("Failed to write exports")
		return err
	}
	log.Infof("✅ Analysis complete, outputs saved to %s", appCfg.Output.Dir)
	return nil
}

func writeExports(dir string, table domain.Table, now time.Time) error {
	stamp := now.Format("20060102")
	exports := []struct {
		name  string
		write func(f *os.File) error
	}{
		{fmt.Sprintf("currency_data_%s.csv", stamp), func(f *os.File) error { return report.WriteCSV(f, table) }},
		{fmt.Sprintf("currency_data_%s.json", stamp), func(f *os.File) error { return report.WriteJSON(f, table) }},
		{fmt.Sprintf("summary_%s.txt", stamp), func(f *os.File) error { return report.WriteText(f, table, now) }},
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, e := range exports {
		f, err := os.Create(filepath.Join(dir, e.name))
		if err != nil {
			return err
		}
		writeErr := e.write(f)
		closeErr := f.Close()
		if writeErr != nil {
			return fmt.Errorf("failed to write %s: %w", e.name, writeErr)
		}
		if closeErr != nil {
			return closeErr
		}
	}
	return nil
}
