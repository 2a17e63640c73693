package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"fxinsight/internal/adapters"
	"fxinsight/internal/adapters/cache"
	"fxinsight/internal/adapters/filecache"
	"fxinsight/internal/adapters/treasury"
	"fxinsight/internal/api"
	"fxinsight/internal/config"
	"fxinsight/internal/metrics"
	httpserver "fxinsight/internal/platform/http"
	"fxinsight/internal/rate"
	"fxinsight/internal/rate/handler"

	"github.com/sirupsen/logrus"
)

// Run wires the application components, starts HTTP server and scheduler
func Run() error {
	appCfg, err := config.Init()
	if err != nil {
		return err
	}
	configureLogging(appCfg.Logging)
	logrus.Info("✅ Config initialization successful")

	// Root context bound to OS signals for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, err := newSource(appCfg)
	if err != nil {
		logrus.WithError(err).Error("Failed to create rate source")
		return err
	}

	// In-memory dataset memo
	memo, err := cache.NewDatasetCache(appCfg.Cache.MemoMaxItems, appCfg.Cache.MemoTTL)
	if err != nil {
		logrus.WithError(err).Error("Failed to create dataset cache")
		return err
	}
	defer memo.Close()

	// Services
	currencies := appCfg.CurrencySet()
	rateService := rate.NewService(source, newEngine(appCfg), memo, newQuery(appCfg))
	rateValidator := rate.NewValidator(currencies.Codes())

	// Warm up; the dashboard reports the error itself if this fails.
	if ds, loadErr := rateService.Dataset(ctx); loadErr != nil {
		logrus.WithError(loadErr).Warn("Initial rate load failed, dashboard will retry on request")
	} else {
		logrus.Infof("✅ Loaded %d records (%s to %s)",
			ds.Summary.TotalRecords, ds.Summary.DateRange.Start, ds.Summary.DateRange.End)
	}

	if appCfg.Scheduler.RefreshInterval > 0 {
		scheduler := rate.NewScheduler(rateService, appCfg.Scheduler.RefreshInterval)
		defer func() {
			if shutDownErr := scheduler.Shutdown(); shutDownErr != nil {
				logrus.Errorf("Scheduler shutdown error: %v", shutDownErr)
			}
		}()
		// Start scheduler tied to root context
		if startErr := scheduler.Start(ctx); startErr != nil {
			logrus.WithError(startErr).Error("Failed to start scheduler")
			return startErr
		}
		logrus.Info("✅ Scheduler activation successful")
	}

	// Handlers and router
	rateHandler := handler.NewRateHandler(rateValidator, rateService, currencies)
	router := api.NewRouter(rateHandler)

	logrus.Info("Starting http server")
	// Block until context is canceled, then perform graceful shutdown.
	if serverErr := httpserver.Start(ctx, appCfg.HTTPServer, router); serverErr != nil {
		stop()
		logrus.Errorf("HTTP server error: %v", serverErr)
		return serverErr
	}
	return nil
}

func configureLogging(cfg config.Logging) {
	logrus.SetOutput(os.Stdout)
	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	if parsedLvl, parseErr := logrus.ParseLevel(cfg.Level); parseErr != nil {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(parsedLvl)
	}
}

func newSource(appCfg *config.AppConfig) (*rate.CachedSource, error) {
	// Base HTTP client (configurable timeout)
	httpTimeout := time.Duration(appCfg.HTTPClient.TimeoutSeconds) * time.Second
	if httpTimeout <= 0 {
		httpTimeout = 30 * time.Second
	}
	baseHTTPClient := &http.Client{Timeout: httpTimeout}

	client := treasury.NewClient(
		baseHTTPClient,
		strings.TrimSuffix(appCfg.Treasury.BaseURL, "/")+appCfg.Treasury.Endpoint,
		appCfg.Treasury.PageSize,
		appCfg.CurrencySet(),
	)

	if !appCfg.Cache.Enabled {
		logrus.Info("File cache disabled")
		return rate.NewCachedSource(client, nil), nil
	}
	store, err := filecache.NewStore(appCfg.Cache.Dir, appCfg.Treasury.SourceVersion, appCfg.Cache.TTL)
	if err != nil {
		return nil, err
	}
	return rate.NewCachedSource(client, store), nil
}

func newEngine(appCfg *config.AppConfig) *metrics.Engine {
	return metrics.NewEngine(metrics.Config{
		Currencies:       appCfg.CurrencySet().Codes(),
		VolatilityWindow: appCfg.Analysis.VolatilityWindow,
		PeriodsPerYear:   appCfg.Analysis.PeriodsPerYear,
	})
}

func newQuery(appCfg *config.AppConfig) adapters.Query {
	return adapters.Query{
		Currencies: appCfg.CurrencySet().Codes(),
		Start:      appCfg.Treasury.Start(),
	}
}
