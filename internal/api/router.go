package api

import (
	_ "fxinsight/docs"
	"fxinsight/internal/platform/telemetry"
	"fxinsight/internal/rate/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(rateHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))
	router.Use(telemetry.InstrumentHTTP)

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)
	router.Handle("/metrics", telemetry.Handler())

	router.Get("/", rateHandler.Dashboard)
	router.Get("/charts/{name}", rateHandler.GetChart)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/currencies", rateHandler.GetCurrencies)
		r.Get("/rates", rateHandler.GetRates)
		r.Get("/summary", rateHandler.GetSummary)
		r.Get("/metrics", rateHandler.GetMetrics)
		r.Get("/metrics/{name}", rateHandler.GetMetric)
		r.Get("/export/{format:csv|json|txt}", rateHandler.Export)
		r.Post("/refresh", rateHandler.Refresh)
	})
	return router
}
