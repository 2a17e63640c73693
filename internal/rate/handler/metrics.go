package handler

import (
	"errors"
	"net/http"
	"time"

	"fxinsight/internal/domain"

	"github.com/go-chi/chi/v5"
)

type GetSummaryResponse struct {
	Summary  domain.DataSummary `json:"data_summary"`
	LoadedAt time.Time          `json:"loaded_at" example:"2025-01-02T15:04:05Z"`
}

// GetSummary godoc
// @Summary Dataset summary
// @Description Record counts and date coverage of the loaded dataset
// @Tags Metrics
// @Produce json
// @Success 200 {object} GetSummaryResponse
// @Failure 502 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/v1/summary [get]
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ds, err := h.service.Dataset(r.Context())
	if err != nil {
		writeDatasetError(w, err, "GetSummary")
		return
	}
	writeJSON(w, GetSummaryResponse{Summary: ds.Summary, LoadedAt: ds.LoadedAt})
}

// GetMetrics godoc
// @Summary All metrics
// @Description Summary, year-over-year, volatility, trends, extremes, correlations and series
// @Tags Metrics
// @Produce json
// @Success 200 {object} metrics.Bundle
// @Failure 502 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/v1/metrics [get]
func (h *Handler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	ds, err := h.service.Dataset(r.Context())
	if err != nil {
		writeDatasetError(w, err, "GetMetrics")
		return
	}
	writeJSON(w, ds.Bundle)
}

// GetMetric godoc
// @Summary One metric table
// @Description One named table of the metrics bundle
// @Tags Metrics
// @Produce json
// @Param name path string true "Table name" Enums(summary_stats,yoy_changes,volatility,trends,extremes,correlations,series)
// @Success 200 {object} object
// @Failure 404 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/v1/metrics/{name} [get]
func (h *Handler) GetMetric(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	ds, err := h.service.Dataset(r.Context())
	if err != nil {
		writeDatasetError(w, err, "GetMetric")
		return
	}

	table, err := ds.Bundle.Table(name)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownMetric) {
			writeError(w, http.StatusNotFound, "metric not found")
			return
		}
		writeDatasetError(w, err, "GetMetric")
		return
	}
	writeJSON(w, table)
}
