package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

// Refresh godoc
// @Summary Reload rates
// @Description Drops cached data and reloads rates from the Treasury API
// @Tags Rates
// @Produce json
// @Success 200 {object} GetSummaryResponse
// @Failure 502 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/v1/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	ds, err := h.service.Refresh(r.Context())
	if err != nil {
		writeDatasetError(w, err, "Refresh")
		return
	}
	logrus.WithField("records", ds.Summary.TotalRecords).Info("Dataset refreshed on request")
	writeJSON(w, GetSummaryResponse{Summary: ds.Summary, LoadedAt: ds.LoadedAt})
}
