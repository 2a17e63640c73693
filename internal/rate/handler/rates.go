package handler

import (
	"net/http"

	"fxinsight/internal/domain"
	"fxinsight/internal/report"
)

type GetRatesResponse struct {
	Summary domain.DataSummary `json:"data_summary"`
	Records []report.Record    `json:"records"`
}

// GetRates godoc
// @Summary Get quarterly rates
// @Description Raw observations, optionally filtered by currency
// @Tags Rates
// @Produce json
// @Param currency query string false "Comma separated currency codes" example(EUR,GBP)
// @Success 200 {object} GetRatesResponse
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/v1/rates [get]
func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	codes, err := h.currencyFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ds, err := h.service.Dataset(r.Context())
	if err != nil {
		writeDatasetError(w, err, "GetRates")
		return
	}

	table := ds.Table.Filter(codes)
	writeJSON(w, GetRatesResponse{
		Summary: table.Describe(),
		Records: report.Records(table),
	})
}
