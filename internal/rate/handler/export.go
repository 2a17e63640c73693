package handler

import (
	"bytes"
	"fmt"
	"net/http"

	"fxinsight/internal/report"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

// Export godoc
// @Summary Download rates
// @Description Filtered observations as CSV, JSON or a plain-text summary
// @Tags Export
// @Produce text/csv
// @Produce json
// @Produce plain
// @Param format path string true "Export format" Enums(csv,json,txt)
// @Param currency query string false "Comma separated currency codes" example(EUR,GBP)
// @Success 200 {file} file
// @Failure 400 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Failure 500 {object} errorResponse
// @Router /api/v1/export/{format} [get]
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	codes, err := h.currencyFilter(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ds, err := h.service.Dataset(r.Context())
	if err != nil {
		writeDatasetError(w, err, "Export")
		return
	}
	table := ds.Table.Filter(codes)
	now := h.now()
	stamp := now.Format("20060102")

	var (
		buf         bytes.Buffer
		contentType string
		fileName    string
	)
	switch format {
	case "csv":
		contentType, fileName = "text/csv", fmt.Sprintf("currency_data_%s.csv", stamp)
		err = report.WriteCSV(&buf, table)
	case "json":
		contentType, fileName = "application/json", fmt.Sprintf("currency_data_%s.json", stamp)
		err = report.WriteJSON(&buf, table)
	case "txt":
		contentType, fileName = "text/plain; charset=utf-8", fmt.Sprintf("summary_%s.txt", stamp)
		err = report.WriteText(&buf, table, now)
	default:
		writeError(w, http.StatusBadRequest, "unsupported export format")
		return
	}
	if err != nil {
		msg := "ups, couldn't export rates this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "Export", "format": format}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
