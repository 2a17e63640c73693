package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"fxinsight/internal/adapters/treasury"
	"fxinsight/internal/domain"
	"fxinsight/internal/rate"

	"github.com/sirupsen/logrus"
)

type DatasetProvider interface {
	Dataset(ctx context.Context) (*rate.Dataset, error)
	Refresh(ctx context.Context) (*rate.Dataset, error)
}

type Validator interface {
	ValidateCodes(codes []string) error
	SupportedCodes() []string
}

type Handler struct {
	validator  Validator
	service    DatasetProvider
	currencies domain.CurrencySet
	now        func() time.Time
}

func NewRateHandler(validator Validator, service DatasetProvider, currencies domain.CurrencySet) *Handler {
	return &Handler{validator: validator, service: service, currencies: currencies, now: time.Now}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDatasetError maps a failed dataset load to a response.
func writeDatasetError(w http.ResponseWriter, err error, handlerName string) {
	log := logrus.WithError(err).WithField("handler", handlerName)
	switch {
	case treasury.IsAcquisitionError(err), errors.Is(err, domain.ErrNoData):
		msg := "couldn't load rates from the Treasury API"
		log.Warn(msg)
		writeError(w, http.StatusBadGateway, msg)
	default:
		msg := "ups, couldn't load rates this time"
		log.Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
	}
}

// currencyFilter reads ?currency=EUR,GBP (also repeated params). An empty
// result means no filter.
func (h *Handler) currencyFilter(r *http.Request) ([]string, error) {
	var codes []string
	for _, raw := range r.URL.Query()["currency"] {
		for _, part := range strings.Split(raw, ",") {
			codes = append(codes, strings.ToUpper(strings.TrimSpace(part)))
		}
	}
	if len(codes) == 0 || (len(codes) == 1 && codes[0] == "") {
		return nil, nil
	}
	if err := h.validator.ValidateCodes(codes); err != nil {
		return nil, err
	}
	return codes, nil
}
