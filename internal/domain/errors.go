package domain

import "errors"

var (
	ErrTransport        = errors.New("rate source unreachable")
	ErrEmptyPayload     = errors.New("rate source returned no data")
	ErrSchemaDrift      = errors.New("rate source returned malformed data")
	ErrUnmappedCurrency = errors.New("currency name can't be mapped to a code")
	ErrUnknownCurrency  = errors.New("currency code is not configured")
	ErrUnknownMetric    = errors.New("unknown metric")
	ErrNoData           = errors.New("no data loaded")
)
