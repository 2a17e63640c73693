package rate

import (
	"errors"
	"fmt"
	"slices"
)

var (
	ErrCurrencyRequired    = errors.New("currency code is required")
	ErrCurrencyUnsupported = errors.New("currency not supported")
)

type CurrencyValidator struct {
	supportedCodesSet map[string]struct{} // read only copy
	supportedCodesLst []string            // read only copy, configured order
}

// ValidateCodes checks a user supplied currency filter. An empty filter is valid.
func (v *CurrencyValidator) ValidateCodes(codes []string) error {
	for _, code := range codes {
		if code == "" {
			return ErrCurrencyRequired
		}
		if _, ok := v.supportedCodesSet[code]; !ok {
			return fmt.Errorf("%w: %s", ErrCurrencyUnsupported, code)
		}
	}
	return nil
}

func (v *CurrencyValidator) SupportedCodes() []string {
	return slices.Clone(v.supportedCodesLst)
}

func NewValidator(supportedCodes []string) *CurrencyValidator {
	codesLst := slices.Clone(supportedCodes)
	codesSet := make(map[string]struct{}, len(codesLst))
	for _, c := range codesLst {
		codesSet[c] = struct{}{}
	}
	return &CurrencyValidator{
		supportedCodesSet: codesSet,
		supportedCodesLst: codesLst,
	}
}
