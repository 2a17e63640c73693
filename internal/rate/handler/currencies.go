package handler

import "net/http"

type CurrencyInfo struct {
	Code  string `json:"code" example:"EUR"`
	Name  string `json:"name" example:"Euro Zone-Euro"`
	Color string `json:"color" example:"#003399"`
}

type GetCurrenciesResponse struct {
	Codes      []string       `json:"codes" example:"EUR,GBP,CAD"`
	Currencies []CurrencyInfo `json:"currencies"`
}

// GetCurrencies godoc
// @Summary List analysed currencies
// @Description Currencies configured for analysis with their Treasury names and chart colours
// @Tags Rates
// @Produce json
// @Success 200 {object} GetCurrenciesResponse
// @Router /api/v1/currencies [get]
func (h *Handler) GetCurrencies(w http.ResponseWriter, _ *http.Request) {
	res := GetCurrenciesResponse{Codes: h.validator.SupportedCodes()}
	for _, code := range res.Codes {
		c, _ := h.currencies.ByCode(code)
		res.Currencies = append(res.Currencies, CurrencyInfo{Code: code, Name: c.Name, Color: c.Color})
	}
	writeJSON(w, res)
}
