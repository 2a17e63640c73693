package handler

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"net/url"
	"strings"

	"fxinsight/internal/adapters/treasury"
	"fxinsight/internal/domain"
	"fxinsight/internal/metrics"
	"fxinsight/internal/rate"
	"fxinsight/internal/report"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"
)

//go:embed templates/dashboard.html
var templatesFS embed.FS

var dashboardPage = template.Must(template.ParseFS(templatesFS, "templates/dashboard.html"))

const notAvailable = "N/A"

type currencyCard struct {
	Code      string
	Name      string
	Color     string
	Available bool
	Up        bool
	Rate      string
	AsOf      string
	Change1Q  string
	Change1Y  string
	Min       string
	Max       string
	Mean      string
	Std       string
}

type riskCard struct {
	Code       string
	Color      string
	Current    string
	VsAverage  string
	Percentile string
}

type extremeCard struct {
	Code     string
	High     string
	HighDate string
	Low      string
	LowDate  string
	Range    string
}

type yoyLine struct {
	Code   string
	Year   int
	Rate   string
	Change string
}

type dashboardView struct {
	PlotlyURL   string
	GeneratedAt string
	LoadedAt    string
	Error       string
	Summary     domain.DataSummary
	Cards       []currencyCard
	Risk        []riskCard
	Extremes    []extremeCard
	YoY         []yoyLine
	Charts      map[string]report.Figure
	Supported   []string
	Selected    map[string]bool
	Records     []report.Record
	ExportQuery string
}

// Dashboard godoc
// @Summary Dashboard
// @Description HTML dashboard with overview, analysis, risk, performance and data explorer tabs
// @Tags Dashboard
// @Produce html
// @Param currency query string false "Comma separated currency codes for the data explorer"
// @Success 200 {string} string "HTML page"
// @Router / [get]
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	view := dashboardView{
		PlotlyURL:   report.PlotlyURL,
		GeneratedAt: h.now().Format("2006-01-02 15:04"),
		Supported:   h.validator.SupportedCodes(),
	}

	codes, err := h.currencyFilter(r)
	if err != nil {
		view.Error = err.Error()
		renderDashboard(w, http.StatusBadRequest, view)
		return
	}

	ds, err := h.service.Dataset(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if treasury.IsAcquisitionError(err) || errors.Is(err, domain.ErrNoData) {
			status = http.StatusBadGateway
		}
		logrus.WithError(err).WithField("handler", "Dashboard").Warn("Dashboard rendered without data")
		view.Error = "Failed to load data from US Treasury API: " + err.Error()
		renderDashboard(w, status, view)
		return
	}

	h.fillDashboard(&view, ds, codes)
	renderDashboard(w, http.StatusOK, view)
}

// GetChart godoc
// @Summary Single chart page
// @Description Standalone HTML page for one chart
// @Tags Dashboard
// @Produce html
// @Param name path string true "Chart name" Enums(time_series,volatility,yoy_comparison,correlation,distribution,performance_summary)
// @Success 200 {string} string "HTML page"
// @Failure 404 {object} errorResponse
// @Failure 502 {object} errorResponse
// @Router /charts/{name} [get]
func (h *Handler) GetChart(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	ds, err := h.service.Dataset(r.Context())
	if err != nil {
		writeDatasetError(w, err, "GetChart")
		return
	}

	chart, ok := report.BuildCharts(ds.Bundle, h.currencies.Colors()).Get(name)
	if !ok {
		writeError(w, http.StatusNotFound, "chart not found")
		return
	}

	var buf bytes.Buffer
	if err = report.RenderChart(&buf, chart); err != nil {
		msg := "ups, couldn't render chart this time"
		logrus.WithError(err).WithFields(logrus.Fields{"handler": "GetChart", "chart": name}).Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func renderDashboard(w http.ResponseWriter, status int, view dashboardView) {
	var buf bytes.Buffer
	if err := dashboardPage.Execute(&buf, view); err != nil {
		msg := "ups, couldn't render dashboard this time"
		logrus.WithError(err).WithField("handler", "Dashboard").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) fillDashboard(view *dashboardView, ds *rate.Dataset, codes []string) {
	b := ds.Bundle
	view.LoadedAt = ds.LoadedAt.Format("2006-01-02 15:04")
	view.Summary = ds.Summary

	for _, c := range h.currencies.All() {
		view.Cards = append(view.Cards, currencyCardFor(c, b))
		if vol, ok := b.VolatilityFor(c.Code); ok {
			view.Risk = append(view.Risk, riskCardFor(c, vol))
		}
	}
	for _, e := range b.Extremes {
		view.Extremes = append(view.Extremes, extremeCard{
			Code:     e.Currency,
			High:     fmt.Sprintf("%.4f", e.HighestRate),
			HighDate: e.HighestDate.Format(domain.DateLayout),
			Low:      fmt.Sprintf("%.4f", e.LowestRate),
			LowDate:  e.LowestDate.Format(domain.DateLayout),
			Range:    formatPct(e.RangePct, "%.2f%%"),
		})
	}
	for _, y := range b.YearOverYear {
		view.YoY = append(view.YoY, yoyLine{
			Code:   y.Currency,
			Year:   y.Year,
			Rate:   fmt.Sprintf("%.4f", y.Rate),
			Change: fmt.Sprintf("%+.2f%%", y.YoYChangePct),
		})
	}

	charts := report.BuildCharts(b, h.currencies.Colors())
	view.Charts = make(map[string]report.Figure, len(charts))
	for _, c := range charts {
		view.Charts[c.Name] = c.Figure
	}

	selected := codes
	if len(selected) == 0 {
		selected = ds.Table.Codes()
	}
	view.Selected = make(map[string]bool, len(selected))
	for _, code := range selected {
		view.Selected[code] = true
	}
	view.Records = report.Records(ds.Table.Filter(codes))
	if len(codes) > 0 {
		view.ExportQuery = "?" + url.Values{"currency": {strings.Join(codes, ",")}}.Encode()
	}
}

func currencyCardFor(c domain.Currency, b metrics.Bundle) currencyCard {
	card := currencyCard{Code: c.Code, Name: c.Name, Color: c.Color}
	s, ok := b.SummaryFor(c.Code)
	if !ok || !s.CurrentRate.Valid() {
		return card
	}
	card.Available = true
	card.Rate = formatRate(s.CurrentRate)
	if d, ok := s.CurrentDate.Get(); ok {
		card.AsOf = d.Format(domain.DateLayout)
	}
	card.Min = formatRate(s.MinRate)
	card.Max = formatRate(s.MaxRate)
	card.Mean = formatRate(s.MeanRate)
	card.Std = formatRate(s.StdRate)
	card.Change1Q, card.Change1Y = notAvailable, notAvailable
	if t, ok := b.TrendFor(c.Code); ok {
		if q, ok := t.Change("1q"); ok {
			card.Change1Q = fmt.Sprintf("%+.2f%%", q.ChangePct)
			card.Up = q.Direction == metrics.DirectionUp
		}
		if y, ok := t.Change("1y"); ok {
			card.Change1Y = fmt.Sprintf("%+.2f%%", y.ChangePct)
		}
	}
	return card
}

func riskCardFor(c domain.Currency, v metrics.VolatilityRow) riskCard {
	card := riskCard{Code: c.Code, Color: c.Color, Current: notAvailable}
	cur, okCur := v.CurrentVolatility.Get()
	if okCur {
		card.Current = fmt.Sprintf("%.2f%%", cur*100)
	}
	if avg, ok := v.AverageVolatility.Get(); ok && okCur && avg != 0 {
		card.VsAverage = fmt.Sprintf("%+.1f%% vs avg", (cur-avg)/avg*100)
	}
	card.Percentile = formatPct(v.VolatilityPercentile, "%.0f%%")
	return card
}

func formatRate(v metrics.Float) string {
	if f, ok := v.Get(); ok && !math.IsNaN(f) {
		return fmt.Sprintf("%.4f", f)
	}
	return notAvailable
}

func formatPct(v metrics.Float, layout string) string {
	if f, ok := v.Get(); ok {
		return fmt.Sprintf(layout, f)
	}
	return notAvailable
}
