package report

import (
	"math"
	"strconv"
	"strings"

	"fxinsight/internal/metrics"
)

const (
	ChartTimeSeries  = "time_series"
	ChartVolatility  = "volatility"
	ChartYoY         = "yoy_comparison"
	ChartCorrelation = "correlation"
	ChartReturns     = "distribution"
	ChartPerformance = "performance_summary"

	plotBackground = "white"
	defaultColor   = "#636EFA"
)

var ChartNames = []string{ChartTimeSeries, ChartVolatility, ChartYoY, ChartCorrelation, ChartReturns, ChartPerformance}

// Figure is a Plotly figure, rendered client side.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	Type          string   `json:"type"`
	Name          string   `json:"name,omitempty"`
	Mode          string   `json:"mode,omitempty"`
	X             any      `json:"x,omitempty"`
	Y             any      `json:"y,omitempty"`
	Z             any      `json:"z,omitempty"`
	Text          any      `json:"text,omitempty"`
	TextTemplate  string   `json:"texttemplate,omitempty"`
	HoverTemplate string   `json:"hovertemplate,omitempty"`
	Line          *Line    `json:"line,omitempty"`
	Marker        *Marker  `json:"marker,omitempty"`
	Opacity       float64  `json:"opacity,omitempty"`
	NBinsX        int      `json:"nbinsx,omitempty"`
	ColorScale    string   `json:"colorscale,omitempty"`
	ZMid          *float64 `json:"zmid,omitempty"`
	ZMin          *float64 `json:"zmin,omitempty"`
	ZMax          *float64 `json:"zmax,omitempty"`
	XAxis         string   `json:"xaxis,omitempty"`
	YAxis         string   `json:"yaxis,omitempty"`
}

type Line struct {
	Color string `json:"color,omitempty"`
	Width int    `json:"width,omitempty"`
	Dash  string `json:"dash,omitempty"`
}

type Marker struct {
	Color any `json:"color,omitempty"`
}

// Layout is passed to Plotly as is.
type Layout map[string]any

type Chart struct {
	Name   string
	Title  string
	Figure Figure
}

// Charts is the ordered set of figures produced for one bundle.
type Charts []Chart

func (c Charts) Get(name string) (Chart, bool) {
	for _, ch := range c {
		if ch.Name == name {
			return ch, true
		}
	}
	return Chart{}, false
}

// BuildCharts turns a metrics bundle into figures. It only reads values the
// engine already computed.
func BuildCharts(b metrics.Bundle, colors map[string]string) Charts {
	p := palette(colors)
	return Charts{
		timeSeriesChart(b, p),
		volatilityChart(b, p),
		yoyChart(b, p),
		correlationChart(b),
		returnsChart(b, p),
		performanceChart(b, p),
	}
}

type palette map[string]string

func (p palette) of(code string) string {
	if c, ok := p[code]; ok && c != "" {
		return c
	}
	return defaultColor
}

func timeSeriesChart(b metrics.Bundle, p palette) Chart {
	title := "USD Exchange Rates"
	codes := make([]string, 0, len(b.Series))
	firstYear := 0
	traces := make([]Trace, 0, len(b.Series))
	for _, s := range b.Series {
		codes = append(codes, s.Currency)
		x := make([]string, len(s.Points))
		y := make([]float64, len(s.Points))
		for i, pt := range s.Points {
			x[i] = pt.Date.Format("2006-01-02")
			y[i] = pt.Rate
			if firstYear == 0 || pt.Date.Year() < firstYear {
				firstYear = pt.Date.Year()
			}
		}
		traces = append(traces, Trace{
			Type:          "scatter",
			Mode:          "lines",
			Name:          s.Currency + "/USD",
			X:             x,
			Y:             y,
			Line:          &Line{Color: p.of(s.Currency), Width: 2},
			HoverTemplate: "<b>%{fullData.name}</b><br>Date: %{x|%Y-%m-%d}<br>Rate: %{y:.4f}<br><extra></extra>",
		})
	}
	if len(codes) > 0 {
		title += ": " + strings.Join(codes, ", ")
	}
	if firstYear > 0 {
		title += " (" + strconv.Itoa(firstYear) + "-Present)"
	}
	return Chart{
		Name:  ChartTimeSeries,
		Title: title,
		Figure: Figure{Data: traces, Layout: Layout{
			"title":        title,
			"plot_bgcolor": plotBackground,
			"height":       500,
			"hovermode":    "x unified",
			"xaxis":        map[string]any{"title": "Date"},
			"yaxis":        map[string]any{"title": "Exchange Rate (Foreign Currency per 1 USD)"},
			"legend":       map[string]any{"yanchor": "top", "y": 0.99, "xanchor": "left", "x": 0.01},
		}},
	}
}

func volatilityChart(b metrics.Bundle, p palette) Chart {
	const title = "Rolling Volatility (annualized)"
	traces := make([]Trace, 0, len(b.Series))
	for _, s := range b.Series {
		x := make([]string, len(s.Points))
		y := make([]metrics.Float, len(s.Points))
		for i, pt := range s.Points {
			x[i] = pt.Date.Format("2006-01-02")
			if v, ok := pt.Volatility.Get(); ok {
				y[i] = metrics.Some(v * 100)
			}
		}
		traces = append(traces, Trace{
			Type: "scatter",
			Mode: "lines",
			Name: s.Currency,
			X:    x,
			Y:    y,
			Line: &Line{Color: p.of(s.Currency), Width: 2},
		})
	}
	return Chart{
		Name:  ChartVolatility,
		Title: title,
		Figure: Figure{Data: traces, Layout: Layout{
			"title":        title,
			"plot_bgcolor": plotBackground,
			"height":       500,
			"hovermode":    "x unified",
			"xaxis":        map[string]any{"title": "Date"},
			"yaxis":        map[string]any{"title": "Volatility (%)"},
		}},
	}
}

func yoyChart(b metrics.Bundle, p palette) Chart {
	const title = "Year-over-Year Exchange Rate Changes"
	var order []string
	byCode := make(map[string][]metrics.YoYRow)
	for _, r := range b.YearOverYear {
		if _, ok := byCode[r.Currency]; !ok {
			order = append(order, r.Currency)
		}
		byCode[r.Currency] = append(byCode[r.Currency], r)
	}
	traces := make([]Trace, 0, len(order))
	for _, code := range order {
		rows := byCode[code]
		x := make([]int, len(rows))
		y := make([]float64, len(rows))
		for i, r := range rows {
			x[i] = r.Year
			y[i] = r.YoYChangePct
		}
		traces = append(traces, Trace{
			Type:   "bar",
			Name:   code,
			X:      x,
			Y:      y,
			Marker: &Marker{Color: p.of(code)},
		})
	}
	return Chart{
		Name:  ChartYoY,
		Title: title,
		Figure: Figure{Data: traces, Layout: Layout{
			"title":        title,
			"plot_bgcolor": plotBackground,
			"height":       500,
			"barmode":      "group",
			"xaxis":        map[string]any{"title": "Year", "dtick": 1},
			"yaxis":        map[string]any{"title": "Change (%)"},
			"shapes":       []map[string]any{{
				"type": "line", "xref": "paper", "x0": 0, "x1": 1, "y0": 0, "y1": 0,
				"line": map[string]any{"dash": "dash", "color": "gray"},
			}},
		}},
	}
}

func correlationChart(b metrics.Bundle) Chart {
	const title = "Currency Correlation Matrix"
	m := b.Correlations
	text := make([][]string, len(m.Values))
	for i, row := range m.Values {
		text[i] = make([]string, len(row))
		for j, v := range row {
			if f, ok := v.Get(); ok {
				text[i][j] = strconv.FormatFloat(math.Round(f*100)/100, 'f', 2, 64)
			}
		}
	}
	zero, lo, hi := 0.0, -1.0, 1.0
	return Chart{
		Name:  ChartCorrelation,
		Title: title,
		Figure: Figure{
			Data: []Trace{{
				Type:         "heatmap",
				X:            m.Currencies,
				Y:            m.Currencies,
				Z:            m.Values,
				Text:         text,
				TextTemplate: "%{text}",
				ColorScale:   "RdBu",
				ZMid:         &zero,
				ZMin:         &lo,
				ZMax:         &hi,
			}},
			Layout: Layout{
				"title":        title,
				"plot_bgcolor": plotBackground,
				"height":       400,
				"width":        500,
			},
		},
	}
}

func returnsChart(b metrics.Bundle, p palette) Chart {
	const title = "Distribution of Quarterly Returns (%)"
	traces := make([]Trace, 0, len(b.Series))
	for _, s := range b.Series {
		x := make([]float64, 0, len(s.Points))
		for _, pt := range s.Points {
			if r, ok := pt.Return.Get(); ok {
				x = append(x, r*100)
			}
		}
		traces = append(traces, Trace{
			Type:    "histogram",
			Name:    s.Currency,
			X:       x,
			Opacity: 0.7,
			NBinsX:  50,
			Marker:  &Marker{Color: p.of(s.Currency)},
		})
	}
	return Chart{
		Name:  ChartReturns,
		Title: title,
		Figure: Figure{Data: traces, Layout: Layout{
			"title":        title,
			"plot_bgcolor": plotBackground,
			"height":       500,
			"barmode":      "overlay",
			"xaxis":        map[string]any{"title": "Quarterly Return (%)"},
			"yaxis":        map[string]any{"title": "Frequency"},
		}},
	}
}

func performanceChart(b metrics.Bundle, p palette) Chart {
	const title = "Currency Performance Dashboard"

	var current, ranges barSeries
	for _, r := range b.Summary {
		if v, ok := r.CurrentRate.Get(); ok {
			current.add(r.Currency, v, p)
		}
		lo, okLo := r.MinRate.Get()
		hi, okHi := r.MaxRate.Get()
		if okLo && okHi {
			ranges.add(r.Currency, hi-lo, p)
		}
	}
	var quarter, year barSeries
	for _, r := range b.Trends {
		if c, ok := r.Change("1q"); ok {
			quarter.add(r.Currency, c.ChangePct, p)
		}
		if c, ok := r.Change("1y"); ok {
			year.add(r.Currency, c.ChangePct, p)
		}
	}

	traces := []Trace{
		current.trace("Current", "x", "y"),
		ranges.trace("Range", "x2", "y2"),
		quarter.trace("1Q Change", "x3", "y3"),
		year.trace("1Y Change", "x4", "y4"),
	}
	subtitles := []string{"Current Rates", "Rate Ranges", "1-Quarter Change", "1-Year Change"}
	annotations := make([]map[string]any, len(subtitles))
	for i, s := range subtitles {
		axis := ""
		if i > 0 {
			axis = strconv.Itoa(i + 1)
		}
		annotations[i] = map[string]any{
			"text":      s,
			"showarrow": false,
			"xref":      "x" + axis + " domain",
			"yref":      "y" + axis + " domain",
			"x":         0.5,
			"y":         1.12,
			"xanchor":   "center",
		}
	}
	return Chart{
		Name:  ChartPerformance,
		Title: title,
		Figure: Figure{Data: traces, Layout: Layout{
			"title":        title,
			"plot_bgcolor": plotBackground,
			"height":       700,
			"showlegend":   false,
			"grid":         map[string]any{"rows": 2, "columns": 2, "pattern": "independent"},
			"annotations":  annotations,
		}},
	}
}

type barSeries struct {
	x      []string
	y      []float64
	colors []string
}

func (s *barSeries) add(code string, v float64, p palette) {
	s.x = append(s.x, code)
	s.y = append(s.y, v)
	s.colors = append(s.colors, p.of(code))
}

func (s barSeries) trace(name, xaxis, yaxis string) Trace {
	return Trace{
		Type:   "bar",
		Name:   name,
		X:      nonNil(s.x),
		Y:      nonNil(s.y),
		Marker: &Marker{Color: s.colors},
		XAxis:  xaxis,
		YAxis:  yaxis,
	}
}

func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}
