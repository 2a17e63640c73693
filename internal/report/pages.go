package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
)

const PlotlyURL = "https://cdn.plot.ly/plotly-2.35.2.min.js"

//go:embed templates/chart.html
var templatesFS embed.FS

var chartPage = template.Must(template.ParseFS(templatesFS, "templates/chart.html"))

type chartPageData struct {
	Title     string
	PlotlyURL string
	Figure    Figure
}

// RenderChart writes a standalone HTML page for one chart.
func RenderChart(w io.Writer, c Chart) error {
	return chartPage.Execute(w, chartPageData{Title: c.Title, PlotlyURL: PlotlyURL, Figure: c.Figure})
}

// WriteChartPages writes <name>.html for every chart into dir and returns the paths.
func WriteChartPages(dir string, charts Charts) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create charts dir: %w", err)
	}
	paths := make([]string, 0, len(charts))
	for _, c := range charts {
		path := filepath.Join(dir, c.Name+".html")
		if err := writeChartFile(path, c); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeChartFile(path string, c Chart) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); err == nil && closeErr != nil {
			err = closeErr
		}
	}()
	if err = RenderChart(f, c); err != nil {
		return fmt.Errorf("failed to render %s: %w", c.Name, err)
	}
	return nil
}
