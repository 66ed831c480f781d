package terminal

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/2beens/prtracker/internal/render"
	"github.com/2beens/prtracker/pkg"
)

const (
	chartWidth  = 1000
	chartHeight = 360
)

// WriteChartPNG draws c as a line chart into dir and returns the file path.
// Nothing is written for a chart without points.
func WriteChartPNG(dir, name string, c render.Chart) (string, error) {
	if len(c.Labels) == 0 {
		return "", nil
	}

	ch := buildChart(c)
	if err := pkg.EnsureDir(dir, 0o755); err != nil {
		return "", fmt.Errorf("create charts dir: %w", err)
	}

	path := filepath.Join(dir, name+".png")
	if err := writeFile(path, func(w io.Writer) error {
		return ch.Render(chart.PNG, w)
	}); err != nil {
		return "", err
	}
	return path, nil
}

// writeFile creates path and fills it with write. On any failure, closing
// included, the file is removed so no partial chart is left behind.
func writeFile(path string, write func(w io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close chart file: %w", closeErr)
		}
		if err != nil {
			if rmErr := os.Remove(path); rmErr != nil {
				log.Warnf("remove partial chart %s: %s", path, rmErr)
			}
		}
	}()

	if err := write(f); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// the category axis is drawn as 1..n, labeled with the dates
func buildChart(c render.Chart) chart.Chart {
	n := len(c.Labels)
	xs := make([]float64, n)
	ticks := make([]chart.Tick, 0, n+1)
	for i, label := range c.Labels {
		xs[i] = float64(i + 1)
		ticks = append(ticks, chart.Tick{Value: xs[i], Label: label})
	}
	xMax := float64(n) + 0.5
	if n == 1 {
		// go-chart needs a non zero range
		xMax = 2
		ticks = append(ticks, chart.Tick{Value: 2, Label: ""})
	}

	series := make([]chart.Series, 0, len(c.Datasets))
	yMin, yMax := 0.0, 0.0
	first := true
	for _, ds := range c.Datasets {
		style := chart.Style{
			StrokeColor: parseColor(ds.BorderColor, chart.ColorBlue),
			StrokeWidth: 2,
			DotColor:    parseColor(ds.BorderColor, chart.ColorBlue),
			DotWidth:    3,
		}
		if ds.Fill {
			style.FillColor = parseColor(ds.BackgroundColor, chart.ColorLightGray)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    ds.Label,
			XValues: xs,
			YValues: ds.Data,
			Style:   style,
		})
		for _, v := range ds.Data {
			if first || v < yMin {
				yMin = v
			}
			if first || v > yMax {
				yMax = v
			}
			first = false
		}
	}

	if c.BeginAtZero && yMin > 0 {
		yMin = 0
	}
	if yMax <= yMin {
		yMin, yMax = yMin-1, yMax+1
	}

	ch := chart.Chart{
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 14, Left: 16, Right: 12, Bottom: 48}},
		XAxis: chart.XAxis{
			Name:  c.XTitle,
			Ticks: ticks,
			Range: &chart.ContinuousRange{Min: 0.5, Max: xMax},
		},
		YAxis: chart.YAxis{
			Name:  c.YTitle,
			Range: &chart.ContinuousRange{Min: yMin, Max: yMax},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	return ch
}

// parseColor reads the rgba(r, g, b, a) notation used by render.Dataset.
func parseColor(css string, fallback drawing.Color) drawing.Color {
	var r, g, b uint8
	var a float64
	css = strings.ReplaceAll(css, " ", "")
	if _, err := fmt.Sscanf(css, "rgba(%d,%d,%d,%g)", &r, &g, &b, &a); err != nil {
		return fallback
	}
	return drawing.Color{R: r, G: g, B: b, A: uint8(a * 255)}
}

// chartName turns a page path into a file name.
func chartName(path string) string {
	name := strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, strings.Trim(path, "/"))
	if name == "" {
		return "chart"
	}
	return name
}
