package diagram

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/alexiusacademia/beamreport/internal/report"
)

// ExportChart draws a force diagram as a bar chart and saves it to filename.
// The format follows the extension (png, svg, pdf); anything else gets ".png".
func ExportChart(c report.Chart, filename string) error {
	p := plot.New()
	p.Title.Text = c.Title
	p.X.Label.Text = plainLabel(c.XLabel)
	p.Y.Label.Text = plainLabel(c.YLabel)
	p.Legend.Top = true

	grid := plotter.NewGrid()
	grid.Vertical.Color = color.Gray{Y: 220}
	grid.Horizontal.Color = color.Gray{Y: 220}
	p.Add(grid)

	half := barHalfWidth(c.XTicks)
	for _, s := range c.Series {
		fill := rgba(s.Color)
		var legend *plotter.Polygon

		for _, pt := range s.Points {
			if pt.Y == 0 {
				continue
			}
			bar, err := plotter.NewPolygon(plotter.XYs{
				{X: pt.X - half, Y: 0},
				{X: pt.X + half, Y: 0},
				{X: pt.X + half, Y: pt.Y},
				{X: pt.X - half, Y: pt.Y},
			})
			if err != nil {
				return fmt.Errorf("building %s bar at x=%g: %w", s.Name, pt.X, err)
			}
			bar.Color = fill
			bar.LineStyle.Color = darken(fill)
			bar.LineStyle.Width = vg.Points(0.5)
			p.Add(bar)

			if legend == nil {
				legend = bar
			}
		}

		if legend != nil {
			p.Legend.Add(s.Name, legend)
		}
	}

	if c.ZeroLine {
		zero, err := plotter.NewLine(plotter.XYs{
			{X: c.XMin, Y: 0},
			{X: c.XMax, Y: 0},
		})
		if err != nil {
			return err
		}
		zero.LineStyle.Width = vg.Points(1.5)
		zero.LineStyle.Color = color.Black
		zero.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		p.Add(zero)
	}

	// Fixed ranges go last because Add widens the axes to fit the data
	p.X.Min, p.X.Max = c.XMin, c.XMax
	p.Y.Min, p.Y.Max = c.YMin, c.YMax
	p.X.Tick.Marker = fixedTicks(c.XTicks)

	width := 8 * vg.Inch
	height := 4 * vg.Inch

	// Create directory if needed
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

// barHalfWidth returns half of a bar width in data units: 30% of the
// smallest gap between stations, so neighbouring bars never touch.
func barHalfWidth(xs []float64) float64 {
	gap := math.Inf(1)
	for i := 1; i < len(xs); i++ {
		if d := xs[i] - xs[i-1]; d > 0 && d < gap {
			gap = d
		}
	}
	if math.IsInf(gap, 1) {
		return 0.1
	}
	return gap * 0.3
}

// fixedTicks labels the axis at the given positions only
type fixedTicks []float64

func (t fixedTicks) Ticks(min, max float64) []plot.Tick {
	if len(t) == 0 {
		return plot.DefaultTicks{}.Ticks(min, max)
	}
	ticks := make([]plot.Tick, 0, len(t))
	for _, x := range t {
		if x < min || x > max {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: x, Label: report.FormatCoord(x)})
	}
	return ticks
}

func rgba(c report.Color) color.RGBA {
	if c.IsZero() {
		return color.RGBA{R: 128, G: 128, B: 128, A: 255}
	}
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

func darken(c color.RGBA) color.RGBA {
	return color.RGBA{R: c.R * 4 / 5, G: c.G * 4 / 5, B: c.B * 4 / 5, A: c.A}
}

// plainLabel swaps symbols the default plot fonts cannot draw
func plainLabel(s string) string {
	return strings.ReplaceAll(s, "·", "-")
}
