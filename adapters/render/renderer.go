package render

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"calibra/domain/calibration"
)

// Renderer draws the per-sheet calibration plot: group means with SD
// error bars, the fitted line dashed, and the correlation coefficient
// in the legend. It implements ports.PlotRenderer.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

// NewRenderer creates a renderer with the stock 8x5 inch canvas.
func NewRenderer() *Renderer {
	return &Renderer{Width: 8 * vg.Inch, Height: 5 * vg.Inch}
}

// errPoints pairs coordinates with their y error bars for the plotter.
type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

// Render saves the plot as a PNG at path, creating the directory if
// needed. Points with an undefined mean are skipped; an undefined SD
// draws a zero-length bar.
func (r *Renderer) Render(series calibration.PlotSeries, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Average RLU (± SD): %s", series.SheetName)
	p.X.Label.Text = fmt.Sprintf("[%s] samples (%s)", series.Analyte, series.Unit.Symbol())
	p.Y.Label.Text = "AUC (RLU)"
	p.Add(plotter.NewGrid())

	pts := errPoints{}
	fitPts := plotter.XYs{}
	for i := range series.X {
		if !math.IsNaN(series.Y[i]) {
			e := series.YErr[i]
			if math.IsNaN(e) {
				e = 0
			}
			pts.XYs = append(pts.XYs, plotter.XY{X: series.X[i], Y: series.Y[i]})
			pts.YErrors = append(pts.YErrors, struct{ Low, High float64 }{e, e})
		}
		if i < len(series.YFit) && !math.IsNaN(series.YFit[i]) {
			fitPts = append(fitPts, plotter.XY{X: series.X[i], Y: series.YFit[i]})
		}
	}

	if len(pts.XYs) > 0 {
		scatter, err := plotter.NewScatter(pts.XYs)
		if err != nil {
			return fmt.Errorf("build scatter: %w", err)
		}
		scatter.GlyphStyle.Radius = vg.Points(4)
		scatter.GlyphStyle.Color = color.RGBA{R: 65, G: 105, B: 225, A: 255}
		bars, err := plotter.NewYErrorBars(pts)
		if err != nil {
			return fmt.Errorf("build error bars: %w", err)
		}
		bars.Color = color.RGBA{R: 65, G: 105, B: 225, A: 255}
		p.Add(scatter, bars)
	}

	if len(fitPts) > 1 {
		line, err := plotter.NewLine(fitPts)
		if err != nil {
			return fmt.Errorf("build fitted line: %w", err)
		}
		line.Color = color.RGBA{R: 220, A: 255}
		line.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("Linear regression (r=%s)", series.R.Format("%.4f")), line)
		p.Legend.Top = true
	}

	if len(pts.XYs) > 0 && p.Y.Min > 0 {
		p.Y.Min = 0
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create graph dir: %w", err)
	}
	if err := p.Save(r.Width, r.Height, path); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	return nil
}
