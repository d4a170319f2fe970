package report

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// maxPlotValue bounds the magnitudes drawn in PNG plots.
const maxPlotValue = 1e150

var (
	distanceColor  = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	thresholdColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	lockColor      = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	gateColor      = color.RGBA{R: 255, G: 127, B: 14, A: 255}
)

// SavePlots writes distance.png and confidence.png into dir, creating it if
// needed, and returns the written paths.
func SavePlots(t *Trace, dir string) ([]string, error) {
	if t.Len() == 0 {
		return nil, ErrEmptyTrace
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create report dir: %w", err)
	}

	distPts := make(plotter.XYs, 0, t.Len())
	threshPts := make(plotter.XYs, 0, t.Len())
	lockPts := make(plotter.XYs, 0, t.Len())
	gatePts := make(plotter.XYs, 0, t.Len())
	// plotter rejects NaN and Inf, and the axis tick search overflows on
	// values near the float64 limit. Such ticks leave a hole in the line.
	add := func(pts plotter.XYs, x, y float64) plotter.XYs {
		if !isFinite(y) || math.Abs(y) > maxPlotValue {
			return pts
		}
		return append(pts, plotter.XY{X: x, Y: y})
	}
	for _, p := range t.Points {
		x := float64(p.Tick)
		distPts = add(distPts, x, p.Distance)
		threshPts = add(threshPts, x, p.Threshold)
		lockPts = add(lockPts, x, p.Confidence)
		gatePts = add(gatePts, x, p.FireConfidence)
	}

	pDist := plot.New()
	pDist.Title.Text = fmt.Sprintf("%s - Aim Distance (run %s)", t.Weapon, t.RunID)
	pDist.X.Label.Text = "Tick"
	pDist.Y.Label.Text = "Distance"
	if err := addLine(pDist, distPts, "distance", distanceColor); err != nil {
		return nil, err
	}
	if err := addLine(pDist, threshPts, "fire threshold", thresholdColor); err != nil {
		return nil, err
	}

	pConf := plot.New()
	pConf.Title.Text = fmt.Sprintf("%s - Confidence (run %s)", t.Weapon, t.RunID)
	pConf.X.Label.Text = "Tick"
	pConf.Y.Label.Text = "Confidence"
	pConf.Y.Min = 0
	pConf.Y.Max = 1
	if err := addLine(pConf, lockPts, "lock", lockColor); err != nil {
		return nil, err
	}
	if err := addLine(pConf, gatePts, "fire gate", gateColor); err != nil {
		return nil, err
	}

	for _, p := range []*plot.Plot{pDist, pConf} {
		p.Legend.Top = true
		p.Legend.Left = false
		p.Legend.XOffs = -10
		p.Legend.YOffs = -10
	}

	distFile := filepath.Join(dir, "distance.png")
	if err := pDist.Save(14*vg.Inch, 6*vg.Inch, distFile); err != nil {
		return nil, fmt.Errorf("save distance plot: %w", err)
	}
	confFile := filepath.Join(dir, "confidence.png")
	if err := pConf.Save(14*vg.Inch, 6*vg.Inch, confFile); err != nil {
		return nil, fmt.Errorf("save confidence plot: %w", err)
	}
	return []string{distFile, confFile}, nil
}

func addLine(p *plot.Plot, pts plotter.XYs, label string, c color.Color) error {
	if len(pts) == 0 {
		return nil
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("%s line: %w", label, err)
	}
	line.Color = c
	line.Width = vg.Points(1)
	p.Add(line)
	p.Legend.Add(label, line)
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
