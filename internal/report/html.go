package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// RenderHTML writes an interactive page with the convergence and
// confidence charts for t.
func RenderHTML(w io.Writer, t *Trace) error {
	if t.Len() == 0 {
		return ErrEmptyTrace
	}

	ticks := make([]string, 0, t.Len())
	distance := make([]opts.LineData, 0, t.Len())
	threshold := make([]opts.LineData, 0, t.Len())
	lock := make([]opts.LineData, 0, t.Len())
	gate := make([]opts.LineData, 0, t.Len())
	for _, p := range t.Points {
		ticks = append(ticks, strconv.Itoa(p.Tick))
		distance = append(distance, lineValue(p.Distance))
		threshold = append(threshold, lineValue(p.Threshold))
		lock = append(lock, lineValue(p.Confidence))
		gate = append(gate, lineValue(p.FireConfidence))
	}

	subtitle := fmt.Sprintf("weapon=%s run=%s ticks=%d", t.Weapon, t.RunID, t.Len())
	if s, ok := t.Summarize(); ok {
		subtitle += fmt.Sprintf(" fires=%d first_fire=%d", s.Fires, s.FirstFireTick)
	}

	convergence := charts.NewLine()
	convergence.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Aim Convergence", Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: "Aim Distance", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Tick", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Distance", NameLocation: "middle", NameGap: 50}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)
	convergence.SetXAxis(ticks).
		AddSeries("distance", distance).
		AddSeries("fire threshold", threshold)

	confidence := charts.NewLine()
	confidence.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{Title: "Confidence"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Right: "10%"}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 1}),
	)
	confidence.SetXAxis(ticks).
		AddSeries("lock", lock).
		AddSeries("fire gate", gate)

	page := components.NewPage()
	page.SetPageTitle("aimlock run " + t.RunID)
	page.AddCharts(convergence, confidence)

	var buf bytes.Buffer
	if err := page.Render(&buf); err != nil {
		return fmt.Errorf("render charts: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// WriteHTML renders t to path, creating parent directories as needed.
func WriteHTML(t *Trace, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := RenderHTML(f, t); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// lineValue maps NaN and Inf, which JSON cannot carry, to ECharts' "-"
// empty-value marker.
func lineValue(v float64) opts.LineData {
	if !isFinite(v) {
		return opts.LineData{Value: "-"}
	}
	return opts.LineData{Value: v}
}
