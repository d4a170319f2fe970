// Package report turns a recorded control run into summary statistics,
// PNG time-series plots and an interactive HTML chart.
package report

import (
	"errors"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/aimlock/internal/control"
	"github.com/banshee-data/aimlock/internal/geom"
)

// ErrEmptyTrace is returned when rendering a trace with no points.
var ErrEmptyTrace = errors.New("report: trace has no points")

// Point is one recorded tick.
type Point struct {
	Tick           int          `json:"tick"`
	Elapsed        float64      `json:"elapsed_s"`
	Target         geom.Vector3 `json:"target"`
	Predicted      geom.Vector3 `json:"predicted"`
	Aim            geom.Vector3 `json:"aim"`
	Distance       float64      `json:"distance"`
	Threshold      float64      `json:"threshold"`
	Confidence     float64      `json:"confidence"`      // lock confidence
	FireConfidence float64      `json:"fire_confidence"` // gate confidence
	Fire           bool         `json:"fire"`
}

// Trace is the ordered record of one run.
type Trace struct {
	RunID  string  `json:"run_id"`
	Weapon string  `json:"weapon"`
	Points []Point `json:"points"`

	start time.Time
}

// NewTrace returns an empty trace.
func NewTrace(runID, weapon string) *Trace {
	return &Trace{RunID: runID, Weapon: weapon}
}

// Record appends one accepted tick. Elapsed time is measured from the first
// recorded tick.
func (t *Trace) Record(tick int, ts time.Time, in control.Input, res control.Result) {
	if len(t.Points) == 0 {
		t.start = ts
	}
	t.Points = append(t.Points, Point{
		Tick:           tick,
		Elapsed:        ts.Sub(t.start).Seconds(),
		Target:         in.Target,
		Predicted:      res.Predicted,
		Aim:            res.Aim,
		Distance:       res.Fire.Distance,
		Threshold:      res.Fire.Threshold,
		Confidence:     res.Confidence,
		FireConfidence: res.Fire.Confidence,
		Fire:           res.Fire.ShouldFire,
	})
}

// Len returns the number of recorded points.
func (t *Trace) Len() int { return len(t.Points) }

// Summary holds whole-run statistics.
type Summary struct {
	Ticks          int     `json:"ticks"`
	Fires          int     `json:"fires"`
	FirstFireTick  int     `json:"first_fire_tick"` // -1 if the gate never opened
	MeanDistance   float64 `json:"mean_distance"`
	StdDistance    float64 `json:"std_distance"`
	FinalDistance  float64 `json:"final_distance"`
	MeanConfidence float64 `json:"mean_confidence"`
}

// Summarize computes whole-run statistics. ok is false for an empty trace.
func (t *Trace) Summarize() (s Summary, ok bool) {
	if len(t.Points) == 0 {
		return Summary{FirstFireTick: -1}, false
	}

	distance := make([]float64, len(t.Points))
	confidence := make([]float64, len(t.Points))
	s = Summary{Ticks: len(t.Points), FirstFireTick: -1}
	for i, p := range t.Points {
		distance[i] = p.Distance
		confidence[i] = p.Confidence
		if p.Fire {
			s.Fires++
			if s.FirstFireTick < 0 {
				s.FirstFireTick = p.Tick
			}
		}
	}
	s.MeanDistance, s.StdDistance = stat.MeanStdDev(distance, nil)
	if len(distance) < 2 {
		s.StdDistance = 0
	}
	s.MeanConfidence = stat.Mean(confidence, nil)
	s.FinalDistance = distance[len(distance)-1]
	return s, true
}
