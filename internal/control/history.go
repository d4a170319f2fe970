package control

import (
	"time"

	"gonum.org/v1/gonum/stat"
)

// History defaults.
const (
	DefaultHistoryCapacity = 100
	DefaultSummaryWindow   = 20
)

// Sample is one recorded tick.
type Sample struct {
	Confidence float64   `json:"confidence"`
	Distance   float64   `json:"distance"`
	Timestamp  time.Time `json:"timestamp"`
}

// Summary aggregates the most recent samples.
type Summary struct {
	AvgConfidence float64 `json:"avg_confidence"` // [0,1]
	AvgDistance   float64 `json:"avg_distance"`
	Samples       int     `json:"samples"`
}

// History is a bounded FIFO of lock samples.
type History struct {
	capacity int
	window   int
	samples  []Sample
}

// NewHistory returns an empty history. Non-positive arguments use the
// defaults (100 and 20).
func NewHistory(capacity, window int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	if window <= 0 {
		window = DefaultSummaryWindow
	}
	return &History{
		capacity: capacity,
		window:   window,
		samples:  make([]Sample, 0, capacity+1),
	}
}

// Record appends a sample, evicting the oldest once capacity is exceeded.
func (h *History) Record(confidence, distance float64, ts time.Time) {
	h.samples = append(h.samples, Sample{Confidence: confidence, Distance: distance, Timestamp: ts})
	if len(h.samples) > h.capacity {
		n := copy(h.samples, h.samples[len(h.samples)-h.capacity:])
		h.samples = h.samples[:n]
	}
}

// Len returns the number of retained samples.
func (h *History) Len() int { return len(h.samples) }

// Capacity returns the maximum number of retained samples.
func (h *History) Capacity() int { return h.capacity }

// Samples returns a copy of the retained samples, oldest first.
func (h *History) Samples() []Sample {
	out := make([]Sample, len(h.samples))
	copy(out, h.samples)
	return out
}

// Summary averages the most recent window samples. ok is false when the
// history is empty.
func (h *History) Summary() (s Summary, ok bool) {
	if len(h.samples) == 0 {
		return Summary{}, false
	}
	recent := h.samples
	if len(recent) > h.window {
		recent = recent[len(recent)-h.window:]
	}

	confidence := make([]float64, len(recent))
	distance := make([]float64, len(recent))
	for i, sm := range recent {
		confidence[i] = sm.Confidence
		distance[i] = sm.Distance
	}
	return Summary{
		AvgConfidence: stat.Mean(confidence, nil),
		AvgDistance:   stat.Mean(distance, nil),
		Samples:       len(recent),
	}, true
}

// Reset drops all samples.
func (h *History) Reset() { h.samples = h.samples[:0] }
