package control

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)

func TestHistory_Empty(t *testing.T) {
	t.Parallel()

	h := NewHistory(0, 0)
	assert.Equal(t, DefaultHistoryCapacity, h.Capacity())
	assert.Equal(t, 0, h.Len())

	_, ok := h.Summary()
	assert.False(t, ok)
}

func TestHistory_EvictsOldest(t *testing.T) {
	t.Parallel()

	h := NewHistory(100, 20)
	for i := 0; i < 101; i++ {
		h.Record(float64(i), float64(i)*0.001, t0.Add(time.Duration(i)*time.Millisecond))
	}

	require.Equal(t, 100, h.Len())
	samples := h.Samples()
	assert.Equal(t, 1.0, samples[0].Confidence, "first sample must be evicted")
	assert.Equal(t, 100.0, samples[99].Confidence)
	assert.Equal(t, t0.Add(time.Millisecond), samples[0].Timestamp)

	s, ok := h.Summary()
	require.True(t, ok)
	assert.Equal(t, 20, s.Samples)
	// mean of 81..100
	assert.InDelta(t, 90.5, s.AvgConfidence, 1e-12)
	assert.InDelta(t, 0.0905, s.AvgDistance, 1e-12)
}

func TestHistory_SummaryShorterThanWindow(t *testing.T) {
	t.Parallel()

	h := NewHistory(100, 20)
	h.Record(0.5, 0.01, t0)
	h.Record(1.0, 0.03, t0)

	s, ok := h.Summary()
	require.True(t, ok)
	assert.Equal(t, 2, s.Samples)
	assert.InDelta(t, 0.75, s.AvgConfidence, 1e-12)
	assert.InDelta(t, 0.02, s.AvgDistance, 1e-12)
}

func TestHistory_SamplesIsCopy(t *testing.T) {
	t.Parallel()

	h := NewHistory(3, 3)
	h.Record(0.1, 0.1, t0)
	got := h.Samples()
	got[0].Confidence = 99

	assert.Equal(t, 0.1, h.Samples()[0].Confidence)

	h.Reset()
	assert.Equal(t, 0, h.Len())
}

func TestHistory_StaysBounded(t *testing.T) {
	t.Parallel()

	h := NewHistory(5, 2)
	for i := 0; i < 1000; i++ {
		h.Record(1, 1, t0)
		require.LessOrEqual(t, h.Len(), 5)
	}
}
