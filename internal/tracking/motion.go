package tracking

import (
	"time"

	"github.com/banshee-data/aimlock/internal/geom"
)

const (
	// DefaultMaxDt bounds the elapsed time used for finite differences so a
	// stalled or delayed tick cannot blow up velocity and acceleration.
	DefaultMaxDt = 100 * time.Millisecond

	velocitySmoothing     = 0.3
	accelerationSmoothing = 0.2
)

// MotionEstimator derives target velocity and acceleration from successive
// raw observations. Raw finite differences are noisy, so both are
// exponentially smoothed towards the instantaneous values.
type MotionEstimator struct {
	Velocity     geom.Vector3
	Acceleration geom.Vector3

	previous    geom.Vector3
	hasPrevious bool
	lastUpdate  time.Time
	maxDt       time.Duration
}

// NewMotionEstimator creates an estimator that clamps dt to maxDt.
// A non-positive maxDt selects DefaultMaxDt.
func NewMotionEstimator(maxDt time.Duration) *MotionEstimator {
	if maxDt <= 0 {
		maxDt = DefaultMaxDt
	}
	return &MotionEstimator{maxDt: maxDt}
}

// Observe folds a raw observation taken at now into the velocity and
// acceleration estimates. The observation always becomes the new previous
// position, even when dt is zero.
func (m *MotionEstimator) Observe(raw geom.Vector3, now time.Time) {
	dt := m.elapsed(now)

	if m.hasPrevious && dt > 0 {
		instVelocity := raw.Sub(m.previous).Scale(1 / dt)
		instAcceleration := instVelocity.Sub(m.Velocity).Scale(1 / dt)

		m.Velocity = m.Velocity.Lerp(instVelocity, velocitySmoothing)
		m.Acceleration = m.Acceleration.Lerp(instAcceleration, accelerationSmoothing)
	}

	m.previous = raw
	m.hasPrevious = true
	m.lastUpdate = now
}

// elapsed returns clamp(now-lastUpdate, 0, maxDt) in seconds.
func (m *MotionEstimator) elapsed(now time.Time) float64 {
	d := now.Sub(m.lastUpdate)
	if d < 0 {
		d = 0
	}
	if d > m.maxDt {
		d = m.maxDt
	}
	return d.Seconds()
}

// HasPrevious reports whether at least one observation has been seen.
func (m *MotionEstimator) HasPrevious() bool { return m.hasPrevious }

// Previous returns the last raw observation.
func (m *MotionEstimator) Previous() geom.Vector3 { return m.previous }

// LastUpdate returns the timestamp of the last observation.
func (m *MotionEstimator) LastUpdate() time.Time { return m.lastUpdate }

// Reset clears all motion state.
func (m *MotionEstimator) Reset() {
	*m = MotionEstimator{maxDt: m.maxDt}
}
