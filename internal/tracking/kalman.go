package tracking

import "math"

const (
	// innovationWindow is the number of residuals averaged when adapting Q.
	// The history is allowed to reach innovationWindow+1 entries before the
	// oldest is evicted.
	innovationWindow = 10
	// innovationGain scales the mean absolute innovation into the Q multiplier.
	innovationGain = 10.0
)

// ScalarKalman is a one-dimensional Kalman filter with a static-position
// model (state transition = 1, observation = 1). Process noise adapts to
// the mean magnitude of recent innovations so that a target that starts
// moving is followed more closely.
//
// Precondition: r > 0. With r == 0 the gain denominator reduces to the
// predicted covariance alone and the filter degenerates to pass-through,
// dividing by zero once the covariance collapses.
type ScalarKalman struct {
	r         float64 // measurement noise variance
	q         float64 // base process noise variance
	adaptiveQ float64 // current process noise variance

	estimate    float64
	covariance  float64
	initialized bool

	innovations []float64
}

// NewScalarKalman creates an uninitialised filter. The first call to
// Filter seeds the estimate.
func NewScalarKalman(r, q float64) *ScalarKalman {
	return &ScalarKalman{
		r:           r,
		q:           q,
		adaptiveQ:   q,
		innovations: make([]float64, 0, innovationWindow+1),
	}
}

// Filter folds one observation into the estimate and returns the new
// estimate.
func (k *ScalarKalman) Filter(z float64) float64 {
	if len(k.innovations) > innovationWindow {
		var sum float64
		for _, v := range k.innovations {
			sum += math.Abs(v)
		}
		avg := sum / float64(len(k.innovations))
		k.adaptiveQ = k.q * (1 + avg*innovationGain)
		k.innovations = k.innovations[1:]
	}

	if !k.initialized {
		k.estimate = z
		k.covariance = k.r
		k.initialized = true
		return k.estimate
	}

	predEstimate := k.estimate
	predCov := k.covariance + k.adaptiveQ
	gain := predCov / (predCov + k.r)
	innovation := z - predEstimate

	k.innovations = append(k.innovations, innovation)
	k.estimate = predEstimate + gain*innovation
	k.covariance = predCov * (1 - gain)

	return k.estimate
}

// Estimate returns the current state estimate (0 before the first observation).
func (k *ScalarKalman) Estimate() float64 { return k.estimate }

// Covariance returns the current estimate covariance (0 before the first observation).
func (k *ScalarKalman) Covariance() float64 { return k.covariance }

// AdaptiveQ returns the process noise currently in use.
func (k *ScalarKalman) AdaptiveQ() float64 { return k.adaptiveQ }

// Initialized reports whether the filter has seen an observation.
func (k *ScalarKalman) Initialized() bool { return k.initialized }

// Innovations returns a copy of the retained residual history, oldest first.
func (k *ScalarKalman) Innovations() []float64 {
	out := make([]float64, len(k.innovations))
	copy(out, k.innovations)
	return out
}

// Reset returns the filter to its uninitialised state, keeping R and Q.
func (k *ScalarKalman) Reset() {
	k.estimate = 0
	k.covariance = 0
	k.initialized = false
	k.adaptiveQ = k.q
	k.innovations = k.innovations[:0]
}
