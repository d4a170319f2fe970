package control

import "github.com/banshee-data/aimlock/internal/geom"

// RecoilCompensator low-pass filters the raw recoil disturbance into an
// offset that the convergence step subtracts from the predicted target.
type RecoilCompensator struct {
	strength float64
	offset   geom.Vector3
}

// NewRecoilCompensator returns a compensator with a zero offset. strength is
// the profile's AimLockStrength.
func NewRecoilCompensator(strength float64) *RecoilCompensator {
	return &RecoilCompensator{strength: strength}
}

// Update folds raw into the offset and returns the new offset:
//
//	offset = offset*smoothing + raw*strength*(1-smoothing)
//
// smoothing near 1 gives a slow, heavily damped response.
func (r *RecoilCompensator) Update(raw geom.Vector3, smoothing float64) geom.Vector3 {
	r.offset = r.offset.Scale(smoothing).Add(raw.Scale(r.strength * (1 - smoothing)))
	return r.offset
}

// Offset returns the current compensated offset.
func (r *RecoilCompensator) Offset() geom.Vector3 { return r.offset }

// Strength returns the gain applied to raw disturbances.
func (r *RecoilCompensator) Strength() float64 { return r.strength }

// Reset zeroes the offset.
func (r *RecoilCompensator) Reset() { r.offset = geom.Zero() }
