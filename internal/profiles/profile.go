// Package profiles holds the per-instrument tuning tables consumed by the
// control pipeline. Tables are plain read-only data: a lookup never fails,
// unknown identifiers resolve to the DEFAULT profile.
package profiles

import "fmt"

// Profile is the immutable set of tunables for one instrument.
type Profile struct {
	RecoilSmooth    float64 `json:"recoil_smooth"`     // low-pass factor for recoil, (0,1)
	DragSensitivity float64 `json:"drag_sensitivity"`  // convergence gain multiplier
	AimLockStrength float64 `json:"aim_lock_strength"` // recoil compensation strength
	AccuracyBoost   float64 `json:"accuracy_boost"`    // scale applied to the whole new aim vector
	LockRadius      float64 `json:"lock_radius"`       // distance at which confidence reaches zero
}

// Validate checks the profile invariants.
func (p Profile) Validate() error {
	if !(p.RecoilSmooth > 0 && p.RecoilSmooth < 1) {
		return fmt.Errorf("recoil_smooth must be in (0, 1), got %f", p.RecoilSmooth)
	}
	if !(p.DragSensitivity > 0) {
		return fmt.Errorf("drag_sensitivity must be positive, got %f", p.DragSensitivity)
	}
	if !(p.AimLockStrength > 0) {
		return fmt.Errorf("aim_lock_strength must be positive, got %f", p.AimLockStrength)
	}
	if !(p.AccuracyBoost > 0) {
		return fmt.Errorf("accuracy_boost must be positive, got %f", p.AccuracyBoost)
	}
	if !(p.LockRadius > 0) {
		return fmt.Errorf("lock_radius must be positive, got %f", p.LockRadius)
	}
	return nil
}

// Scaled returns a copy of p with LockRadius converted by factor
// (see units.LengthFactor).
func (p Profile) Scaled(factor float64) Profile {
	p.LockRadius *= factor
	return p
}
