package control

import (
	"math"

	"github.com/banshee-data/aimlock/internal/geom"
	"github.com/banshee-data/aimlock/internal/profiles"
)

// Convergence constants. Not user-tunable.
const (
	minDistanceFactor = 0.1 // sensitivity floor as a fraction of nominal
	velocityGain      = 0.5 // extra sensitivity per unit of target speed
)

// Gains are the loop-wide convergence gains shared by every profile.
type Gains struct {
	BaseSensitivity float64 // default 1.0
	Smoothing       float64 // fraction of the corrected delta applied per tick, default 0.15
}

// DistanceFactor tapers sensitivity as the aim nears the lock centre.
// It is max(0.1, 1 - distance/lockRadius) and never below 0.1.
func DistanceFactor(distance, lockRadius float64) float64 {
	return math.Max(minDistanceFactor, 1-distance/lockRadius)
}

// Sensitivity returns the per-tick correction gain for an aim at distance
// from the predicted target while the target moves at velocity.
func Sensitivity(distance float64, velocity geom.Vector3, p profiles.Profile, base float64) float64 {
	velocityFactor := 1 + velocity.Length()*velocityGain
	return base * p.DragSensitivity * DistanceFactor(distance, p.LockRadius) * velocityFactor
}

// DragAndLock computes the next aim vector.
//
// The whole translated vector is scaled by AccuracyBoost, not just the
// delta, so with AccuracyBoost != 1 the loop's fixed point is not the
// predicted position.
func DragAndLock(predicted, recoil, aim, velocity geom.Vector3, p profiles.Profile, g Gains) geom.Vector3 {
	sensitivity := Sensitivity(aim.Distance(predicted), velocity, p, g.BaseSensitivity)
	delta := predicted.Sub(recoil).Sub(aim).Scale(sensitivity * g.Smoothing)
	return aim.Add(delta).Scale(p.AccuracyBoost)
}

// LockConfidence is 1 when aim sits on target, falls linearly with
// distance and is 0 at or beyond lockRadius.
func LockConfidence(aim, target geom.Vector3, lockRadius float64) float64 {
	return math.Max(0, 1-aim.Distance(target)/lockRadius)
}
