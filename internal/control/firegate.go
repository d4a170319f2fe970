package control

import (
	"math"

	"github.com/banshee-data/aimlock/internal/geom"
	"github.com/banshee-data/aimlock/internal/profiles"
)

// DefaultFireThreshold is the base fire threshold before profile and
// velocity scaling.
const DefaultFireThreshold = 0.003

// FireDecision is the outcome of the fire gate for one tick.
type FireDecision struct {
	ShouldFire bool    `json:"should_fire"`
	Distance   float64 `json:"distance"`
	Threshold  float64 `json:"threshold"`
	Confidence float64 `json:"confidence"`
}

// FireGate decides whether aim is close enough to target to fire. The
// threshold widens with target speed:
//
//	threshold = base * lockRadius * (1 + |velocity|*0.1)
func FireGate(aim, target, velocity geom.Vector3, p profiles.Profile, baseThreshold float64) FireDecision {
	distance := aim.Distance(target)
	threshold := baseThreshold * p.LockRadius * (1 + velocity.Length()*0.1)
	return FireDecision{
		ShouldFire: distance <= threshold,
		Distance:   distance,
		Threshold:  threshold,
		Confidence: math.Max(0, 1-distance/threshold),
	}
}
