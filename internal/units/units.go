// Package units provides shared constants and validation for aim unit scales
package units

import "fmt"

// Scale constants
const (
	Normalized = "normalized" // screen space, each axis in [-1, 1]
	Degrees    = "degrees"    // angular offset from boresight
)

// ValidScales contains all valid unit scale values
var ValidScales = []string{Normalized, Degrees}

// DefaultFieldOfViewDeg is the horizontal field of view assumed when
// mapping normalized screen space onto degrees.
const DefaultFieldOfViewDeg = 90.0

// IsValid checks if the given scale is in the list of valid scales
func IsValid(scale string) bool {
	for _, validScale := range ValidScales {
		if scale == validScale {
			return true
		}
	}
	return false
}

// GetValidScalesString returns a comma-separated string of valid scales for error messages
func GetValidScalesString() string {
	return "normalized, degrees"
}

// LengthFactor returns the multiplier that converts a normalized
// screen-space length into the target scale. Profile radii are authored
// in normalized units, so this is applied once at startup.
// A full normalized span of 2 covers the field of view, hence fov/2.
func LengthFactor(scale string, fovDeg float64) (float64, error) {
	switch scale {
	case Normalized, "":
		return 1, nil
	case Degrees:
		if fovDeg <= 0 || fovDeg >= 360 {
			return 0, fmt.Errorf("field of view must be in (0, 360) degrees, got %f", fovDeg)
		}
		return fovDeg / 2, nil
	default:
		return 0, fmt.Errorf("unknown unit scale %q (valid: %s)", scale, GetValidScalesString())
	}
}

// DisplayDistance converts a distance into the value shown in reports:
// thousandths for normalized space, plain degrees otherwise.
func DisplayDistance(d float64, scale string) float64 {
	switch scale {
	case Degrees:
		return d
	default:
		return d * 1000
	}
}

// DisplaySuffix returns the label that accompanies DisplayDistance.
func DisplaySuffix(scale string) string {
	switch scale {
	case Degrees:
		return "°"
	default:
		return "mm"
	}
}
