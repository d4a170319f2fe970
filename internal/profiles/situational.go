package profiles

// GameMode selects a sensitivity multiplier for the match type.
type GameMode string

const (
	ModeNormal      GameMode = "normal"
	ModeRanked      GameMode = "ranked"
	ModeCloseCombat GameMode = "close_combat"
	ModeLongRange   GameMode = "long_range"
)

// DistanceBand selects a sensitivity multiplier for the engagement range.
type DistanceBand string

const (
	BandClose   DistanceBand = "close"
	BandMedium  DistanceBand = "medium"
	BandFar     DistanceBand = "far"
	BandVeryFar DistanceBand = "veryFar"
)

var modeMultipliers = map[GameMode]float64{
	ModeNormal:      1.0,
	ModeRanked:      1.2,
	ModeCloseCombat: 1.5,
	ModeLongRange:   0.8,
}

var bandMultipliers = map[DistanceBand]float64{
	BandClose:   1.1,
	BandMedium:  1.0,
	BandFar:     0.9,
	BandVeryFar: 0.8,
}

// GameModes lists the modes in presentation order.
var GameModes = []GameMode{ModeNormal, ModeRanked, ModeCloseCombat, ModeLongRange}

// DistanceBands lists the bands in presentation order.
var DistanceBands = []DistanceBand{BandClose, BandMedium, BandFar, BandVeryFar}

// Valid reports whether m has a multiplier entry.
func (m GameMode) Valid() bool {
	_, ok := modeMultipliers[m]
	return ok
}

// Valid reports whether b has a multiplier entry.
func (b DistanceBand) Valid() bool {
	_, ok := bandMultipliers[b]
	return ok
}

// Multiplier returns the combined mode × band multiplier. Unknown modes or
// bands contribute 1.0.
func Multiplier(mode GameMode, band DistanceBand) float64 {
	m, ok := modeMultipliers[mode]
	if !ok {
		m = 1.0
	}
	b, ok := bandMultipliers[band]
	if !ok {
		b = 1.0
	}
	return m * b
}

// Situational derives a profile variant for the given mode and band.
// DragSensitivity, AimLockStrength and AccuracyBoost are scaled; smoothing
// and radius are left alone.
func Situational(p Profile, mode GameMode, band DistanceBand) Profile {
	k := Multiplier(mode, band)
	p.DragSensitivity *= k
	p.AimLockStrength *= k
	p.AccuracyBoost *= k
	return p
}

// AllSituational returns every mode × band variant of p.
func AllSituational(p Profile) map[GameMode]map[DistanceBand]Profile {
	out := make(map[GameMode]map[DistanceBand]Profile, len(GameModes))
	for _, mode := range GameModes {
		out[mode] = make(map[DistanceBand]Profile, len(DistanceBands))
		for _, band := range DistanceBands {
			out[mode][band] = Situational(p, mode, band)
		}
	}
	return out
}
