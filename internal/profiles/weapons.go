package profiles

import (
	"sort"
	"strings"
)

// Weapon identifies a known instrument. WeaponDefault is the fallback for
// every identifier not in the table.
type Weapon string

const (
	WeaponDefault Weapon = "DEFAULT"

	// Assault rifles
	AK47  Weapon = "AK47"
	M4A1  Weapon = "M4A1"
	SCAR  Weapon = "SCAR"
	FAMAS Weapon = "FAMAS"
	GROZA Weapon = "GROZA"
	AN94  Weapon = "AN94"
	XM8   Weapon = "XM8"

	// SMGs
	MP40     Weapon = "MP40"
	UMP      Weapon = "UMP"
	P90      Weapon = "P90"
	MP5      Weapon = "MP5"
	THOMPSON Weapon = "THOMPSON"

	// Snipers
	AWM    Weapon = "AWM"
	KAR98K Weapon = "KAR98K"
	M82B   Weapon = "M82B"

	// Shotguns
	M1014  Weapon = "M1014"
	SPAS12 Weapon = "SPAS12"
	MAG7   Weapon = "MAG7"
	M1887  Weapon = "M1887"

	// LMGs
	M249    Weapon = "M249"
	GATLING Weapon = "GATLING"

	// Pistols
	DesertEagle Weapon = "DESERT_EAGLE"
	M500        Weapon = "M500"
	G18         Weapon = "G18"
)

// builtin is the canonical profile table. Radii are in normalized
// screen-space units.
var builtin = map[Weapon]Profile{
	AK47:  {RecoilSmooth: 0.98, DragSensitivity: 2.2, AimLockStrength: 1.3, AccuracyBoost: 1.8, LockRadius: 0.08},
	M4A1:  {RecoilSmooth: 0.99, DragSensitivity: 2.3, AimLockStrength: 1.4, AccuracyBoost: 1.85, LockRadius: 0.09},
	SCAR:  {RecoilSmooth: 0.97, DragSensitivity: 2.1, AimLockStrength: 1.35, AccuracyBoost: 1.75, LockRadius: 0.08},
	FAMAS: {RecoilSmooth: 0.95, DragSensitivity: 2.0, AimLockStrength: 1.25, AccuracyBoost: 1.7, LockRadius: 0.075},
	GROZA: {RecoilSmooth: 0.98, DragSensitivity: 1.9, AimLockStrength: 1.45, AccuracyBoost: 1.9, LockRadius: 0.085},
	AN94:  {RecoilSmooth: 0.96, DragSensitivity: 2.0, AimLockStrength: 1.3, AccuracyBoost: 1.75, LockRadius: 0.08},
	XM8:   {RecoilSmooth: 0.98, DragSensitivity: 1.95, AimLockStrength: 1.35, AccuracyBoost: 1.8, LockRadius: 0.08},

	MP40:     {RecoilSmooth: 0.92, DragSensitivity: 2.5, AimLockStrength: 1.2, AccuracyBoost: 1.6, LockRadius: 0.1},
	UMP:      {RecoilSmooth: 0.94, DragSensitivity: 2.4, AimLockStrength: 1.35, AccuracyBoost: 2.2, LockRadius: 0.1},
	P90:      {RecoilSmooth: 0.95, DragSensitivity: 2.3, AimLockStrength: 1.3, AccuracyBoost: 1.7, LockRadius: 0.095},
	MP5:      {RecoilSmooth: 0.96, DragSensitivity: 2.2, AimLockStrength: 1.35, AccuracyBoost: 1.75, LockRadius: 0.09},
	THOMPSON: {RecoilSmooth: 0.93, DragSensitivity: 2.3, AimLockStrength: 1.3, AccuracyBoost: 1.65, LockRadius: 0.1},

	AWM:    {RecoilSmooth: 0.995, DragSensitivity: 1.8, AimLockStrength: 1.8, AccuracyBoost: 2.5, LockRadius: 0.06},
	KAR98K: {RecoilSmooth: 0.99, DragSensitivity: 1.75, AimLockStrength: 1.6, AccuracyBoost: 2.2, LockRadius: 0.065},
	M82B:   {RecoilSmooth: 0.995, DragSensitivity: 1.8, AimLockStrength: 1.7, AccuracyBoost: 2.4, LockRadius: 0.06},

	M1014:  {RecoilSmooth: 0.88, DragSensitivity: 2.0, AimLockStrength: 1.1, AccuracyBoost: 1.5, LockRadius: 0.12},
	SPAS12: {RecoilSmooth: 0.9, DragSensitivity: 2.0, AimLockStrength: 1.2, AccuracyBoost: 1.6, LockRadius: 0.12},
	MAG7:   {RecoilSmooth: 0.91, DragSensitivity: 2.1, AimLockStrength: 1.25, AccuracyBoost: 1.65, LockRadius: 0.11},
	M1887:  {RecoilSmooth: 0.85, DragSensitivity: 2.5, AimLockStrength: 1.5, AccuracyBoost: 2.5, LockRadius: 0.15},

	M249:    {RecoilSmooth: 0.93, DragSensitivity: 2.0, AimLockStrength: 1.4, AccuracyBoost: 1.8, LockRadius: 0.085},
	GATLING: {RecoilSmooth: 0.91, DragSensitivity: 2.1, AimLockStrength: 1.35, AccuracyBoost: 1.7, LockRadius: 0.09},

	DesertEagle: {RecoilSmooth: 0.97, DragSensitivity: 2.2, AimLockStrength: 1.5, AccuracyBoost: 2.0, LockRadius: 0.08},
	M500:        {RecoilSmooth: 0.93, DragSensitivity: 2.3, AimLockStrength: 1.4, AccuracyBoost: 1.8, LockRadius: 0.08},
	G18:         {RecoilSmooth: 0.91, DragSensitivity: 2.4, AimLockStrength: 1.3, AccuracyBoost: 1.7, LockRadius: 0.09},

	WeaponDefault: {RecoilSmooth: 0.94, DragSensitivity: 2.0, AimLockStrength: 1.3, AccuracyBoost: 1.7, LockRadius: 0.08},
}

// ParseWeapon maps an identifier onto a known Weapon. Matching ignores
// case and surrounding whitespace. The second result is false when the
// identifier is unknown and WeaponDefault was substituted.
func ParseWeapon(name string) (Weapon, bool) {
	w := Weapon(strings.ToUpper(strings.TrimSpace(name)))
	if _, ok := builtin[w]; ok {
		return w, true
	}
	return WeaponDefault, false
}

// KnownWeapons returns every built-in weapon identifier in sorted order.
func KnownWeapons() []Weapon {
	out := make([]Weapon, 0, len(builtin))
	for w := range builtin {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// String implements fmt.Stringer.
func (w Weapon) String() string { return string(w) }
