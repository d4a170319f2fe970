package profiles

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Table maps weapons to profiles. A Table is never mutated after
// construction, so one instance can be shared by any number of
// controllers.
type Table struct {
	profiles map[Weapon]Profile
}

// DefaultTable returns the built-in profile table.
func DefaultTable() *Table {
	profiles := make(map[Weapon]Profile, len(builtin))
	for w, p := range builtin {
		profiles[w] = p
	}
	return &Table{profiles: profiles}
}

// Lookup returns the profile for w, falling back to WeaponDefault.
func (t *Table) Lookup(w Weapon) Profile {
	if p, ok := t.profiles[w]; ok {
		return p
	}
	return t.profiles[WeaponDefault]
}

// Resolve parses name and returns the weapon actually used together with
// its profile. ok is false when name was unknown and DEFAULT was used.
func (t *Table) Resolve(name string) (w Weapon, p Profile, ok bool) {
	w, ok = ParseWeapon(name)
	return w, t.Lookup(w), ok
}

// Weapons returns the weapons present in the table in sorted order.
func (t *Table) Weapons() []Weapon {
	out := make([]Weapon, 0, len(t.profiles))
	for w := range t.profiles {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Scaled returns a copy of the table with every lock radius multiplied by
// factor.
func (t *Table) Scaled(factor float64) *Table {
	profiles := make(map[Weapon]Profile, len(t.profiles))
	for w, p := range t.profiles {
		profiles[w] = p.Scaled(factor)
	}
	return &Table{profiles: profiles}
}

// Situational returns a copy of the table with every profile replaced by its
// mode and band variant.
func (t *Table) Situational(mode GameMode, band DistanceBand) *Table {
	profiles := make(map[Weapon]Profile, len(t.profiles))
	for w, p := range t.profiles {
		profiles[w] = Situational(p, mode, band)
	}
	return &Table{profiles: profiles}
}

// LoadTable loads a JSON profile table and overlays it on the built-in
// table. Keys are weapon identifiers; entries replace the built-in profile
// as a whole. Unknown identifiers are rejected, as are two keys that
// normalise to the same weapon (e.g. "ak47" and "AK47").
func LoadTable(path string) (*Table, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("profile table must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat profile table: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("profile table too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile table: %w", err)
	}

	var raw map[string]Profile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse profile table JSON: %w", err)
	}

	t := DefaultTable()
	seen := make(map[Weapon]string, len(raw))
	for name, p := range raw {
		w, ok := ParseWeapon(name)
		if !ok {
			return nil, fmt.Errorf("unknown weapon %q in profile table", name)
		}
		if prev, dup := seen[w]; dup {
			a, b := prev, name
			if b < a {
				a, b = b, a
			}
			return nil, fmt.Errorf("duplicate weapon %s in profile table: %q and %q", w, a, b)
		}
		seen[w] = name
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid profile %s: %w", w, err)
		}
		t.profiles[w] = p
	}
	return t, nil
}
