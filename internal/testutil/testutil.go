// Package testutil provides shared test utilities and fixtures.
//
// This package centralises common test helpers to reduce code duplication
// across test files and improve test maintainability.
package testutil

import (
	"math"
	"testing"

	"github.com/banshee-data/aimlock/internal/geom"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t testing.TB, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// AssertVectorInDelta checks each component of got against want.
func AssertVectorInDelta(t testing.TB, want, got geom.Vector3, delta float64) {
	t.Helper()
	axes := []struct {
		name      string
		want, got float64
	}{
		{"X", want.X, got.X},
		{"Y", want.Y, got.Y},
		{"Z", want.Z, got.Z},
	}
	for _, a := range axes {
		if math.IsNaN(a.got) || math.Abs(a.want-a.got) > delta {
			t.Errorf("%s = %g, want %g (±%g)", a.name, a.got, a.want, delta)
		}
	}
}
