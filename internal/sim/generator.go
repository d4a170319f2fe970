// Package sim provides a synthetic target sensor for demos and tests.
package sim

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/banshee-data/aimlock/internal/control"
	"github.com/banshee-data/aimlock/internal/geom"
	"github.com/banshee-data/aimlock/internal/timeutil"
)

// Path selects the target trajectory.
type Path string

const (
	PathStationary Path = "stationary"
	PathLinear     Path = "linear"
	PathCircular   Path = "circular"
)

// Paths lists every supported trajectory.
var Paths = []Path{PathStationary, PathLinear, PathCircular}

// ParsePath parses a trajectory name, case-insensitively.
func ParsePath(s string) (Path, error) {
	p := Path(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Paths {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown path %q (valid: stationary, linear, circular)", s)
}

// DefaultOrigin is a head position in normalized screen space.
var DefaultOrigin = geom.Vec(-0.0456970781, -0.004478302, -0.0200432576)

// Generator produces noisy observations of a target moving along a
// synthetic path. Elapsed time comes from the clock, so a mock clock gives
// reproducible runs.
type Generator struct {
	// Configuration
	Path         Path
	Origin       geom.Vector3 // start (linear) or centre (circular)
	Velocity     geom.Vector3 // units per second, linear path only
	Radius       float64      // circular path radius
	AngularSpeed float64      // radians per second, circular path only
	Noise        float64      // per-axis gaussian std dev on the observation
	Recoil       geom.Vector3 // constant recoil disturbance
	RecoilJitter float64      // per-axis gaussian std dev on the recoil

	clock timeutil.Clock
	start time.Time

	mu      sync.Mutex
	rng     *rand.Rand
	samples uint64
}

// NewGenerator returns a noiseless generator for path starting at the
// clock's current time.
func NewGenerator(path Path, clock timeutil.Clock, seed int64) *Generator {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	return &Generator{
		Path:         path,
		Origin:       DefaultOrigin,
		Velocity:     geom.Vec(0.04, 0.01, 0),
		Radius:       0.05,
		AngularSpeed: math.Pi,
		clock:        clock,
		start:        clock.Now(),
		rng:          rand.New(rand.NewSource(seed)),
	}
}

// Truth returns the noiseless target position at t.
func (g *Generator) Truth(t time.Time) geom.Vector3 {
	elapsed := t.Sub(g.start).Seconds()
	switch g.Path {
	case PathLinear:
		return g.Origin.Add(g.Velocity.Scale(elapsed))
	case PathCircular:
		angle := g.AngularSpeed * elapsed
		return g.Origin.Add(geom.Vec(g.Radius*math.Cos(angle), g.Radius*math.Sin(angle), 0))
	default:
		return g.Origin
	}
}

// Sample implements driver.Sensor.
func (g *Generator) Sample(ctx context.Context) (control.Input, error) {
	if err := ctx.Err(); err != nil {
		return control.Input{}, err
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.samples++

	return control.Input{
		Target: g.Truth(g.clock.Now()).Add(g.jitter(g.Noise)),
		Recoil: g.Recoil.Add(g.jitter(g.RecoilJitter)),
	}, nil
}

// Samples returns how many observations have been produced.
func (g *Generator) Samples() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.samples
}

func (g *Generator) jitter(sigma float64) geom.Vector3 {
	if sigma <= 0 {
		return geom.Zero()
	}
	return geom.Vec(g.rng.NormFloat64()*sigma, g.rng.NormFloat64()*sigma, g.rng.NormFloat64()*sigma)
}
