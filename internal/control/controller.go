package control

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/aimlock/internal/config"
	"github.com/banshee-data/aimlock/internal/geom"
	"github.com/banshee-data/aimlock/internal/monitoring"
	"github.com/banshee-data/aimlock/internal/profiles"
	"github.com/banshee-data/aimlock/internal/tracking"
)

// Actuator receives the controller's output. Implementations move the
// crosshair and pull the trigger; the controller never does either itself.
type Actuator interface {
	SetAim(aim geom.Vector3) error
	FireWeapon() error
}

// NopActuator discards every command.
type NopActuator struct{}

func (NopActuator) SetAim(geom.Vector3) error { return nil }
func (NopActuator) FireWeapon() error         { return nil }

// Options holds the loop-wide parameters shared by every profile.
type Options struct {
	MeasurementNoise float64       // Kalman R, must be > 0
	ProcessNoise     float64       // Kalman base Q
	Lookahead        time.Duration // prediction horizon
	Gains            Gains
	FireThreshold    float64       // base fire threshold
	MaxTickDt        time.Duration // clamp on elapsed time between observations
	HistoryCapacity  int
	SummaryWindow    int
}

// DefaultOptions returns the built-in options.
func DefaultOptions() Options {
	return OptionsFromTuning(config.EmptyTuningConfig())
}

// OptionsFromTuning builds Options from a loaded TuningConfig.
func OptionsFromTuning(cfg *config.TuningConfig) Options {
	return Options{
		MeasurementNoise: cfg.GetMeasurementNoise(),
		ProcessNoise:     cfg.GetProcessNoise(),
		Lookahead:        cfg.GetLookahead(),
		Gains: Gains{
			BaseSensitivity: cfg.GetBaseSensitivity(),
			Smoothing:       cfg.GetSmoothingFactor(),
		},
		FireThreshold:   cfg.GetFireThreshold(),
		MaxTickDt:       cfg.GetMaxTickDt(),
		HistoryCapacity: cfg.GetHistoryCapacity(),
		SummaryWindow:   cfg.GetSummaryWindow(),
	}
}

// Validate checks the numeric preconditions of the pipeline.
func (o Options) Validate() error {
	if !(o.MeasurementNoise > 0) || math.IsInf(o.MeasurementNoise, 0) {
		return fmt.Errorf("measurement noise must be positive and finite, got %g", o.MeasurementNoise)
	}
	if !(o.ProcessNoise >= 0) || math.IsInf(o.ProcessNoise, 0) {
		return fmt.Errorf("process noise must be non-negative and finite, got %g", o.ProcessNoise)
	}
	if o.Lookahead < 0 {
		return fmt.Errorf("lookahead must be non-negative, got %s", o.Lookahead)
	}
	if !(o.Gains.BaseSensitivity > 0) {
		return fmt.Errorf("base sensitivity must be positive, got %g", o.Gains.BaseSensitivity)
	}
	if !(o.Gains.Smoothing > 0 && o.Gains.Smoothing <= 1) {
		return fmt.Errorf("smoothing must be in (0, 1], got %g", o.Gains.Smoothing)
	}
	if !(o.FireThreshold > 0) {
		return fmt.Errorf("fire threshold must be positive, got %g", o.FireThreshold)
	}
	return nil
}

// Input is one tick of sensor data.
type Input struct {
	Target geom.Vector3 `json:"target"` // raw observed target position
	Recoil geom.Vector3 `json:"recoil"` // raw recoil disturbance
	Aim    geom.Vector3 `json:"aim"`    // current aim vector
}

func (in Input) validate() error {
	fields := []struct {
		name string
		v    geom.Vector3
	}{
		{"target", in.Target},
		{"recoil", in.Recoil},
		{"aim", in.Aim},
	}
	for _, f := range fields {
		if !f.v.IsFinite() {
			return &InputError{Field: f.name, Value: f.v}
		}
	}
	return nil
}

// Result is the controller output for one tick.
type Result struct {
	Aim          geom.Vector3 `json:"aim"`
	Filtered     geom.Vector3 `json:"filtered"`
	Predicted    geom.Vector3 `json:"predicted"`
	Velocity     geom.Vector3 `json:"velocity"`
	Acceleration geom.Vector3 `json:"acceleration"`
	Confidence   float64      `json:"confidence"`
	Fire         FireDecision `json:"fire"`
}

// Stats is the performance summary of a controller.
type Stats struct {
	Weapon profiles.Weapon `json:"weapon"`
	Summary
}

// Controller runs the estimation and convergence pipeline for one weapon
// profile. It is not safe for concurrent use.
type Controller struct {
	// ID uniquely identifies this controller instance in logs and reports.
	ID string

	weapon  profiles.Weapon
	profile profiles.Profile
	opts    Options

	kalmanX *tracking.ScalarKalman
	kalmanY *tracking.ScalarKalman
	kalmanZ *tracking.ScalarKalman
	motion  *tracking.MotionEstimator
	recoil  *RecoilCompensator
	history *History

	lockConfidence float64
	actuator       Actuator
}

// NewController builds a controller for profile p. A nil actuator is
// replaced by NopActuator.
func NewController(p profiles.Profile, opts Options, act Actuator) (*Controller, error) {
	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if act == nil {
		act = NopActuator{}
	}
	return &Controller{
		ID:       uuid.NewString(),
		profile:  p,
		opts:     opts,
		kalmanX:  tracking.NewScalarKalman(opts.MeasurementNoise, opts.ProcessNoise),
		kalmanY:  tracking.NewScalarKalman(opts.MeasurementNoise, opts.ProcessNoise),
		kalmanZ:  tracking.NewScalarKalman(opts.MeasurementNoise, opts.ProcessNoise),
		motion:   tracking.NewMotionEstimator(opts.MaxTickDt),
		recoil:   NewRecoilCompensator(p.AimLockStrength),
		history:  NewHistory(opts.HistoryCapacity, opts.SummaryWindow),
		actuator: act,
	}, nil
}

// SwitchWeapon builds a fresh controller for the named weapon. Unknown
// names fall back to DEFAULT; the fallback is logged, not returned as an
// error.
func SwitchWeapon(table *profiles.Table, name string, opts Options, act Actuator) (*Controller, error) {
	w, p, ok := table.Resolve(name)
	if !ok {
		monitoring.Logf("control: unknown weapon %q, using %s profile", name, w)
	}
	c, err := NewController(p, opts, act)
	if err != nil {
		return nil, fmt.Errorf("weapon %s: %w", w, err)
	}
	c.weapon = w
	return c, nil
}

// Step runs one tick of the pipeline and sends the new aim (and, when the
// gate passes, a fire command) to the actuator.
//
// Non-finite input is rejected with an *InputError before any state is
// touched. If the new aim overflows, Step returns ErrNonFiniteOutput with
// the Result and never calls the actuator; filter state has advanced but
// the tick is not recorded in the history. An actuator error is returned
// together with the Result; the controller state has already advanced by
// then.
func (c *Controller) Step(in Input, now time.Time) (Result, error) {
	if err := in.validate(); err != nil {
		return Result{}, err
	}

	c.motion.Observe(in.Target, now)
	filtered := geom.Vec(
		c.kalmanX.Filter(in.Target.X),
		c.kalmanY.Filter(in.Target.Y),
		c.kalmanZ.Filter(in.Target.Z),
	)
	velocity, acceleration := c.motion.Velocity, c.motion.Acceleration
	predicted := tracking.Predict(filtered, velocity, acceleration, c.opts.Lookahead.Seconds())

	recoil := c.recoil.Update(in.Recoil, c.profile.RecoilSmooth)
	c.lockConfidence = LockConfidence(in.Aim, predicted, c.profile.LockRadius)
	aim := DragAndLock(predicted, recoil, in.Aim, velocity, c.profile, c.opts.Gains)

	// The gate checks the new aim against the raw observation.
	fire := FireGate(aim, in.Target, velocity, c.profile, c.opts.FireThreshold)

	res := Result{
		Aim:          aim,
		Filtered:     filtered,
		Predicted:    predicted,
		Velocity:     velocity,
		Acceleration: acceleration,
		Confidence:   c.lockConfidence,
		Fire:         fire,
	}
	if !aim.IsFinite() {
		return res, fmt.Errorf("%w: aim (%g, %g, %g)", ErrNonFiniteOutput, aim.X, aim.Y, aim.Z)
	}
	c.history.Record(c.lockConfidence, in.Aim.Distance(predicted), now)

	if err := c.actuator.SetAim(aim); err != nil {
		return res, fmt.Errorf("set aim: %w", err)
	}
	if fire.ShouldFire {
		if err := c.actuator.FireWeapon(); err != nil {
			return res, fmt.Errorf("fire weapon: %w", err)
		}
	}
	return res, nil
}

// Stats summarises the recent history. ok is false before the first tick.
func (c *Controller) Stats() (Stats, bool) {
	s, ok := c.history.Summary()
	if !ok {
		return Stats{}, false
	}
	return Stats{Weapon: c.weapon, Summary: s}, true
}

// Weapon returns the weapon the controller was built for, or "" for a
// controller built directly from a profile.
func (c *Controller) Weapon() profiles.Weapon { return c.weapon }

// Profile returns the active profile.
func (c *Controller) Profile() profiles.Profile { return c.profile }

// Options returns the loop-wide options.
func (c *Controller) Options() Options { return c.opts }

// Velocity returns the smoothed target velocity.
func (c *Controller) Velocity() geom.Vector3 { return c.motion.Velocity }

// Acceleration returns the smoothed target acceleration.
func (c *Controller) Acceleration() geom.Vector3 { return c.motion.Acceleration }

// RecoilOffset returns the current compensated recoil offset.
func (c *Controller) RecoilOffset() geom.Vector3 { return c.recoil.Offset() }

// LockConfidence returns the confidence computed on the last tick.
func (c *Controller) LockConfidence() float64 { return c.lockConfidence }

// History returns the controller's performance history.
func (c *Controller) History() *History { return c.history }

// Tracking reports whether the controller has accepted an observation.
func (c *Controller) Tracking() bool { return c.kalmanX.Initialized() }
