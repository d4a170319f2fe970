// Package driver owns the control loop. It samples a Sensor once per tick,
// feeds the observation to a control.Controller and stops on context
// cancellation or after a fixed number of ticks.
package driver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/banshee-data/aimlock/internal/config"
	"github.com/banshee-data/aimlock/internal/control"
	"github.com/banshee-data/aimlock/internal/geom"
	"github.com/banshee-data/aimlock/internal/monitoring"
	"github.com/banshee-data/aimlock/internal/timeutil"
)

// Sensor supplies one observation per tick. The Aim field of the returned
// Input is ignored; the driver fills in the aim it last commanded.
type Sensor interface {
	Sample(ctx context.Context) (control.Input, error)
}

// SensorFunc adapts a plain function to the Sensor interface.
type SensorFunc func(ctx context.Context) (control.Input, error)

// Sample calls f(ctx).
func (f SensorFunc) Sample(ctx context.Context) (control.Input, error) { return f(ctx) }

// Config holds the loop parameters.
type Config struct {
	TickInterval time.Duration
	MaxTicks     int          // 0 runs until the context is cancelled
	InitialAim   geom.Vector3 // aim fed to the first tick
	LogEvery     int          // emit a diagnostic line every N ticks
}

// DefaultLogEvery is roughly one diagnostic line per second at 60 Hz.
const DefaultLogEvery = 60

// ConfigFromTuning builds a Config from a loaded TuningConfig.
func ConfigFromTuning(cfg *config.TuningConfig) Config {
	return Config{
		TickInterval: cfg.GetTickInterval(),
		LogEvery:     DefaultLogEvery,
	}
}

// Event describes one tick. Err is set for ticks the controller rejected
// (Result is zero) and for ticks whose aim overflowed (Result holds the
// non-finite output that was not actuated).
type Event struct {
	Tick   int
	Time   time.Time
	Input  control.Input
	Result control.Result
	Err    error
}

// Driver runs a single controller. It is not safe for concurrent use; Run
// must not be called from more than one goroutine.
type Driver struct {
	controller *control.Controller
	sensor     Sensor
	clock      timeutil.Clock
	cfg        Config
	sampler    *monitoring.Sampler

	aim      geom.Vector3
	ticks    int
	rejected int
	resets   int

	// OnStep, when set, is called synchronously after every tick.
	OnStep func(Event)
}

// New creates a driver. A nil clock uses timeutil.RealClock and a
// non-positive tick interval falls back to the tuning default.
func New(c *control.Controller, s Sensor, clock timeutil.Clock, cfg Config) *Driver {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = config.EmptyTuningConfig().GetTickInterval()
	}
	if cfg.LogEvery <= 0 {
		cfg.LogEvery = DefaultLogEvery
	}
	return &Driver{
		controller: c,
		sensor:     s,
		clock:      clock,
		cfg:        cfg,
		sampler:    monitoring.NewSampler(cfg.LogEvery),
		aim:        cfg.InitialAim,
	}
}

// Run ticks until ctx is cancelled, MaxTicks is reached or a tick fails.
// Ticks rejected for non-finite input are logged and skipped. A tick whose
// aim overflows restarts the loop from InitialAim. Reaching
// MaxTicks returns nil; cancellation returns ctx.Err().
func (d *Driver) Run(ctx context.Context) error {
	ticker := d.clock.NewTicker(d.cfg.TickInterval)
	defer ticker.Stop()

	monitoring.Logf("driver: controller %s started (weapon=%s interval=%s max_ticks=%d)",
		d.controller.ID, d.controller.Weapon(), d.cfg.TickInterval, d.cfg.MaxTicks)

	for {
		if d.done() {
			monitoring.Logf("driver: controller %s finished after %d ticks (%d rejected, %d resets)",
				d.controller.ID, d.ticks, d.rejected, d.resets)
			return nil
		}
		select {
		case <-ctx.Done():
			monitoring.Logf("driver: controller %s stopped after %d ticks: %v", d.controller.ID, d.ticks, ctx.Err())
			return ctx.Err()
		case <-ticker.C():
			if err := d.Tick(ctx); err != nil {
				return err
			}
		}
	}
}

// RunSimulated runs MaxTicks ticks back to back, advancing the mock clock
// by one tick interval before each one. The driver must have been built
// with a *timeutil.MockClock.
func (d *Driver) RunSimulated(ctx context.Context) error {
	mock, ok := d.clock.(*timeutil.MockClock)
	if !ok {
		return errors.New("driver: simulated run requires a mock clock")
	}
	if d.cfg.MaxTicks <= 0 {
		return errors.New("driver: simulated run requires max ticks")
	}
	for !d.done() {
		if err := ctx.Err(); err != nil {
			return err
		}
		mock.Advance(d.cfg.TickInterval)
		if err := d.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Tick samples the sensor and runs one controller step at the clock's
// current time.
func (d *Driver) Tick(ctx context.Context) error {
	in, err := d.sensor.Sample(ctx)
	if err != nil {
		return fmt.Errorf("tick %d: sample sensor: %w", d.ticks, err)
	}
	in.Aim = d.aim

	now := d.clock.Now()
	ev := Event{Tick: d.ticks, Time: now, Input: in}
	res, err := d.controller.Step(in, now)
	switch {
	case errors.Is(err, control.ErrInvalidInput):
		d.rejected++
		monitoring.Logf("driver: tick %d skipped: %v", d.ticks, err)
		ev.Err = err
	case errors.Is(err, control.ErrNonFiniteOutput):
		d.resets++
		d.aim = d.cfg.InitialAim
		monitoring.Logf("driver: tick %d aim overflowed, restarting from initial aim: %v", d.ticks, err)
		ev.Result = res
		ev.Err = err
	case err != nil:
		return fmt.Errorf("tick %d: %w", d.ticks, err)
	default:
		d.aim = res.Aim
		ev.Result = res
		d.sampler.Logf("driver: tick %d distance=%.6f threshold=%.6f confidence=%.1f%% fire=%t",
			d.ticks, res.Fire.Distance, res.Fire.Threshold, res.Confidence*100, res.Fire.ShouldFire)
	}

	d.ticks++
	if d.OnStep != nil {
		d.OnStep(ev)
	}
	return nil
}

func (d *Driver) done() bool {
	return d.cfg.MaxTicks > 0 && d.ticks >= d.cfg.MaxTicks
}

// Aim returns the last commanded aim.
func (d *Driver) Aim() geom.Vector3 { return d.aim }

// Ticks returns the number of ticks run, including rejected ones.
func (d *Driver) Ticks() int { return d.ticks }

// Rejected returns the number of ticks skipped for invalid input.
func (d *Driver) Rejected() int { return d.rejected }

// Resets returns the number of times the aim overflowed and was restarted
// from Config.InitialAim.
func (d *Driver) Resets() int { return d.resets }

// Controller returns the driven controller.
func (d *Driver) Controller() *control.Controller { return d.controller }
