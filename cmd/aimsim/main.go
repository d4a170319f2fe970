// Command aimsim runs the pointing controller against a synthetic target and
// reports how quickly and how tightly it locks on.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/aimlock/internal/config"
	"github.com/banshee-data/aimlock/internal/control"
	"github.com/banshee-data/aimlock/internal/driver"
	"github.com/banshee-data/aimlock/internal/geom"
	"github.com/banshee-data/aimlock/internal/monitoring"
	"github.com/banshee-data/aimlock/internal/profiles"
	"github.com/banshee-data/aimlock/internal/report"
	"github.com/banshee-data/aimlock/internal/sim"
	"github.com/banshee-data/aimlock/internal/timeutil"
	"github.com/banshee-data/aimlock/internal/units"
	"github.com/banshee-data/aimlock/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatalf("aimsim: %v", err)
	}
}

// options holds the parsed command line.
type options struct {
	configFile  string
	weapon      string
	mode        string
	distance    string
	path        string
	noise       float64
	ticks       int
	aim         geom.Vector3
	recoil      geom.Vector3
	outDir      string
	seed        int64
	realtime    bool
	showVersion bool
	quiet       bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	var aim, recoil string

	fs := flag.NewFlagSet("aimsim", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configFile, "config", "", "Tuning config JSON (defaults are built in)")
	fs.StringVar(&o.weapon, "weapon", "DEFAULT", "Weapon profile to use, unknown names fall back to DEFAULT: "+weaponList())
	fs.StringVar(&o.mode, "mode", "", "Game mode: normal, ranked, close_combat, long_range")
	fs.StringVar(&o.distance, "distance", "", "Distance band: close, medium, far, veryFar")
	fs.StringVar(&o.path, "path", string(sim.PathStationary), "Target path: stationary, linear, circular")
	fs.Float64Var(&o.noise, "noise", 0.001, "Observation noise std dev per axis")
	fs.IntVar(&o.ticks, "ticks", 600, "Number of ticks to run (0 = until interrupted, realtime only)")
	fs.StringVar(&aim, "aim", "0.55,0.12,-0.02", "Initial aim as x,y,z")
	fs.StringVar(&recoil, "recoil", "0,0,0", "Constant recoil disturbance as x,y,z")
	fs.StringVar(&o.outDir, "out", "", "Directory for PNG and HTML reports (disabled when empty)")
	fs.Int64Var(&o.seed, "seed", 1, "Random seed for sensor noise")
	fs.BoolVar(&o.realtime, "realtime", false, "Tick on the wall clock instead of as fast as possible")
	fs.BoolVar(&o.showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&o.quiet, "quiet", false, "Suppress per-tick diagnostics")

	if err := fs.Parse(args); err != nil {
		return o, err
	}

	var err error
	if o.aim, err = parseVector(aim); err != nil {
		return o, fmt.Errorf("-aim: %w", err)
	}
	if o.recoil, err = parseVector(recoil); err != nil {
		return o, fmt.Errorf("-recoil: %w", err)
	}
	if o.ticks < 0 {
		return o, fmt.Errorf("-ticks must be non-negative, got %d", o.ticks)
	}
	if o.ticks == 0 && !o.realtime {
		return o, errors.New("-ticks 0 requires -realtime")
	}
	if o.noise < 0 {
		return o, fmt.Errorf("-noise must be non-negative, got %g", o.noise)
	}
	return o, nil
}

func weaponList() string {
	names := make([]string, 0)
	for _, w := range profiles.KnownWeapons() {
		names = append(names, w.String())
	}
	return strings.Join(names, ", ")
}

// parseVector parses "x,y,z".
func parseVector(s string) (geom.Vector3, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return geom.Vector3{}, fmt.Errorf("want x,y,z, got %q", s)
	}
	var v [3]float64
	for i, p := range parts {
		p = strings.TrimSpace(p)
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return geom.Vector3{}, fmt.Errorf("invalid float '%s': %w", p, err)
		}
		v[i] = f
	}
	out := geom.Vec(v[0], v[1], v[2])
	if !out.IsFinite() {
		return geom.Vector3{}, fmt.Errorf("non-finite vector %q", s)
	}
	return out, nil
}

// logActuator stands in for real input injection.
type logActuator struct {
	weapon  profiles.Weapon
	sampler *monitoring.Sampler
	fires   int
}

func (a *logActuator) SetAim(aim geom.Vector3) error {
	a.sampler.Logf("[%s] aim %.6f, %.6f, %.6f", a.weapon, aim.X, aim.Y, aim.Z)
	return nil
}

func (a *logActuator) FireWeapon() error {
	a.fires++
	return nil
}

func loadTuning(path string) (*config.TuningConfig, error) {
	if path == "" {
		return config.EmptyTuningConfig(), nil
	}
	return config.LoadTuningConfig(path)
}

func loadTable(cfg *config.TuningConfig, mode profiles.GameMode, band profiles.DistanceBand) (*profiles.Table, error) {
	table := profiles.DefaultTable()
	if p := cfg.GetProfilesPath(); p != "" {
		var err error
		if table, err = profiles.LoadTable(p); err != nil {
			return nil, err
		}
	}
	if mode != "" || band != "" {
		if mode != "" && !mode.Valid() {
			monitoring.Logf("unknown game mode %q, using multiplier 1.0", mode)
		}
		if band != "" && !band.Valid() {
			monitoring.Logf("unknown distance band %q, using multiplier 1.0", band)
		}
		table = table.Situational(mode, band)
	}
	return table.Scaled(cfg.GetLengthFactor()), nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	o, err := parseFlags(args, stdout)
	if err != nil {
		return err
	}
	if o.showVersion {
		fmt.Fprintln(stdout, version.String("aimsim"))
		return nil
	}
	if o.quiet {
		monitoring.SetLogger(nil)
	}

	cfg, err := loadTuning(o.configFile)
	if err != nil {
		return err
	}
	table, err := loadTable(cfg, profiles.GameMode(o.mode), profiles.DistanceBand(o.distance))
	if err != nil {
		return err
	}
	path, err := sim.ParsePath(o.path)
	if err != nil {
		return err
	}

	var clock timeutil.Clock = timeutil.RealClock{}
	if !o.realtime {
		clock = timeutil.NewMockClock(time.Now())
	}

	act := &logActuator{sampler: monitoring.NewSampler(driver.DefaultLogEvery)}
	ctrl, err := control.SwitchWeapon(table, o.weapon, control.OptionsFromTuning(cfg), act)
	if err != nil {
		return err
	}
	act.weapon = ctrl.Weapon()

	gen := sim.NewGenerator(path, clock, o.seed)
	// Path geometry is defined in normalized space.
	factor := cfg.GetLengthFactor()
	gen.Origin = gen.Origin.Scale(factor)
	gen.Velocity = gen.Velocity.Scale(factor)
	gen.Radius *= factor
	gen.Noise = o.noise * factor
	gen.Recoil = o.recoil

	dcfg := driver.ConfigFromTuning(cfg)
	dcfg.MaxTicks = o.ticks
	dcfg.InitialAim = o.aim

	runID := uuid.NewString()
	trace := report.NewTrace(runID, string(ctrl.Weapon()))
	d := driver.New(ctrl, gen, clock, dcfg)
	d.OnStep = func(ev driver.Event) {
		if ev.Err == nil {
			trace.Record(ev.Tick, ev.Time, ev.Input, ev.Result)
		}
	}

	monitoring.Logf("run %s: weapon=%s path=%s ticks=%d realtime=%t", runID, ctrl.Weapon(), path, o.ticks, o.realtime)
	if o.realtime {
		err = d.Run(ctx)
	} else {
		err = d.RunSimulated(ctx)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	printSummary(stdout, ctrl, trace, act.fires, cfg.GetUnitScale())
	if n := d.Resets(); n > 0 {
		fmt.Fprintf(stdout, "aim overflowed %d times and restarted from %.3f, %.3f, %.3f\n", n, o.aim.X, o.aim.Y, o.aim.Z)
	}

	if o.outDir != "" {
		dir := filepath.Join(o.outDir, runID)
		files, err := report.SavePlots(trace, dir)
		if err != nil {
			return fmt.Errorf("save plots: %w", err)
		}
		htmlFile := filepath.Join(dir, "run.html")
		if err := report.WriteHTML(trace, htmlFile); err != nil {
			return fmt.Errorf("write html: %w", err)
		}
		for _, f := range append(files, htmlFile) {
			fmt.Fprintf(stdout, "wrote %s\n", f)
		}
	}
	return nil
}

func printSummary(w io.Writer, ctrl *control.Controller, trace *report.Trace, fires int, scale string) {
	suffix := units.DisplaySuffix(scale)
	if stats, ok := ctrl.Stats(); ok {
		fmt.Fprintf(w, "[%s] Confidence: %.1f%%, Distance: %.2f%s (last %d samples)\n",
			stats.Weapon, stats.AvgConfidence*100, units.DisplayDistance(stats.AvgDistance, scale), suffix, stats.Samples)
	} else {
		fmt.Fprintf(w, "[%s] no samples\n", ctrl.Weapon())
	}
	if s, ok := trace.Summarize(); ok {
		fmt.Fprintf(w, "ticks=%d fires=%d first_fire=%d final_distance=%.4f%s\n",
			s.Ticks, fires, s.FirstFireTick, units.DisplayDistance(s.FinalDistance, scale), suffix)
	}
}
