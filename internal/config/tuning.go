package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/banshee-data/aimlock/internal/units"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/tuning.defaults.json"

// TuningConfig represents the root configuration for tuning parameters.
// Every field is optional; the Get* accessors supply defaults so partial
// files are safe.
type TuningConfig struct {
	// Filter params
	MeasurementNoise *float64 `json:"measurement_noise,omitempty"` // R, must be > 0
	ProcessNoise     *float64 `json:"process_noise,omitempty"`     // base Q

	// Prediction and convergence params
	Lookahead       *string  `json:"lookahead,omitempty"` // duration string like "50ms"
	SmoothingFactor *float64 `json:"smoothing_factor,omitempty"`
	BaseSensitivity *float64 `json:"base_sensitivity,omitempty"`
	FireThreshold   *float64 `json:"fire_threshold,omitempty"`

	// Timing params
	MaxTickDt    *string `json:"max_tick_dt,omitempty"`   // duration string like "100ms"
	TickInterval *string `json:"tick_interval,omitempty"` // duration string like "16ms"

	// Unit space
	UnitScale      *string  `json:"unit_scale,omitempty"` // "normalized" or "degrees"
	FieldOfViewDeg *float64 `json:"field_of_view_deg,omitempty"`

	// History params
	HistoryCapacity *int `json:"history_capacity,omitempty"`
	SummaryWindow   *int `json:"summary_window,omitempty"`

	// Optional profile table overlay
	ProfilesPath *string `json:"profiles_path,omitempty"`
}

// Helper functions to create pointers
func ptrFloat64(v float64) *float64 { return &v }
func ptrString(v string) *string    { return &v }
func ptrInt(v int) *int             { return &v }

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// DefaultTuningConfig returns a TuningConfig with every field populated
// from the built-in defaults.
func DefaultTuningConfig() *TuningConfig {
	c := EmptyTuningConfig()
	return &TuningConfig{
		MeasurementNoise: ptrFloat64(c.GetMeasurementNoise()),
		ProcessNoise:     ptrFloat64(c.GetProcessNoise()),
		Lookahead:        ptrString(c.GetLookahead().String()),
		SmoothingFactor:  ptrFloat64(c.GetSmoothingFactor()),
		BaseSensitivity:  ptrFloat64(c.GetBaseSensitivity()),
		FireThreshold:    ptrFloat64(c.GetFireThreshold()),
		MaxTickDt:        ptrString(c.GetMaxTickDt().String()),
		TickInterval:     ptrString(c.GetTickInterval().String()),
		UnitScale:        ptrString(c.GetUnitScale()),
		FieldOfViewDeg:   ptrFloat64(c.GetFieldOfViewDeg()),
		HistoryCapacity:  ptrInt(c.GetHistoryCapacity()),
		SummaryWindow:    ptrInt(c.GetSummaryWindow()),
		ProfilesPath:     ptrString(c.GetProfilesPath()),
	}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under the max file size.
// Fields omitted from the JSON file retain their default values, so
// partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	// Validate the config file path.
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical tuning defaults from DefaultConfigPath.
// It searches for the file in the current directory and common parent directories.
// Panics if the file cannot be loaded, intended for test setup.
func MustLoadDefaultConfig() *TuningConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath,       // from internal/config/
		"../../../" + DefaultConfigPath,    // from cmd/aimsim/ and friends
		"../../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadTuningConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.MeasurementNoise != nil && !(*c.MeasurementNoise > 0) {
		return fmt.Errorf("measurement_noise must be positive, got %f", *c.MeasurementNoise)
	}
	if c.ProcessNoise != nil && *c.ProcessNoise < 0 {
		return fmt.Errorf("process_noise must be non-negative, got %f", *c.ProcessNoise)
	}
	if c.SmoothingFactor != nil && !(*c.SmoothingFactor > 0 && *c.SmoothingFactor <= 1) {
		return fmt.Errorf("smoothing_factor must be in (0, 1], got %f", *c.SmoothingFactor)
	}
	if c.BaseSensitivity != nil && !(*c.BaseSensitivity > 0) {
		return fmt.Errorf("base_sensitivity must be positive, got %f", *c.BaseSensitivity)
	}
	if c.FireThreshold != nil && !(*c.FireThreshold > 0) {
		return fmt.Errorf("fire_threshold must be positive, got %f", *c.FireThreshold)
	}

	durations := []struct {
		name  string
		value *string
	}{
		{"lookahead", c.Lookahead},
		{"max_tick_dt", c.MaxTickDt},
		{"tick_interval", c.TickInterval},
	}
	for _, d := range durations {
		if d.value == nil || *d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(*d.value)
		if err != nil {
			return fmt.Errorf("invalid %s '%s': %w", d.name, *d.value, err)
		}
		if parsed < 0 {
			return fmt.Errorf("%s must be non-negative, got %s", d.name, parsed)
		}
	}
	if c.TickInterval != nil && *c.TickInterval != "" {
		if d, _ := time.ParseDuration(*c.TickInterval); d == 0 {
			return fmt.Errorf("tick_interval must be positive")
		}
	}

	if c.UnitScale != nil && !units.IsValid(*c.UnitScale) {
		return fmt.Errorf("unit_scale must be one of %s, got %q", units.GetValidScalesString(), *c.UnitScale)
	}
	if _, err := units.LengthFactor(c.GetUnitScale(), c.GetFieldOfViewDeg()); err != nil {
		return err
	}

	if c.HistoryCapacity != nil && *c.HistoryCapacity < 1 {
		return fmt.Errorf("history_capacity must be at least 1, got %d", *c.HistoryCapacity)
	}
	if c.SummaryWindow != nil && *c.SummaryWindow < 1 {
		return fmt.Errorf("summary_window must be at least 1, got %d", *c.SummaryWindow)
	}

	return nil
}

// parseDurationOr parses s or returns def when s is nil, empty or invalid.
func parseDurationOr(s *string, def time.Duration) time.Duration {
	if s == nil || *s == "" {
		return def
	}
	d, err := time.ParseDuration(*s)
	if err != nil {
		return def // default on parse error
	}
	return d
}

// GetMeasurementNoise returns the measurement_noise value or the default.
func (c *TuningConfig) GetMeasurementNoise() float64 {
	if c.MeasurementNoise == nil {
		return 0.005
	}
	return *c.MeasurementNoise
}

// GetProcessNoise returns the process_noise value or the default.
func (c *TuningConfig) GetProcessNoise() float64 {
	if c.ProcessNoise == nil {
		return 0.000002
	}
	return *c.ProcessNoise
}

// GetLookahead parses and returns the prediction lookahead.
func (c *TuningConfig) GetLookahead() time.Duration {
	return parseDurationOr(c.Lookahead, 50*time.Millisecond)
}

// GetSmoothingFactor returns the smoothing_factor value or the default.
func (c *TuningConfig) GetSmoothingFactor() float64 {
	if c.SmoothingFactor == nil {
		return 0.15
	}
	return *c.SmoothingFactor
}

// GetBaseSensitivity returns the base_sensitivity value or the default.
func (c *TuningConfig) GetBaseSensitivity() float64 {
	if c.BaseSensitivity == nil {
		return 1.0
	}
	return *c.BaseSensitivity
}

// GetFireThreshold returns the fire_threshold value or the default.
func (c *TuningConfig) GetFireThreshold() float64 {
	if c.FireThreshold == nil {
		return 0.003
	}
	return *c.FireThreshold
}

// GetMaxTickDt parses and returns the elapsed-time clamp.
func (c *TuningConfig) GetMaxTickDt() time.Duration {
	return parseDurationOr(c.MaxTickDt, 100*time.Millisecond)
}

// GetTickInterval parses and returns the driver tick period.
func (c *TuningConfig) GetTickInterval() time.Duration {
	d := parseDurationOr(c.TickInterval, 16*time.Millisecond)
	if d <= 0 {
		return 16 * time.Millisecond
	}
	return d
}

// GetUnitScale returns the unit_scale value or the default.
func (c *TuningConfig) GetUnitScale() string {
	if c.UnitScale == nil || *c.UnitScale == "" {
		return units.Normalized
	}
	return *c.UnitScale
}

// GetFieldOfViewDeg returns the field_of_view_deg value or the default.
func (c *TuningConfig) GetFieldOfViewDeg() float64 {
	if c.FieldOfViewDeg == nil {
		return units.DefaultFieldOfViewDeg
	}
	return *c.FieldOfViewDeg
}

// GetLengthFactor resolves the unit scale into a lock-radius multiplier.
// Invalid settings fall back to 1 (normalized); Validate reports them.
func (c *TuningConfig) GetLengthFactor() float64 {
	f, err := units.LengthFactor(c.GetUnitScale(), c.GetFieldOfViewDeg())
	if err != nil {
		return 1
	}
	return f
}

// GetHistoryCapacity returns the history_capacity value or the default.
func (c *TuningConfig) GetHistoryCapacity() int {
	if c.HistoryCapacity == nil {
		return 100
	}
	return *c.HistoryCapacity
}

// GetSummaryWindow returns the summary_window value or the default.
func (c *TuningConfig) GetSummaryWindow() int {
	if c.SummaryWindow == nil {
		return 20
	}
	return *c.SummaryWindow
}

// GetProfilesPath returns the profiles_path value or "" for the built-in table.
func (c *TuningConfig) GetProfilesPath() string {
	if c.ProfilesPath == nil {
		return ""
	}
	return *c.ProfilesPath
}
