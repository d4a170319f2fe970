package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultTuningConfig(t *testing.T) {
	cfg := DefaultTuningConfig()

	// Test that defaults are set via pointers
	if cfg.MeasurementNoise == nil || *cfg.MeasurementNoise != 0.005 {
		t.Errorf("Expected MeasurementNoise 0.005, got %v", cfg.MeasurementNoise)
	}
	if cfg.ProcessNoise == nil || *cfg.ProcessNoise != 0.000002 {
		t.Errorf("Expected ProcessNoise 0.000002, got %v", cfg.ProcessNoise)
	}
	if cfg.Lookahead == nil || *cfg.Lookahead != "50ms" {
		t.Errorf("Expected Lookahead '50ms', got %v", cfg.Lookahead)
	}
	if cfg.TickInterval == nil || *cfg.TickInterval != "16ms" {
		t.Errorf("Expected TickInterval '16ms', got %v", cfg.TickInterval)
	}
	if cfg.UnitScale == nil || *cfg.UnitScale != "normalized" {
		t.Errorf("Expected UnitScale 'normalized', got %v", cfg.UnitScale)
	}

	// Test getter methods
	if cfg.GetSmoothingFactor() != 0.15 {
		t.Errorf("GetSmoothingFactor() = %f, want 0.15", cfg.GetSmoothingFactor())
	}
	if cfg.GetFireThreshold() != 0.003 {
		t.Errorf("GetFireThreshold() = %f, want 0.003", cfg.GetFireThreshold())
	}
	if cfg.GetMaxTickDt() != 100*time.Millisecond {
		t.Errorf("GetMaxTickDt() = %v, want 100ms", cfg.GetMaxTickDt())
	}
	if cfg.GetHistoryCapacity() != 100 || cfg.GetSummaryWindow() != 20 {
		t.Errorf("history = %d/%d, want 100/20", cfg.GetHistoryCapacity(), cfg.GetSummaryWindow())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultTuningConfig() should validate, got %v", err)
	}
}

func TestDefaultsFileMatchesBuiltins(t *testing.T) {
	fromFile := MustLoadDefaultConfig()
	builtin := EmptyTuningConfig()

	if fromFile.GetMeasurementNoise() != builtin.GetMeasurementNoise() {
		t.Errorf("measurement_noise: file %f, builtin %f", fromFile.GetMeasurementNoise(), builtin.GetMeasurementNoise())
	}
	if fromFile.GetProcessNoise() != builtin.GetProcessNoise() {
		t.Errorf("process_noise: file %g, builtin %g", fromFile.GetProcessNoise(), builtin.GetProcessNoise())
	}
	if fromFile.GetLookahead() != builtin.GetLookahead() {
		t.Errorf("lookahead: file %v, builtin %v", fromFile.GetLookahead(), builtin.GetLookahead())
	}
	if fromFile.GetTickInterval() != builtin.GetTickInterval() {
		t.Errorf("tick_interval: file %v, builtin %v", fromFile.GetTickInterval(), builtin.GetTickInterval())
	}
	if fromFile.GetLengthFactor() != 1 {
		t.Errorf("default length factor = %f, want 1", fromFile.GetLengthFactor())
	}
}

func TestLoadTuningConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.json")

	testJSON := `{
  "measurement_noise": 0.01,
  "lookahead": "80ms",
  "smoothing_factor": 0.2,
  "unit_scale": "degrees",
  "field_of_view_deg": 100,
  "profiles_path": "profiles.json"
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}

	cfg, err := LoadTuningConfig(configPath)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.GetMeasurementNoise() != 0.01 {
		t.Errorf("GetMeasurementNoise() = %f, want 0.01", cfg.GetMeasurementNoise())
	}
	if cfg.GetLookahead() != 80*time.Millisecond {
		t.Errorf("GetLookahead() = %v, want 80ms", cfg.GetLookahead())
	}
	if cfg.GetSmoothingFactor() != 0.2 {
		t.Errorf("GetSmoothingFactor() = %f, want 0.2", cfg.GetSmoothingFactor())
	}
	if cfg.GetLengthFactor() != 50 {
		t.Errorf("GetLengthFactor() = %f, want 50", cfg.GetLengthFactor())
	}
	if cfg.GetProfilesPath() != "profiles.json" {
		t.Errorf("GetProfilesPath() = %q, want profiles.json", cfg.GetProfilesPath())
	}
	// Omitted fields keep defaults.
	if cfg.GetProcessNoise() != 0.000002 {
		t.Errorf("GetProcessNoise() = %g, want default 2e-06", cfg.GetProcessNoise())
	}
	if cfg.GetTickInterval() != 16*time.Millisecond {
		t.Errorf("GetTickInterval() = %v, want default 16ms", cfg.GetTickInterval())
	}
}

func TestLoadTuningConfigMissing(t *testing.T) {
	_, err := LoadTuningConfig("/nonexistent/path/to/config.json")
	if err == nil {
		t.Error("Expected error when loading missing file, got nil")
	}
}

func TestLoadTuningConfigWrongExtension(t *testing.T) {
	_, err := LoadTuningConfig("config.yaml")
	if err == nil || !strings.Contains(err.Error(), ".json") {
		t.Errorf("Expected extension error, got %v", err)
	}
}

func TestLoadTuningConfigTooLarge(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "big.json")
	big := make([]byte, 1024*1024+1)
	if err := os.WriteFile(configPath, big, 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	_, err := LoadTuningConfig(configPath)
	if err == nil || !strings.Contains(err.Error(), "too large") {
		t.Errorf("Expected size error, got %v", err)
	}
}

func TestLoadTuningConfigInvalid(t *testing.T) {
	tmpDir := t.TempDir()

	cases := map[string]string{
		"invalid_json.json":  `{"measurement_noise": "invalid"`,
		"zero_noise.json":    `{"measurement_noise": 0}`,
		"bad_lookahead.json": `{"lookahead": "soon"}`,
	}
	for name, body := range cases {
		configPath := filepath.Join(tmpDir, name)
		if err := os.WriteFile(configPath, []byte(body), 0644); err != nil {
			t.Fatalf("Failed to write test config: %v", err)
		}
		if _, err := LoadTuningConfig(configPath); err == nil {
			t.Errorf("%s: expected error, got nil", name)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *TuningConfig
		wantErr bool
	}{
		{
			name:    "valid config",
			cfg:     DefaultTuningConfig(),
			wantErr: false,
		},
		{
			name:    "empty config is valid",
			cfg:     &TuningConfig{},
			wantErr: false,
		},
		{
			name:    "zero measurement noise",
			cfg:     &TuningConfig{MeasurementNoise: ptrFloat64(0)},
			wantErr: true,
		},
		{
			name:    "negative process noise",
			cfg:     &TuningConfig{ProcessNoise: ptrFloat64(-1e-6)},
			wantErr: true,
		},
		{
			name:    "smoothing factor above one",
			cfg:     &TuningConfig{SmoothingFactor: ptrFloat64(1.5)},
			wantErr: true,
		},
		{
			name:    "zero fire threshold",
			cfg:     &TuningConfig{FireThreshold: ptrFloat64(0)},
			wantErr: true,
		},
		{
			name:    "invalid max tick dt",
			cfg:     &TuningConfig{MaxTickDt: ptrString("invalid")},
			wantErr: true,
		},
		{
			name:    "negative lookahead",
			cfg:     &TuningConfig{Lookahead: ptrString("-5ms")},
			wantErr: true,
		},
		{
			name:    "zero tick interval",
			cfg:     &TuningConfig{TickInterval: ptrString("0s")},
			wantErr: true,
		},
		{
			name:    "unknown unit scale",
			cfg:     &TuningConfig{UnitScale: ptrString("pixels")},
			wantErr: true,
		},
		{
			name:    "degrees with bad fov",
			cfg:     &TuningConfig{UnitScale: ptrString("degrees"), FieldOfViewDeg: ptrFloat64(0)},
			wantErr: true,
		},
		{
			name:    "zero history capacity",
			cfg:     &TuningConfig{HistoryCapacity: ptrInt(0)},
			wantErr: true,
		},
		{
			name:    "zero summary window",
			cfg:     &TuningConfig{SummaryWindow: ptrInt(0)},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestGetLookahead(t *testing.T) {
	tests := []struct {
		name string
		cfg  *TuningConfig
		want time.Duration
	}{
		{
			name: "explicit",
			cfg:  &TuningConfig{Lookahead: ptrString("30ms")},
			want: 30 * time.Millisecond,
		},
		{
			name: "nil pointer returns default",
			cfg:  &TuningConfig{},
			want: 50 * time.Millisecond,
		},
		{
			name: "empty string returns default",
			cfg:  &TuningConfig{Lookahead: ptrString("")},
			want: 50 * time.Millisecond,
		},
		{
			name: "invalid duration returns default",
			cfg:  &TuningConfig{Lookahead: ptrString("invalid")},
			want: 50 * time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cfg.GetLookahead()
			if got != tt.want {
				t.Errorf("GetLookahead() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetTickIntervalNeverZero(t *testing.T) {
	cfg := &TuningConfig{TickInterval: ptrString("0s")}
	if got := cfg.GetTickInterval(); got != 16*time.Millisecond {
		t.Errorf("GetTickInterval() = %v, want fallback 16ms", got)
	}
}
