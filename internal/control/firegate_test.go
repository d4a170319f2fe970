package control

import (
	"testing"

	"github.com/banshee-data/aimlock/internal/geom"
	"github.com/stretchr/testify/assert"
)

func TestFireGate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		aim           geom.Vector3
		velocity      geom.Vector3
		wantFire      bool
		wantThreshold float64
		wantConf      float64
	}{
		{
			name:          "on target",
			aim:           geom.Zero(),
			wantFire:      true,
			wantThreshold: 0.00024,
			wantConf:      1,
		},
		{
			name:          "inside threshold",
			aim:           geom.Vec(0.0002, 0, 0),
			wantFire:      true,
			wantThreshold: 0.00024,
			wantConf:      1 - 0.0002/0.00024,
		},
		{
			name:          "outside threshold",
			aim:           geom.Vec(0, 0.01, 0),
			wantFire:      false,
			wantThreshold: 0.00024,
			wantConf:      0,
		},
		{
			name:          "speed widens threshold",
			aim:           geom.Vec(0.0004, 0, 0),
			velocity:      geom.Vec(0, 0, 10),
			wantFire:      true,
			wantThreshold: 0.00048,
			wantConf:      1 - 0.0004/0.00048,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FireGate(tt.aim, geom.Zero(), tt.velocity, testProfile, DefaultFireThreshold)
			assert.Equal(t, tt.wantFire, got.ShouldFire)
			assert.InDelta(t, tt.aim.Length(), got.Distance, 1e-15)
			assert.InDelta(t, tt.wantThreshold, got.Threshold, 1e-15)
			assert.InDelta(t, tt.wantConf, got.Confidence, 1e-9)
		})
	}
}
