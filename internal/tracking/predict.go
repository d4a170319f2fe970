package tracking

import "github.com/banshee-data/aimlock/internal/geom"

// Predict extrapolates pos forward by lookahead seconds using a
// constant-acceleration model: pos + vel·t + ½·acc·t².
func Predict(pos, vel, acc geom.Vector3, lookahead float64) geom.Vector3 {
	return pos.
		Add(vel.Scale(lookahead)).
		Add(acc.Scale(0.5 * lookahead * lookahead))
}
