// Package control implements the per-tick pointing pipeline: recoil
// compensation, lock confidence, the drag-and-lock convergence step, the fire
// gate and the rolling performance history.
//
// A Controller owns all of its state and is driven from a single goroutine.
// It never schedules itself; internal/driver owns the tick loop and calls
// Step once per tick.
package control
