// Package tracking owns target state estimation.
//
// Responsibilities: per-axis adaptive Kalman denoising, finite-difference
// velocity/acceleration estimation with exponential smoothing, and
// constant-acceleration extrapolation.
// Key types: ScalarKalman, MotionEstimator.
//
// Dependency rule: tracking may depend on geom, but never on control or
// profiles. Nothing here knows about weapons or actuation.
package tracking
