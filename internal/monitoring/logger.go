// Package monitoring holds the diagnostic logger shared by the controller,
// the driver loop and the CLI.
package monitoring

import (
	"log"
	"sync/atomic"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or production code can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Sampler forwards every Nth call to Logf. Safe for concurrent use.
type Sampler struct {
	every uint64
	count atomic.Uint64
}

// NewSampler returns a Sampler that logs on calls 1, every+1, 2*every+1 and so
// on. every <= 1 logs every call.
func NewSampler(every int) *Sampler {
	if every < 1 {
		every = 1
	}
	return &Sampler{every: uint64(every)}
}

// Logf logs through the package logger when the call falls on the sample
// boundary. It reports whether the message was emitted.
func (s *Sampler) Logf(format string, v ...interface{}) bool {
	n := s.count.Add(1) - 1
	if n%s.every != 0 {
		return false
	}
	Logf(format, v...)
	return true
}

// Count returns how many calls the sampler has seen.
func (s *Sampler) Count() uint64 {
	return s.count.Load()
}
