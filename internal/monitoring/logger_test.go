package monitoring

import (
	"bytes"
	"log"
	"strings"
	"testing"
)

func TestSetLogger_SwapAndMute(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	if Logf == nil {
		t.Fatal("Logf is nil before any SetLogger call")
	}

	var buf bytes.Buffer
	SetLogger(log.New(&buf, "", 0).Printf)
	Logf("weapon %s fell back", "NOT_A_WEAPON")
	if got := strings.TrimSpace(buf.String()); got != "weapon NOT_A_WEAPON fell back" {
		t.Errorf("logged %q", got)
	}

	buf.Reset()
	SetLogger(nil)
	Logf("muted %d", 1)
	if buf.Len() != 0 {
		t.Errorf("muted logger wrote %q", buf.String())
	}
}

func TestSampler_EveryNth(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var lines []string
	SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, format)
	})

	s := NewSampler(3)
	var emitted []bool
	for i := 0; i < 7; i++ {
		emitted = append(emitted, s.Logf("tick"))
	}

	want := []bool{true, false, false, true, false, false, true}
	for i := range want {
		if emitted[i] != want[i] {
			t.Errorf("call %d emitted = %v, want %v", i, emitted[i], want[i])
		}
	}
	if len(lines) != 3 {
		t.Errorf("logged %d lines, want 3", len(lines))
	}
	if s.Count() != 7 {
		t.Errorf("Count() = %d, want 7", s.Count())
	}
}

func TestSampler_NonPositiveLogsEverything(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	calls := 0
	SetLogger(func(string, ...interface{}) { calls++ })

	for _, every := range []int{0, -5, 1} {
		calls = 0
		s := NewSampler(every)
		for i := 0; i < 4; i++ {
			s.Logf("x")
		}
		if calls != 4 {
			t.Errorf("NewSampler(%d): logged %d times, want 4", every, calls)
		}
	}
}
