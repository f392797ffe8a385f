package clicko

import "testing"

func TestFormatSeconds(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "00:00"},
		{5, "00:05"},
		{65, "01:05"},
		{600, "10:00"},
		{6000, "100:00"},
		{-3, "00:00"},
	}

	for _, tt := range tests {
		if got := FormatSeconds(tt.seconds); got != tt.want {
			t.Errorf("FormatSeconds(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatBest(t *testing.T) {
	if got := FormatBest(0, false); got != "--:--" {
		t.Errorf("FormatBest without record = %q", got)
	}
	if got := FormatBest(75, true); got != "01:15" {
		t.Errorf("FormatBest(75) = %q, want 01:15", got)
	}
}

func TestLevelTimer(t *testing.T) {
	tm := NewLevelTimer(10)

	tm.Tick()
	if tm.Seconds() != 0 {
		t.Fatalf("stopped timer advanced to %d", tm.Seconds())
	}

	tm.Start()
	for i := 0; i < 25; i++ {
		tm.Tick()
	}
	if tm.Seconds() != 2 {
		t.Errorf("Seconds() = %d after 25 ticks at 10/s, want 2", tm.Seconds())
	}

	tm.AddPenalty(3)
	tm.AddPenalty(-1)
	if tm.Seconds() != 5 {
		t.Errorf("Seconds() = %d with a 3s penalty, want 5", tm.Seconds())
	}

	tm.Stop()
	tm.Tick()
	tm.AddPenalty(1)
	if tm.Seconds() != 6 {
		t.Errorf("penalty while stopped: Seconds() = %d, want 6", tm.Seconds())
	}
	if tm.Format() != "00:06" {
		t.Errorf("Format() = %q", tm.Format())
	}

	tm.SetSeconds(90)
	if tm.Seconds() != 90 {
		t.Errorf("SetSeconds(90) then Seconds() = %d", tm.Seconds())
	}

	tm.Reset()
	if tm.Seconds() != 0 || tm.Running() {
		t.Errorf("Reset left %ds running=%v", tm.Seconds(), tm.Running())
	}
}

func TestLevelTimerDefaultRate(t *testing.T) {
	tm := NewLevelTimer(0)
	tm.Start()
	for i := 0; i < 60; i++ {
		tm.Tick()
	}
	if tm.Seconds() != 1 {
		t.Errorf("Seconds() = %d after 60 ticks at the default rate, want 1", tm.Seconds())
	}
}
