package game

import "fmt"

// TimerState is the state of the game clock.
type TimerState string

const (
	TimerDisabled TimerState = "disabled"
	TimerPaused   TimerState = "paused"
	TimerRunning  TimerState = "running"
)

// DefaultPeriodLength is the period length in minutes used when none is set.
const DefaultPeriodLength = 8

// Timer is a countdown clock for the current period. It is independent of
// the stats reducer; the reducer only reads Clock() for the shot log.
type Timer struct {
	State        TimerState `json:"state"`
	PeriodLength int        `json:"periodLength"`
	Remaining    int        `json:"remaining"`
}

// NewTimer returns a disabled timer with a full period on the clock.
func NewTimer(periodLength int) Timer {
	if periodLength <= 0 {
		periodLength = DefaultPeriodLength
	}
	return Timer{State: TimerDisabled, PeriodLength: periodLength, Remaining: periodLength * 60}
}

// RestoreTimer rebuilds a timer from persisted values. A timer that was
// running when it was saved comes back paused.
func RestoreTimer(enabled bool, periodLength, remaining int) Timer {
	t := NewTimer(periodLength)
	if remaining >= 0 && remaining <= t.PeriodLength*60 {
		t.Remaining = remaining
	}
	if enabled {
		t.State = TimerPaused
	}
	return t
}

func (t *Timer) Enabled() bool {
	return t.State != TimerDisabled
}

func (t *Timer) Running() bool {
	return t.State == TimerRunning
}

// Enable turns the clock on, paused at the start of a period.
func (t *Timer) Enable() {
	if t.Enabled() {
		return
	}
	t.State = TimerPaused
	t.Remaining = t.PeriodLength * 60
}

func (t *Timer) Disable() {
	t.State = TimerDisabled
	t.Remaining = t.PeriodLength * 60
}

// Toggle switches between running and paused. It does nothing while the
// timer is disabled or has run out.
func (t *Timer) Toggle() {
	switch t.State {
	case TimerRunning:
		t.State = TimerPaused
	case TimerPaused:
		if t.Remaining > 0 {
			t.State = TimerRunning
		}
	}
}

// Tick advances a running clock by one second and reports whether it
// changed. Reaching zero pauses the clock.
func (t *Timer) Tick() bool {
	if t.State != TimerRunning {
		return false
	}
	if t.Remaining > 0 {
		t.Remaining--
	}
	if t.Remaining <= 0 {
		t.Remaining = 0
		t.State = TimerPaused
	}
	return true
}

// SetPeriodLength changes the period length in minutes. A running
// countdown keeps its remaining time; otherwise the clock is reset.
func (t *Timer) SetPeriodLength(minutes int) error {
	if minutes <= 0 || minutes > 60 {
		return fmt.Errorf("period length %d out of range", minutes)
	}
	t.PeriodLength = minutes
	if t.State != TimerRunning {
		t.Remaining = minutes * 60
	}
	return nil
}

// ResetClock puts a full period back on the clock, paused.
func (t *Timer) ResetClock() {
	t.Remaining = t.PeriodLength * 60
	if t.State == TimerRunning {
		t.State = TimerPaused
	}
}

// AtDefault reports whether the clock still shows a full period.
func (t *Timer) AtDefault() bool {
	return t.Remaining == t.PeriodLength*60
}

// Clock formats the remaining time as mm:ss, or "" when disabled.
func (t *Timer) Clock() string {
	if !t.Enabled() {
		return ""
	}
	return fmt.Sprintf("%02d:%02d", t.Remaining/60, t.Remaining%60)
}
