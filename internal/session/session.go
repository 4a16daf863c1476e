package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/game"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/storage"
)

// New creates a session with a fresh game. Nothing is auto-saved until
// Restore has run.
func New(store storage.Store, metrics metrics.Metrics, opts Options) *Session {
	opts.Format = opts.Format.Normalize()
	if opts.PeriodLength <= 0 {
		opts.PeriodLength = game.DefaultPeriodLength
	}
	s := &Session{
		store:   store,
		metrics: metrics,
		opts:    opts,
		history: game.NewHistory(nil),
		timer:   game.NewTimer(opts.PeriodLength),
		submit:  SubmitIdle,
	}
	s.details = s.defaultDetails()
	s.stats = game.NewStats(opts.Format)
	return s
}

// Restore loads the auto-saved game, if any. It only runs once. A snapshot
// that fails to decode is ignored and the defaults are kept.
func (s *Session) Restore() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.restored {
		return nil
	}

	raw, err := s.store.Get(storage.KeySession)
	if errors.Is(err, storage.ErrNotFound) {
		s.restored = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading saved game: %w", err)
	}
	s.restored = true
	s.saved = true

	snap, err := decodeSnapshot(raw, s.opts.Format.Normalize())
	if err != nil {
		log.Warn("Ignoring saved game in progress", "error", err)
		return nil
	}

	s.stats = snap.Stats.Clone()
	s.details = *snap.Details
	s.details.Format = s.details.Format.Normalize()
	s.details.Outcome = game.ComputeOutcome(s.details.HomeScore, s.details.AwayScore)
	s.history = game.NewHistory(snap.UndoStack)
	s.shotTracking = snap.ShotTrackingEnabled

	enabled, length := false, s.opts.PeriodLength
	if snap.TimerSettings != nil {
		enabled = snap.TimerSettings.Enabled
		if snap.TimerSettings.PeriodLength > 0 {
			length = snap.TimerSettings.PeriodLength
		}
	}
	remaining := length * 60
	if snap.ClockSeconds != nil {
		remaining = *snap.ClockSeconds
	}
	s.timer = game.RestoreTimer(enabled, length, remaining)

	log.Info("Restored game in progress", "points", s.stats.Points, "undo", s.history.Len(), "wasRunning", snap.TimerRunning)
	return nil
}

// Dispatch applies a stat action to the live game. A NeedsLocation result
// leaves the game untouched.
func (s *Session) Dispatch(a game.Action) (game.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.Kind == game.ActionReset {
		err := s.resetLocked()
		return game.Result{Kind: game.ResultApplied, State: s.stats.Clone(), Changed: true}, err
	}

	res, err := game.Apply(s.stats, a, game.Options{
		Format:       s.details.Format.Normalize(),
		ShotTracking: s.shotTracking,
		Clock:        s.timer.Clock(),
	})
	if err != nil {
		return game.Result{}, err
	}
	if res.Kind != game.ResultApplied || !res.Changed {
		return res, nil
	}

	s.history.Push(s.stats)
	s.stats = res.State.Clone()
	if a.Kind == game.ActionPeriod {
		s.timer.ResetClock()
	}
	s.metrics.IncActionsDispatched(string(a.Kind))
	log.Debug("Applied action", "kind", a.Kind, "points", s.stats.Points, "period", s.stats.CurrentPeriod)
	return res, s.autoSaveLocked()
}

// Undo restores the state before the last applied action. It does nothing
// when there is nothing to undo.
func (s *Session) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.history.Len() == 0 {
		return nil
	}
	s.stats = game.Undo(s.stats, s.history)
	return s.autoSaveLocked()
}

// Reset discards the game in progress along with its saved snapshot.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resetLocked()
}

func (s *Session) resetLocked() error {
	s.clearLocked()
	s.submit = SubmitIdle
	s.submitErr = nil
	return s.deleteSnapshotLocked()
}

// SetDetails replaces the submission form. The outcome follows the scores.
func (s *Session) SetDetails(d game.Details) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.Format = d.Format.Normalize()
	d.Outcome = game.ComputeOutcome(d.HomeScore, d.AwayScore)
	s.details = d
	return s.autoSaveLocked()
}

func (s *Session) SetShotTracking(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shotTracking = enabled
	return s.autoSaveLocked()
}

func (s *Session) EnableTimer() error {
	return s.withTimer(func(t *game.Timer) error { t.Enable(); return nil })
}

func (s *Session) DisableTimer() error {
	return s.withTimer(func(t *game.Timer) error { t.Disable(); return nil })
}

// ToggleTimer starts or pauses the clock.
func (s *Session) ToggleTimer() error {
	return s.withTimer(func(t *game.Timer) error { t.Toggle(); return nil })
}

func (s *Session) SetPeriodLength(minutes int) error {
	return s.withTimer(func(t *game.Timer) error { return t.SetPeriodLength(minutes) })
}

func (s *Session) withTimer(fn func(t *game.Timer) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := fn(&s.timer); err != nil {
		return err
	}
	return s.autoSaveLocked()
}

// Tick advances a running clock by one second.
func (s *Session) Tick() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.timer.Tick() {
		return nil
	}
	return s.autoSaveLocked()
}

// RunClock ticks the timer once per second until ctx is done.
func (s *Session) RunClock(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Debug("Game clock stopped")
			return
		case <-ticker.C:
			if err := s.Tick(); err != nil {
				log.Error("Failed to save clock tick", "error", err)
			}
		}
	}
}

// OpenDialog marks a confirmation dialog as open, which pauses auto-save.
func (s *Session) OpenDialog(d Dialog) error {
	if d != DialogReset && d != DialogSubmit {
		return fmt.Errorf("%w: %q", ErrUnknownDialog, d)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialog = d
	return nil
}

// CloseDialog closes any open dialog and saves what changed meanwhile.
func (s *Session) CloseDialog() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dialog = DialogNone
	return s.autoSaveLocked()
}

// BeginSubmit validates the form and moves the session into submitting. It
// returns copies of the details and stats to build the record from. A
// ValidationError leaves the session unchanged.
func (s *Session) BeginSubmit() (game.Details, game.Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submit == SubmitSubmitting {
		return game.Details{}, game.Stats{}, ErrSubmitInProgress
	}
	if err := s.details.Validate(); err != nil {
		return game.Details{}, game.Stats{}, err
	}
	s.submit = SubmitSubmitting
	s.submitErr = nil
	return s.details, s.stats.Clone(), nil
}

// CompleteSubmit clears the submitted game. The returned error only
// concerns removing the snapshot; the live state is reset regardless.
func (s *Session) CompleteSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	s.submit = SubmitSaved
	s.submitErr = nil
	return s.deleteSnapshotLocked()
}

// FailSubmit records a failed submission. The live game is kept.
func (s *Session) FailSubmit(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submit = SubmitFailed
	s.submitErr = err
}

func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := View{
		Stats:       s.stats.Clone(),
		Percentages: game.CalculatePercentages(s.stats),
		Details:     s.details,
		Timer: TimerView{
			State:        s.timer.State,
			PeriodLength: s.timer.PeriodLength,
			Remaining:    s.timer.Remaining,
			Clock:        s.timer.Clock(),
		},
		ShotTracking: s.shotTracking,
		UndoDepth:    s.history.Len(),
		Dialog:       s.dialog,
		Submit:       s.submit,
		Restored:     s.restored,
	}
	if s.submitErr != nil {
		v.SubmitError = s.submitErr.Error()
	}
	return v
}

func (s *Session) defaultDetails() game.Details {
	return game.Details{Format: s.opts.Format}
}

// clearLocked resets stats, undo history, details and the clock. The timer
// stays enabled if it was.
func (s *Session) clearLocked() {
	format := s.details.Format.Normalize()
	s.stats = game.NewStats(format)
	s.history.Clear()
	s.details = game.Details{Format: format}
	s.timer.ResetClock()
	s.dialog = DialogNone
}

// active reports whether the game has anything worth keeping.
func (s *Session) activeLocked() bool {
	return s.stats.Points > 0 ||
		!s.timer.AtDefault() ||
		strings.TrimSpace(s.details.AwayTeam) != ""
}

func (s *Session) autoSaveLocked() error {
	if !s.restored || s.dialog != DialogNone {
		return nil
	}
	if !s.activeLocked() {
		// Nothing left to keep.
		if !s.saved {
			return nil
		}
		return s.deleteSnapshotLocked()
	}
	data, err := json.Marshal(s.snapshotLocked())
	if err != nil {
		return fmt.Errorf("%w: encoding snapshot: %v", ErrPersist, err)
	}
	if err := s.store.Put(storage.KeySession, data); err != nil {
		log.Error("Failed to auto-save game", "error", err)
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	s.saved = true
	s.metrics.IncAutoSaves()
	return nil
}

func (s *Session) deleteSnapshotLocked() error {
	if err := s.store.Delete(storage.KeySession); err != nil && !errors.Is(err, storage.ErrNotFound) {
		log.Error("Failed to delete saved game snapshot", "error", err)
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}
	s.saved = false
	return nil
}
