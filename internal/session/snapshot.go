package session

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mauv0809/courtside/internal/game"
)

func (s *Session) snapshotLocked() snapshot {
	stats := s.stats.Clone()
	details := s.details
	clock := s.timer.Remaining
	return snapshot{
		Stats:   &stats,
		Details: &details,
		TimerSettings: &timerSettings{
			Enabled:      s.timer.Enabled(),
			PeriodLength: s.timer.PeriodLength,
		},
		ClockSeconds:        &clock,
		UndoStack:           s.history.Snapshots(),
		TimerRunning:        s.timer.Running(),
		ShotTrackingEnabled: s.shotTracking,
	}
}

// rawSnapshot defers the nested objects so they can be decoded over their
// defaults.
type rawSnapshot struct {
	Stats               json.RawMessage   `json:"stats"`
	Details             json.RawMessage   `json:"details"`
	TimerSettings       *timerSettings    `json:"timerSettings,omitempty"`
	ClockSeconds        *int              `json:"clockSeconds,omitempty"`
	UndoStack           []json.RawMessage `json:"undoStack,omitempty"`
	TimerRunning        bool              `json:"timerRunning"`
	ShotTrackingEnabled bool              `json:"shotTrackingEnabled"`
}

// decodeSnapshot parses a stored snapshot. Fields missing from stats,
// details or an undo entry keep their defaults for format; anything it does
// not recognise, or stats that break an invariant, reject the whole
// snapshot.
func decodeSnapshot(raw []byte, format game.Format) (snapshot, error) {
	var rs rawSnapshot
	if err := strictDecode(raw, &rs); err != nil {
		return snapshot{}, fmt.Errorf("decoding snapshot: %w", err)
	}
	if isAbsent(rs.Stats) {
		return snapshot{}, errors.New("snapshot has no stats")
	}
	if isAbsent(rs.Details) {
		return snapshot{}, errors.New("snapshot has no details")
	}

	details := game.Details{Format: format}
	if err := strictDecode(rs.Details, &details); err != nil {
		return snapshot{}, fmt.Errorf("decoding details: %w", err)
	}
	format = details.Format.Normalize()

	stats, err := decodeStats(rs.Stats, format)
	if err != nil {
		return snapshot{}, fmt.Errorf("snapshot stats: %w", err)
	}
	undo := make([]game.Stats, 0, len(rs.UndoStack))
	for i, entry := range rs.UndoStack {
		st, err := decodeStats(entry, format)
		if err != nil {
			return snapshot{}, fmt.Errorf("undo entry %d: %w", i, err)
		}
		undo = append(undo, st)
	}

	return snapshot{
		Stats:               &stats,
		Details:             &details,
		TimerSettings:       rs.TimerSettings,
		ClockSeconds:        rs.ClockSeconds,
		UndoStack:           undo,
		TimerRunning:        rs.TimerRunning,
		ShotTrackingEnabled: rs.ShotTrackingEnabled,
	}, nil
}

func decodeStats(raw json.RawMessage, format game.Format) (game.Stats, error) {
	if isAbsent(raw) {
		return game.Stats{}, errors.New("empty stats")
	}
	st := game.NewStats(format)
	if err := strictDecode(raw, &st); err != nil {
		return game.Stats{}, err
	}
	if st.PeriodScores == nil {
		return game.Stats{}, errors.New("missing period scores")
	}
	if st.Shots == nil {
		st.Shots = []game.Shot{}
	}
	return st, st.Validate()
}

func strictDecode(raw []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return errors.New("trailing data")
	}
	return nil
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || string(bytes.TrimSpace(raw)) == "null"
}
