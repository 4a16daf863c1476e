package session

import (
	"errors"
	"sync"

	"github.com/mauv0809/courtside/internal/game"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/storage"
)

var (
	// ErrPersist means the in-progress game or a saved game could not be
	// written to local storage. Callers must surface it as blocking.
	ErrPersist = errors.New("local storage write failed")
	// ErrSubmitInProgress is returned by BeginSubmit while a submission is running.
	ErrSubmitInProgress = errors.New("a submission is already in progress")
	ErrUnknownDialog    = errors.New("unknown dialog")
)

// Dialog is a confirmation dialog that blocks auto-save while open.
type Dialog string

const (
	DialogNone   Dialog = ""
	DialogReset  Dialog = "reset"
	DialogSubmit Dialog = "submit"
)

// SubmitState tracks the save pipeline for the current game.
type SubmitState string

const (
	SubmitIdle       SubmitState = "idle"
	SubmitSubmitting SubmitState = "submitting"
	SubmitSaved      SubmitState = "saved"
	SubmitFailed     SubmitState = "failed"
)

// Options configures a new Session.
type Options struct {
	Format       game.Format
	PeriodLength int
}

// Session is the one live game. All methods are safe for concurrent use and
// are applied in call order.
type Session struct {
	store   storage.Store
	metrics metrics.Metrics
	opts    Options

	mu           sync.Mutex
	stats        game.Stats
	history      *game.History
	timer        game.Timer
	details      game.Details
	shotTracking bool
	restored     bool
	// saved is set while a snapshot may exist in the store.
	saved     bool
	dialog    Dialog
	submit    SubmitState
	submitErr error
}

// TimerView is the clock as shown to clients.
type TimerView struct {
	State        game.TimerState `json:"state"`
	PeriodLength int             `json:"periodLength"`
	Remaining    int             `json:"remaining"`
	Clock        string          `json:"clock"`
}

// View is a read-only copy of the session.
type View struct {
	Stats        game.Stats       `json:"stats"`
	Percentages  game.Percentages `json:"percentages"`
	Details      game.Details     `json:"details"`
	Timer        TimerView        `json:"timer"`
	ShotTracking bool             `json:"shotTracking"`
	UndoDepth    int              `json:"undoDepth"`
	Dialog       Dialog           `json:"dialog,omitempty"`
	Submit       SubmitState      `json:"submit"`
	SubmitError  string           `json:"submitError,omitempty"`
	Restored     bool             `json:"restored"`
}

// snapshot is the persisted form of an in-progress game. Pointer fields
// distinguish absent values from zero values.
type snapshot struct {
	Stats               *game.Stats    `json:"stats"`
	Details             *game.Details  `json:"details"`
	TimerSettings       *timerSettings `json:"timerSettings,omitempty"`
	ClockSeconds        *int           `json:"clockSeconds,omitempty"`
	UndoStack           []game.Stats   `json:"undoStack,omitempty"`
	TimerRunning        bool           `json:"timerRunning"`
	ShotTrackingEnabled bool           `json:"shotTrackingEnabled"`
}

type timerSettings struct {
	Enabled      bool `json:"enabled"`
	PeriodLength int  `json:"periodLength"`
}
