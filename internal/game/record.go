package game

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Outcome is the result of a game from the tracked team's point of view.
type Outcome string

const (
	OutcomeWin  Outcome = "Win"
	OutcomeLoss Outcome = "Loss"
	OutcomeTie  Outcome = "Tie"
)

// ComputeOutcome compares the typed scores. The first score is always the
// tracked team. It returns "" when either score is not a number.
func ComputeOutcome(home, away string) Outcome {
	h, err := strconv.Atoi(strings.TrimSpace(home))
	if err != nil {
		return ""
	}
	a, err := strconv.Atoi(strings.TrimSpace(away))
	if err != nil {
		return ""
	}
	switch {
	case h > a:
		return OutcomeWin
	case h < a:
		return OutcomeLoss
	}
	return OutcomeTie
}

// Details is the submission form for the game in progress.
type Details struct {
	Date      string  `json:"date"`
	HomeTeam  string  `json:"homeTeam"`
	AwayTeam  string  `json:"awayTeam"`
	Notes     string  `json:"notes"`
	Format    Format  `json:"format"`
	HomeScore string  `json:"homeScore"`
	AwayScore string  `json:"awayScore"`
	Outcome   Outcome `json:"outcome"`
}

// ValidationError lists the required form fields that are empty.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// Validate checks the fields required before a game can be submitted.
func (d Details) Validate() error {
	var missing []string
	if strings.TrimSpace(d.HomeTeam) == "" {
		missing = append(missing, "homeTeam")
	}
	if strings.TrimSpace(d.AwayTeam) == "" {
		missing = append(missing, "awayTeam")
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// TeamScores holds the final score of both teams.
type TeamScores struct {
	Home int `json:"home" msgpack:"home"`
	Away int `json:"away" msgpack:"away"`
}

// Record is a completed, saved game.
type Record struct {
	ID         string     `json:"id" msgpack:"id"`
	Date       string     `json:"date" msgpack:"date"`
	CreatedAt  string     `json:"createdAt" msgpack:"createdAt"`
	HomeTeam   string     `json:"homeTeam" msgpack:"homeTeam"`
	AwayTeam   string     `json:"awayTeam" msgpack:"awayTeam"`
	Player     string     `json:"player,omitempty" msgpack:"player,omitempty"`
	Notes      string     `json:"notes" msgpack:"notes"`
	Format     Format     `json:"format" msgpack:"format"`
	FinalScore string     `json:"finalScore" msgpack:"finalScore"`
	Outcome    Outcome    `json:"outcome" msgpack:"outcome"`
	TeamScores TeamScores `json:"teamScores" msgpack:"teamScores"`
	Stats      *Stats     `json:"stats" msgpack:"stats"`
}

// NewRecord freezes the live stats and form into a Record. Scores that do
// not parse are recorded as 0.
func NewRecord(id string, d Details, s Stats, player string, createdAt time.Time) Record {
	home, _ := strconv.Atoi(strings.TrimSpace(d.HomeScore))
	away, _ := strconv.Atoi(strings.TrimSpace(d.AwayScore))
	frozen := s.Clone()
	date := d.Date
	if date == "" {
		date = createdAt.Format(time.DateOnly)
	}
	return Record{
		ID:         id,
		Date:       date,
		CreatedAt:  createdAt.UTC().Format(time.RFC3339Nano),
		HomeTeam:   strings.TrimSpace(d.HomeTeam),
		AwayTeam:   strings.TrimSpace(d.AwayTeam),
		Player:     player,
		Notes:      d.Notes,
		Format:     d.Format.Normalize(),
		FinalScore: FormatScore(home, away),
		Outcome:    ComputeOutcome(strconv.Itoa(home), strconv.Itoa(away)),
		TeamScores: TeamScores{Home: home, Away: away},
		Stats:      &frozen,
	}
}

// FormatScore renders a final score the way it is stored on a Record.
func FormatScore(home, away int) string {
	return fmt.Sprintf("%d - %d", home, away)
}

// Valid reports whether the record can be shown in the game list.
func (r Record) Valid() bool {
	return r.ID != "" && r.Stats != nil
}

// CreatedAtMillis parses CreatedAt as RFC 3339 or as epoch milliseconds.
// Missing or unparseable values yield 0.
func (r Record) CreatedAtMillis() int64 {
	v := strings.TrimSpace(r.CreatedAt)
	if v == "" {
		return 0
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return t.UnixMilli()
	}
	if ms, err := strconv.ParseInt(v, 10, 64); err == nil && ms > 0 {
		return ms
	}
	return 0
}
