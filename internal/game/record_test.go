package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeOutcome(t *testing.T) {
	assert.Equal(t, OutcomeWin, ComputeOutcome("50", "48"))
	assert.Equal(t, OutcomeTie, ComputeOutcome("40", "40"))
	assert.Equal(t, OutcomeLoss, ComputeOutcome(" 39", "40 "))
	assert.Equal(t, Outcome(""), ComputeOutcome("", "40"))
}

func TestDetails_Validate(t *testing.T) {
	err := Details{HomeTeam: "Hawks"}.Validate()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"awayTeam"}, verr.Missing)

	assert.NoError(t, Details{HomeTeam: "Hawks", AwayTeam: "Owls"}.Validate())
}

func TestNewRecord_FreezesStats(t *testing.T) {
	s := NewStats(FormatQuarters)
	s.Points = 2
	s.FGM, s.FGA = 1, 1
	s.PeriodScores[1] = 2
	created := time.Date(2025, 3, 1, 18, 30, 0, 0, time.UTC)

	rec := NewRecord("abc", Details{HomeTeam: " Hawks ", AwayTeam: "Owls", HomeScore: "50", AwayScore: "48"}, s, "Sam", created)
	s.PeriodScores[1] = 99

	assert.Equal(t, "abc", rec.ID)
	assert.Equal(t, "Hawks", rec.HomeTeam)
	assert.Equal(t, "2025-03-01", rec.Date)
	assert.Equal(t, "50 - 48", rec.FinalScore)
	assert.Equal(t, OutcomeWin, rec.Outcome)
	assert.Equal(t, TeamScores{Home: 50, Away: 48}, rec.TeamScores)
	assert.Equal(t, FormatQuarters, rec.Format)
	require.NotNil(t, rec.Stats)
	assert.Equal(t, 2, rec.Stats.PeriodScores[1])
	assert.Equal(t, created.UnixMilli(), rec.CreatedAtMillis())
}

func TestRecord_CreatedAtMillis(t *testing.T) {
	assert.Equal(t, int64(0), Record{}.CreatedAtMillis())
	assert.Equal(t, int64(0), Record{CreatedAt: "yesterday"}.CreatedAtMillis())
	assert.Equal(t, int64(1700000000000), Record{CreatedAt: "1700000000000"}.CreatedAtMillis())
}

func TestStats_Validate(t *testing.T) {
	assert.NoError(t, NewStats(FormatHalves).Validate())

	bad := NewStats(FormatQuarters)
	bad.Rebounds = 1
	assert.Error(t, bad.Validate())

	bad = NewStats(FormatQuarters)
	bad.Points = 2
	assert.Error(t, bad.Validate(), "points without period scores")
}
