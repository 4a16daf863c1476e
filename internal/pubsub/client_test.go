package pubsub

import (
	"context"
	"testing"
	"time"

	"github.com/mauv0809/courtside/internal/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMock_RecordsEncodedGame(t *testing.T) {
	m := NewMock()
	s := game.NewStats(game.FormatQuarters)
	s.Points, s.FTM, s.FTA = 1, 1, 1
	s.PeriodScores[1] = 1
	rec := game.NewRecord("abc", game.Details{HomeTeam: "Hawks", AwayTeam: "Owls", HomeScore: "1", AwayScore: "0"}, s, "Sam", time.Now())

	require.NoError(t, m.SendMessage(context.Background(), EventGameSaved, rec))
	calls := m.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, EventGameSaved, calls[0].Topic)

	var got game.Record
	require.NoError(t, m.ProcessMessage(calls[0].Data, &got))
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, game.OutcomeWin, got.Outcome)
	require.NotNil(t, got.Stats)
	assert.Equal(t, 1, got.Stats.PeriodScores[1])
}

func TestMock_DeletedEvent(t *testing.T) {
	m := NewMock()
	require.NoError(t, m.SendMessage(context.Background(), EventGameDeleted, GameDeleted{ID: "abc", DeletedAt: "2024-01-01T00:00:00Z"}))

	var got GameDeleted
	require.NoError(t, m.ProcessMessage(m.Calls()[0].Data, &got))
	assert.Equal(t, "abc", got.ID)
}

func TestProcessMessage_Malformed(t *testing.T) {
	var got GameDeleted
	assert.Error(t, NewMock().ProcessMessage([]byte{0xc1}, &got))
}
