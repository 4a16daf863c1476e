package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUndo_EmptyHistoryIsNoop(t *testing.T) {
	h := &History{}
	s := mustApply(t, NewStats(FormatQuarters), Action{Kind: ActionMake, Category: CategoryFT}, quarters)

	assert.Equal(t, s, Undo(s, h))
	assert.Equal(t, 0, h.Len())
}

func TestHistory_SnapshotsAreIsolated(t *testing.T) {
	s := NewStats(FormatQuarters)
	h := NewHistory([]Stats{s})

	// Changing the caller's copy must not reach the stored snapshot.
	s.PeriodScores[1] = 99
	snaps := h.Snapshots()
	assert.Equal(t, 0, snaps[0].PeriodScores[1])

	snaps[0].Points = 7
	prev, ok := h.Pop()
	assert.True(t, ok)
	assert.Equal(t, 0, prev.Points)
}

func TestHistory_UndoInvertsEveryAction(t *testing.T) {
	actions := []Action{
		{Kind: ActionMake, Category: CategoryFG3},
		{Kind: ActionMiss, Category: CategoryFG},
		{Kind: ActionRebound, Rebound: ReboundOffensive},
		{Kind: ActionStat, Stat: StatSteals},
		{Kind: ActionPeriod, Direction: 1},
		{Kind: ActionShot, Value: 2, IsMake: true, Location: &Location{X: 40, Y: 20}},
	}
	h := &History{}
	states := []Stats{NewStats(FormatQuarters)}
	for _, a := range actions {
		cur := states[len(states)-1]
		h.Push(cur)
		states = append(states, mustApply(t, cur, a, quarters))
	}

	cur := states[len(states)-1]
	for i := len(states) - 2; i >= 0; i-- {
		cur = Undo(cur, h)
		assert.Equal(t, states[i], cur)
	}
	assert.Equal(t, 0, h.Len())

	h.Push(cur)
	h.Clear()
	assert.Equal(t, 0, h.Len())
}
