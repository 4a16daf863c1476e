package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quarters = Options{Format: FormatQuarters}

func mustApply(t *testing.T, s Stats, a Action, opts Options) Stats {
	t.Helper()
	res, err := Apply(s, a, opts)
	require.NoError(t, err)
	require.Equal(t, ResultApplied, res.Kind)
	return res.State
}

func TestApply_MakeMissUndoScenario(t *testing.T) {
	h := &History{}
	initial := NewStats(FormatQuarters)

	h.Push(initial)
	afterMake := mustApply(t, initial, Action{Kind: ActionMake, Category: CategoryFG}, quarters)
	assert.Equal(t, 2, afterMake.Points)
	assert.Equal(t, 1, afterMake.FGM)
	assert.Equal(t, 1, afterMake.FGA)
	assert.Equal(t, map[int]int{1: 2, 2: 0, 3: 0, 4: 0}, afterMake.PeriodScores)

	h.Push(afterMake)
	afterMiss := mustApply(t, afterMake, Action{Kind: ActionMiss, Category: CategoryFG3}, quarters)
	assert.Equal(t, 1, afterMiss.FG3A)
	assert.Equal(t, 2, afterMiss.Points)

	reverted := Undo(afterMiss, h)
	assert.Equal(t, afterMake, reverted)
	assert.Equal(t, 1, h.Len())
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	s := NewStats(FormatQuarters)
	_ = mustApply(t, s, Action{Kind: ActionMake, Category: CategoryFG3}, quarters)
	_ = mustApply(t, s, Action{Kind: ActionShot, Value: 2, Location: &Location{X: 10, Y: 10}}, quarters)

	assert.Equal(t, NewStats(FormatQuarters), s)
}

func TestApply_ThreePointerCountsAsFieldGoal(t *testing.T) {
	s := mustApply(t, NewStats(FormatQuarters), Action{Kind: ActionMake, Category: CategoryFG3}, quarters)

	assert.Equal(t, 3, s.Points)
	assert.Equal(t, 1, s.FGM)
	assert.Equal(t, 1, s.FGA)
	assert.Equal(t, 1, s.FG3M)
	assert.Equal(t, 1, s.FG3A)
}

func TestApply_ReboundsAndSimpleStats(t *testing.T) {
	s := NewStats(FormatQuarters)
	s = mustApply(t, s, Action{Kind: ActionRebound, Rebound: ReboundOffensive}, quarters)
	s = mustApply(t, s, Action{Kind: ActionRebound, Rebound: ReboundDefensive}, quarters)
	s = mustApply(t, s, Action{Kind: ActionRebound, Rebound: ReboundDefensive}, quarters)
	assert.Equal(t, 1, s.OReb)
	assert.Equal(t, 2, s.DReb)
	assert.Equal(t, 3, s.Rebounds)

	for _, stat := range []SimpleStat{StatAssists, StatSteals, StatBlocks, StatTurnovers, StatFouls} {
		s = mustApply(t, s, Action{Kind: ActionStat, Stat: stat}, quarters)
	}
	assert.Equal(t, 1, s.Assists)
	assert.Equal(t, 1, s.Steals)
	assert.Equal(t, 1, s.Blocks)
	assert.Equal(t, 1, s.Turnovers)
	assert.Equal(t, 1, s.Fouls)
}

func TestApply_ShotTrackingGate(t *testing.T) {
	opts := Options{Format: FormatQuarters, ShotTracking: true, Clock: "07:42"}
	s := NewStats(FormatQuarters)

	t.Run("two pointer without location asks for one", func(t *testing.T) {
		action := Action{Kind: ActionMake, Category: CategoryFG}
		res, err := Apply(s, action, opts)
		require.NoError(t, err)
		assert.Equal(t, ResultNeedsLocation, res.Kind)
		require.NotNil(t, res.Request)
		assert.Equal(t, 2, res.Request.Value)
		assert.Equal(t, action, res.Request.Action)
		assert.Equal(t, s, res.State)
	})

	t.Run("redispatch with location records the shot", func(t *testing.T) {
		next := mustApply(t, s, Action{Kind: ActionMiss, Category: CategoryFG3, Location: &Location{X: 12.5, Y: 80}}, opts)
		assert.Equal(t, 1, next.FG3A)
		require.Len(t, next.Shots, 1)
		assert.Equal(t, Shot{X: 12.5, Y: 80, Value: 3, IsMake: false, Period: 1, Time: "07:42"}, next.Shots[0])
	})

	t.Run("free throws bypass the gate", func(t *testing.T) {
		next := mustApply(t, s, Action{Kind: ActionMake, Category: CategoryFT}, opts)
		assert.Equal(t, 1, next.Points)
		assert.Empty(t, next.Shots)
	})

	t.Run("location ignored when tracking is off", func(t *testing.T) {
		next := mustApply(t, s, Action{Kind: ActionMake, Category: CategoryFG, Location: &Location{X: 50, Y: 50}}, quarters)
		assert.Empty(t, next.Shots)
	})

	t.Run("clock omitted when timer disabled", func(t *testing.T) {
		next := mustApply(t, s, Action{Kind: ActionShot, Value: 2, IsMake: true, Location: &Location{X: 1, Y: 2}}, quarters)
		require.Len(t, next.Shots, 1)
		assert.Empty(t, next.Shots[0].Time)
		assert.Equal(t, 0, next.Points, "a bare shot location does not score")
	})
}

func TestApply_ChangePeriod(t *testing.T) {
	t.Run("clamps at both ends", func(t *testing.T) {
		s := NewStats(FormatQuarters)
		res, err := Apply(s, Action{Kind: ActionPeriod, Direction: -1}, quarters)
		require.NoError(t, err)
		assert.False(t, res.Changed)
		assert.Equal(t, 1, res.State.CurrentPeriod)

		for i := 0; i < 6; i++ {
			res, err = Apply(res.State, Action{Kind: ActionPeriod, Direction: 1}, quarters)
			require.NoError(t, err)
		}
		assert.Equal(t, 4, res.State.CurrentPeriod)
		assert.False(t, res.Changed)
	})

	t.Run("halves stop at two", func(t *testing.T) {
		halves := Options{Format: FormatHalves}
		s := NewStats(FormatHalves)
		s = mustApply(t, s, Action{Kind: ActionPeriod, Direction: 1}, halves)
		s = mustApply(t, s, Action{Kind: ActionPeriod, Direction: 1}, halves)
		assert.Equal(t, 2, s.CurrentPeriod)
	})

	t.Run("points land in the current period", func(t *testing.T) {
		s := mustApply(t, NewStats(FormatQuarters), Action{Kind: ActionPeriod, Direction: 1}, quarters)
		s = mustApply(t, s, Action{Kind: ActionMake, Category: CategoryFG3}, quarters)
		assert.Equal(t, 3, s.PeriodScores[2])
		assert.Equal(t, 0, s.PeriodScores[1])
	})
}

func TestApply_Reset(t *testing.T) {
	s := mustApply(t, NewStats(FormatQuarters), Action{Kind: ActionMake, Category: CategoryFG}, quarters)
	s = mustApply(t, s, Action{Kind: ActionReset}, quarters)
	assert.Equal(t, NewStats(FormatQuarters), s)
}

func TestApply_InvalidActions(t *testing.T) {
	cases := map[string]Action{
		"unknown kind":     {Kind: "dunk"},
		"unknown category": {Kind: ActionMake, Category: "fg4"},
		"unknown rebound":  {Kind: ActionRebound, Rebound: "team"},
		"unknown stat":     {Kind: ActionStat, Stat: "charges"},
		"shot value":       {Kind: ActionShot, Value: 4, Location: &Location{}},
		"shot off court":   {Kind: ActionShot, Value: 2, Location: &Location{X: 101}},
	}
	for name, a := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Apply(NewStats(FormatQuarters), a, quarters)
			assert.ErrorIs(t, err, ErrInvalidAction)
		})
	}
}

func TestApply_RandomSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	actions := []Action{
		{Kind: ActionMake, Category: CategoryFG},
		{Kind: ActionMake, Category: CategoryFG3},
		{Kind: ActionMake, Category: CategoryFT},
		{Kind: ActionMiss, Category: CategoryFG},
		{Kind: ActionMiss, Category: CategoryFG3},
		{Kind: ActionMiss, Category: CategoryFT},
		{Kind: ActionRebound, Rebound: ReboundOffensive},
		{Kind: ActionRebound, Rebound: ReboundDefensive},
		{Kind: ActionStat, Stat: StatAssists},
		{Kind: ActionPeriod, Direction: 1},
		{Kind: ActionPeriod, Direction: -1},
	}

	for run := 0; run < 50; run++ {
		s := NewStats(FormatQuarters)
		h := &History{}
		for step := 0; step < 100; step++ {
			a := actions[rng.Intn(len(actions))]
			res, err := Apply(s, a, quarters)
			require.NoError(t, err)
			if res.Changed {
				h.Push(s)
			}
			prev := s
			s = res.State
			require.NoError(t, s.Validate(), "after %+v", a)

			if res.Changed {
				assert.Equal(t, prev, Undo(s, h.cloneForTest()), "undo must invert %+v", a)
			}
		}
	}
}

func (h *History) cloneForTest() *History {
	return NewHistory(h.Snapshots())
}

func TestCalculatePercentages(t *testing.T) {
	s := Stats{FGM: 1, FGA: 3, FG3M: 0, FG3A: 0, FTM: 3, FTA: 4}
	p := CalculatePercentages(s)
	assert.Equal(t, 33.3, p.FG)
	assert.Equal(t, 0.0, p.FG3)
	assert.Equal(t, 75.0, p.FT)
}
