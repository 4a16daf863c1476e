package game

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// NewStats returns the zero state for a game of the given format.
func NewStats(format Format) Stats {
	scores := make(map[int]int, format.MaxPeriods())
	for p := 1; p <= format.MaxPeriods(); p++ {
		scores[p] = 0
	}
	return Stats{
		CurrentPeriod: 1,
		PeriodScores:  scores,
		Shots:         []Shot{},
	}
}

// Clone returns a deep copy of s.
func (s Stats) Clone() Stats {
	c := s
	c.PeriodScores = maps.Clone(s.PeriodScores)
	if c.PeriodScores == nil {
		c.PeriodScores = map[int]int{}
	}
	c.Shots = slices.Clone(s.Shots)
	if c.Shots == nil {
		c.Shots = []Shot{}
	}
	return c
}

// PeriodTotal sums the per-period scores.
func (s Stats) PeriodTotal() int {
	total := 0
	for _, pts := range s.PeriodScores {
		total += pts
	}
	return total
}

// Validate reports the first invariant s violates, or nil.
func (s Stats) Validate() error {
	counters := map[string]int{
		"points": s.Points, "fgm": s.FGM, "fga": s.FGA, "fg3m": s.FG3M, "fg3a": s.FG3A,
		"ftm": s.FTM, "fta": s.FTA, "rebounds": s.Rebounds, "oreb": s.OReb, "dreb": s.DReb,
		"assists": s.Assists, "steals": s.Steals, "blocks": s.Blocks, "turnovers": s.Turnovers,
		"fouls": s.Fouls,
	}
	for name, v := range counters {
		if v < 0 {
			return fmt.Errorf("%s is negative", name)
		}
	}
	switch {
	case s.CurrentPeriod < 1:
		return fmt.Errorf("current period %d out of range", s.CurrentPeriod)
	case s.FGM > s.FGA:
		return fmt.Errorf("fgm %d exceeds fga %d", s.FGM, s.FGA)
	case s.FG3M > s.FG3A:
		return fmt.Errorf("fg3m %d exceeds fg3a %d", s.FG3M, s.FG3A)
	case s.FG3M > s.FGA:
		return fmt.Errorf("fg3m %d exceeds fga %d", s.FG3M, s.FGA)
	case s.FTM > s.FTA:
		return fmt.Errorf("ftm %d exceeds fta %d", s.FTM, s.FTA)
	case s.Rebounds != s.OReb+s.DReb:
		return fmt.Errorf("rebounds %d != oreb %d + dreb %d", s.Rebounds, s.OReb, s.DReb)
	case s.PeriodTotal() != s.Points:
		return fmt.Errorf("period scores sum to %d, points are %d", s.PeriodTotal(), s.Points)
	case 2*(s.FGM-s.FG3M)+3*s.FG3M+s.FTM != s.Points:
		return fmt.Errorf("points %d do not match made shots", s.Points)
	}
	return nil
}

// CalculatePercentages derives shooting percentages, rounded to one decimal.
// A category with no attempts reports 0.
func CalculatePercentages(s Stats) Percentages {
	return Percentages{
		FG:  percent(s.FGM, s.FGA),
		FG3: percent(s.FG3M, s.FG3A),
		FT:  percent(s.FTM, s.FTA),
	}
}

func percent(made, attempted int) float64 {
	if attempted == 0 {
		return 0
	}
	return math.Round(float64(made)/float64(attempted)*1000) / 10
}
