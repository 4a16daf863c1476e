package game

import "fmt"

// Apply returns the state that results from applying a to s. It never
// mutates s. When shot tracking is enabled and a two or three point
// attempt arrives without a location, Apply returns ResultNeedsLocation and
// leaves the state alone; the caller is expected to dispatch the action
// again once a location is chosen.
func Apply(s Stats, a Action, opts Options) (Result, error) {
	switch a.Kind {
	case ActionMake, ActionMiss:
		return applyShot(s, a, opts)
	case ActionRebound:
		next := s.Clone()
		switch a.Rebound {
		case ReboundOffensive:
			next.OReb++
		case ReboundDefensive:
			next.DReb++
		default:
			return Result{}, fmt.Errorf("%w: unknown rebound kind %q", ErrInvalidAction, a.Rebound)
		}
		next.Rebounds++
		return applied(next, true), nil
	case ActionStat:
		next := s.Clone()
		counter := simpleCounter(&next, a.Stat)
		if counter == nil {
			return Result{}, fmt.Errorf("%w: unknown stat %q", ErrInvalidAction, a.Stat)
		}
		*counter++
		return applied(next, true), nil
	case ActionShot:
		if a.Value < 1 || a.Value > 3 {
			return Result{}, fmt.Errorf("%w: shot value %d", ErrInvalidAction, a.Value)
		}
		if a.Location == nil {
			return Result{}, fmt.Errorf("%w: shot without location", ErrInvalidAction)
		}
		if err := checkLocation(*a.Location); err != nil {
			return Result{}, err
		}
		next := s.Clone()
		next.Shots = append(next.Shots, newShot(*a.Location, a.Value, a.IsMake, next.CurrentPeriod, opts.Clock))
		return applied(next, true), nil
	case ActionPeriod:
		target := s.CurrentPeriod + a.Direction
		if a.Direction == 0 || target < 1 || target > opts.Format.MaxPeriods() {
			return applied(s, false), nil
		}
		next := s.Clone()
		next.CurrentPeriod = target
		if _, ok := next.PeriodScores[target]; !ok {
			next.PeriodScores[target] = 0
		}
		return applied(next, true), nil
	case ActionReset:
		return applied(NewStats(opts.Format), true), nil
	}
	return Result{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidAction, a.Kind)
}

func applyShot(s Stats, a Action, opts Options) (Result, error) {
	value := a.Category.PointValue()
	if value == 0 {
		return Result{}, fmt.Errorf("%w: unknown category %q", ErrInvalidAction, a.Category)
	}
	if a.Location != nil {
		if err := checkLocation(*a.Location); err != nil {
			return Result{}, err
		}
	}
	if opts.ShotTracking && a.Category != CategoryFT && a.Location == nil {
		return Result{
			Kind:    ResultNeedsLocation,
			State:   s,
			Request: &LocationRequest{Action: a, Value: value},
		}, nil
	}

	next := s.Clone()
	made := a.Kind == ActionMake
	switch a.Category {
	case CategoryFG:
		next.FGA++
		if made {
			next.FGM++
		}
	case CategoryFG3:
		next.FGA++
		next.FG3A++
		if made {
			next.FGM++
			next.FG3M++
		}
	case CategoryFT:
		next.FTA++
		if made {
			next.FTM++
		}
	}
	if made {
		next.Points += value
		next.PeriodScores[next.CurrentPeriod] += value
	}
	if opts.ShotTracking && a.Location != nil {
		next.Shots = append(next.Shots, newShot(*a.Location, value, made, next.CurrentPeriod, opts.Clock))
	}
	return applied(next, true), nil
}

func applied(s Stats, changed bool) Result {
	return Result{Kind: ResultApplied, State: s, Changed: changed}
}

func newShot(loc Location, value int, made bool, period int, clock string) Shot {
	return Shot{X: loc.X, Y: loc.Y, Value: value, IsMake: made, Period: period, Time: clock}
}

func checkLocation(loc Location) error {
	if loc.X < 0 || loc.X > 100 || loc.Y < 0 || loc.Y > 100 {
		return fmt.Errorf("%w: location (%.1f, %.1f) outside the court", ErrInvalidAction, loc.X, loc.Y)
	}
	return nil
}

func simpleCounter(s *Stats, stat SimpleStat) *int {
	switch stat {
	case StatAssists:
		return &s.Assists
	case StatSteals:
		return &s.Steals
	case StatBlocks:
		return &s.Blocks
	case StatTurnovers:
		return &s.Turnovers
	case StatFouls:
		return &s.Fouls
	}
	return nil
}
