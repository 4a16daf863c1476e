package game

import "errors"

// ErrInvalidAction is returned by Apply for actions it cannot interpret.
var ErrInvalidAction = errors.New("invalid action")

// Format is the period layout of a game.
type Format string

const (
	FormatQuarters Format = "quarters"
	FormatHalves   Format = "halves"
)

// MaxPeriods returns the number of regulation periods for the format.
// Unknown formats are treated as quarters.
func (f Format) MaxPeriods() int {
	if f == FormatHalves {
		return 2
	}
	return 4
}

// Normalize maps unknown formats to FormatQuarters.
func (f Format) Normalize() Format {
	if f == FormatHalves {
		return FormatHalves
	}
	return FormatQuarters
}

// Category is a shot category.
type Category string

const (
	CategoryFG  Category = "fg"
	CategoryFG3 Category = "fg3"
	CategoryFT  Category = "ft"
)

// PointValue returns the points a made shot of this category is worth.
func (c Category) PointValue() int {
	switch c {
	case CategoryFG:
		return 2
	case CategoryFG3:
		return 3
	case CategoryFT:
		return 1
	}
	return 0
}

// ReboundKind distinguishes offensive and defensive rebounds.
type ReboundKind string

const (
	ReboundOffensive ReboundKind = "off"
	ReboundDefensive ReboundKind = "def"
)

// SimpleStat names a counter that only ever increments by one.
type SimpleStat string

const (
	StatAssists   SimpleStat = "assists"
	StatSteals    SimpleStat = "steals"
	StatBlocks    SimpleStat = "blocks"
	StatTurnovers SimpleStat = "turnovers"
	StatFouls     SimpleStat = "fouls"
)

// Shot is one entry in the shot log. X and Y are percentage court
// coordinates in [0, 100].
type Shot struct {
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Value  int     `json:"value" msgpack:"value"`
	IsMake bool    `json:"isMake" msgpack:"isMake"`
	Period int     `json:"period" msgpack:"period"`
	Time   string  `json:"time,omitempty" msgpack:"time,omitempty"`
}

// Stats is the live statistics record of the game being tracked.
type Stats struct {
	CurrentPeriod int         `json:"currentPeriod" msgpack:"currentPeriod"`
	Points        int         `json:"points" msgpack:"points"`
	FGM           int         `json:"fgm" msgpack:"fgm"`
	FGA           int         `json:"fga" msgpack:"fga"`
	FG3M          int         `json:"fg3m" msgpack:"fg3m"`
	FG3A          int         `json:"fg3a" msgpack:"fg3a"`
	FTM           int         `json:"ftm" msgpack:"ftm"`
	FTA           int         `json:"fta" msgpack:"fta"`
	Rebounds      int         `json:"rebounds" msgpack:"rebounds"`
	OReb          int         `json:"oreb" msgpack:"oreb"`
	DReb          int         `json:"dreb" msgpack:"dreb"`
	Assists       int         `json:"assists" msgpack:"assists"`
	Steals        int         `json:"steals" msgpack:"steals"`
	Blocks        int         `json:"blocks" msgpack:"blocks"`
	Turnovers     int         `json:"turnovers" msgpack:"turnovers"`
	Fouls         int         `json:"fouls" msgpack:"fouls"`
	PeriodScores  map[int]int `json:"periodScores" msgpack:"periodScores"`
	Shots         []Shot      `json:"shots" msgpack:"shots"`
}

// ActionKind identifies what a dispatched Action does.
type ActionKind string

const (
	ActionMake    ActionKind = "make"
	ActionMiss    ActionKind = "miss"
	ActionRebound ActionKind = "rebound"
	ActionStat    ActionKind = "stat"
	ActionShot    ActionKind = "shot"
	ActionPeriod  ActionKind = "period"
	ActionReset   ActionKind = "reset"
)

// Location is a point on the court in percentage coordinates.
type Location struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Action is a single UI event. Only the fields relevant to Kind are read.
type Action struct {
	Kind      ActionKind  `json:"kind"`
	Category  Category    `json:"category,omitempty"`
	Rebound   ReboundKind `json:"rebound,omitempty"`
	Stat      SimpleStat  `json:"stat,omitempty"`
	Value     int         `json:"value,omitempty"`
	IsMake    bool        `json:"isMake,omitempty"`
	Direction int         `json:"direction,omitempty"`
	Location  *Location   `json:"location,omitempty"`
}

// Options carries the session settings Apply depends on.
type Options struct {
	Format       Format
	ShotTracking bool
	// Clock is the current timer reading, empty when the timer is disabled.
	Clock string
}

// ResultKind tells the caller whether an action was applied.
type ResultKind string

const (
	ResultApplied       ResultKind = "applied"
	ResultNeedsLocation ResultKind = "needs_location"
)

// LocationRequest asks the caller to pick a court location and dispatch
// Action again with it set.
type LocationRequest struct {
	Action Action `json:"action"`
	Value  int    `json:"value"`
}

// Result is the outcome of Apply. State is only meaningful when Kind is
// ResultApplied; Request only when Kind is ResultNeedsLocation.
type Result struct {
	Kind    ResultKind       `json:"kind"`
	State   Stats            `json:"-"`
	Changed bool             `json:"changed"`
	Request *LocationRequest `json:"request,omitempty"`
}

// Percentages are the shooting splits derived from Stats, in percent.
type Percentages struct {
	FG  float64 `json:"fg"`
	FG3 float64 `json:"fg3"`
	FT  float64 `json:"ft"`
}
