package gamecsv

import (
	"errors"
	"fmt"
)

// Header is the fixed column layout of exported and imported files.
var Header = []string{
	"Date", "Player", "My Team", "Opponent", "Result", "Score", "Points",
	"Off. Reb", "Def. Reb", "Total Reb", "Assists", "Steals", "Blocks",
	"Turnovers", "FGM", "FGA", "3PM", "3PA", "FTM", "FTA", "Fouls",
}

// Column positions in Header.
const (
	colDate = iota
	colPlayer
	colMyTeam
	colOpponent
	colResult
	colScore
	colPoints
	colOReb
	colDReb
	colRebounds
	colAssists
	colSteals
	colBlocks
	colTurnovers
	colFGM
	colFGA
	col3PM
	col3PA
	colFTM
	colFTA
	colFouls
)

// sampleRow is written by WriteTemplate and skipped on import.
var sampleRow = []string{
	"01-15-2024", "Player Name", "My Team", "Opponent Team", "Win", "52 - 47", "14",
	"2", "3", "5", "4", "2", "1", "3", "5", "11", "1", "4", "3", "4", "2",
}

const dateLayout = "01-02-2006"

var ErrHeader = errors.New("unrecognised header")

// FormatError rejects a whole import. Row is the 1-based line in the file.
type FormatError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("row %d: %v", e.Row, e.Err)
	}
	return fmt.Sprintf("row %d, column %q: invalid value %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
