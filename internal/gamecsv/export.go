package gamecsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/mauv0809/courtside/internal/game"
)

// Export writes one row per record under Header.
func Export(w io.Writer, records []game.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(row(rec)); err != nil {
			return fmt.Errorf("writing game %s: %w", rec.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTemplate writes the header and one sample row.
func WriteTemplate(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll([][]string{Header, sampleRow}); err != nil {
		return fmt.Errorf("writing template: %w", err)
	}
	return nil
}

func row(rec game.Record) []string {
	var s game.Stats
	if rec.Stats != nil {
		s = *rec.Stats
	}
	out := make([]string, len(Header))
	out[colDate] = exportDate(rec.Date)
	out[colPlayer] = rec.Player
	out[colMyTeam] = rec.HomeTeam
	out[colOpponent] = rec.AwayTeam
	out[colResult] = string(rec.Outcome)
	out[colScore] = rec.FinalScore
	for col, v := range map[int]int{
		colPoints: s.Points, colOReb: s.OReb, colDReb: s.DReb, colRebounds: s.Rebounds,
		colAssists: s.Assists, colSteals: s.Steals, colBlocks: s.Blocks, colTurnovers: s.Turnovers,
		colFGM: s.FGM, colFGA: s.FGA, col3PM: s.FG3M, col3PA: s.FG3A,
		colFTM: s.FTM, colFTA: s.FTA, colFouls: s.Fouls,
	} {
		out[col] = strconv.Itoa(v)
	}
	return out
}

// exportDate turns a stored YYYY-MM-DD date into MM-DD-YYYY. Anything else
// is written as-is.
func exportDate(d string) string {
	t, err := time.Parse(time.DateOnly, d)
	if err != nil {
		return d
	}
	return t.Format(dateLayout)
}
