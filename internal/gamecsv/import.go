package gamecsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/game"
)

// Import parses an exported file into new records. Rows shorter than the
// header (or than Header) and the template's sample row are skipped. Any malformed number
// rejects the whole file with a *FormatError.
func Import(r io.Reader, now time.Time) ([]game.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &FormatError{Row: 1, Err: fmt.Errorf("%w: file is empty", ErrHeader)}
	}
	if err != nil {
		return nil, &FormatError{Row: 1, Err: err}
	}
	if err := checkHeader(header); err != nil {
		return nil, &FormatError{Row: 1, Err: err}
	}

	records := []game.Record{}
	skipped := 0
	for line := 2; ; line++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &FormatError{Row: line, Err: err}
		}
		if len(fields) < max(len(header), len(Header)) || isSample(fields) {
			skipped++
			continue
		}
		rec, err := parseRow(fields, line, now)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	log.Info("Parsed game import", "games", len(records), "skipped", skipped)
	return records, nil
}

func checkHeader(h []string) error {
	if len(h) <= colOpponent {
		return fmt.Errorf("%w: expected at least %d columns", ErrHeader, colOpponent+1)
	}
	first := strings.TrimPrefix(strings.TrimSpace(h[colDate]), "\ufeff")
	if !strings.EqualFold(first, Header[colDate]) || !strings.EqualFold(strings.TrimSpace(h[colOpponent]), Header[colOpponent]) {
		return fmt.Errorf("%w: expected %q and %q in columns 1 and 4", ErrHeader, Header[colDate], Header[colOpponent])
	}
	return nil
}

func isSample(fields []string) bool {
	trimmed := make([]string, len(sampleRow))
	for i := range sampleRow {
		trimmed[i] = strings.TrimSpace(fields[i])
	}
	return slices.Equal(trimmed, sampleRow)
}

func parseRow(fields []string, line int, now time.Time) (game.Record, error) {
	nums := make(map[int]int, len(Header))
	for col := colPoints; col <= colFouls; col++ {
		v := strings.TrimSpace(fields[col])
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err == nil && n < 0 {
			err = errors.New("negative count")
		}
		if err != nil {
			return game.Record{}, &FormatError{Row: line, Column: Header[col], Value: v, Err: err}
		}
		nums[col] = n
	}

	stats := game.NewStats(game.FormatQuarters)
	stats.Points = nums[colPoints]
	stats.PeriodScores[1] = stats.Points
	stats.OReb, stats.DReb = nums[colOReb], nums[colDReb]
	stats.Rebounds = nums[colRebounds]
	if stats.OReb+stats.DReb > 0 {
		stats.Rebounds = stats.OReb + stats.DReb
	}
	stats.Assists = nums[colAssists]
	stats.Steals = nums[colSteals]
	stats.Blocks = nums[colBlocks]
	stats.Turnovers = nums[colTurnovers]
	stats.FGM, stats.FGA = nums[colFGM], nums[colFGA]
	stats.FG3M, stats.FG3A = nums[col3PM], nums[col3PA]
	stats.FTM, stats.FTA = nums[colFTM], nums[colFTA]
	stats.Fouls = nums[colFouls]

	date, createdAt := importDate(strings.TrimSpace(fields[colDate]), now)
	home, away := splitScore(fields[colScore])
	return game.Record{
		ID:         fmt.Sprintf("imported_%d_%d", now.UnixMilli(), line),
		Date:       date,
		CreatedAt:  createdAt.UTC().Format(time.RFC3339Nano),
		HomeTeam:   strings.TrimSpace(fields[colMyTeam]),
		AwayTeam:   strings.TrimSpace(fields[colOpponent]),
		Player:     strings.TrimSpace(fields[colPlayer]),
		Format:     game.FormatQuarters,
		FinalScore: strings.TrimSpace(fields[colScore]),
		Outcome:    game.Outcome(strings.TrimSpace(fields[colResult])),
		TeamScores: game.TeamScores{Home: home, Away: away},
		Stats:      &stats,
	}, nil
}

// importDate accepts MM-DD-YYYY or YYYY-MM-DD. The game is stamped at
// midnight UTC on its date; an unreadable date falls back to now.
func importDate(v string, now time.Time) (string, time.Time) {
	for _, layout := range []string{dateLayout, time.DateOnly} {
		if t, err := time.ParseInLocation(layout, v, time.UTC); err == nil {
			return t.Format(time.DateOnly), t
		}
	}
	return now.UTC().Format(time.DateOnly), now
}

// splitScore reads "home - away". Parts that are not numbers are 0.
func splitScore(v string) (int, int) {
	home, away, ok := strings.Cut(v, "-")
	if !ok {
		return 0, 0
	}
	h, _ := strconv.Atoi(strings.TrimSpace(home))
	a, _ := strconv.Atoi(strings.TrimSpace(away))
	return h, a
}
