package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/game"
	"github.com/mauv0809/courtside/internal/shotchart"
)

// NewWebhook creates a Webhook. A nil client uses http.DefaultClient.
// Charts are drawn with chart.
func NewWebhook(client *http.Client, chart shotchart.Options) *Webhook {
	if client == nil {
		client = http.DefaultClient
	}
	return &Webhook{client: client, chart: chart}
}

// NewPayload flattens rec. Missing stats export as zeros.
func NewPayload(rec game.Record) Payload {
	var s game.Stats
	if rec.Stats != nil {
		s = *rec.Stats
	}
	pct := game.CalculatePercentages(s)
	p := Payload{
		ID:        rec.ID,
		Date:      rec.Date,
		Player:    rec.Player,
		Team:      rec.HomeTeam,
		Opponent:  rec.AwayTeam,
		Outcome:   string(rec.Outcome),
		Score:     rec.FinalScore,
		Points:    s.Points,
		FGM:       s.FGM,
		FGA:       s.FGA,
		FG3M:      s.FG3M,
		FG3A:      s.FG3A,
		FTM:       s.FTM,
		FTA:       s.FTA,
		Rebounds:  s.Rebounds,
		OReb:      s.OReb,
		DReb:      s.DReb,
		Assists:   s.Assists,
		Steals:    s.Steals,
		Blocks:    s.Blocks,
		Turnovers: s.Turnovers,
		Fouls:     s.Fouls,
		FGPct:     pct.FG,
		FG3Pct:    pct.FG3,
		FTPct:     pct.FT,
		Notes:     rec.Notes,
	}
	if ms := rec.CreatedAtMillis(); ms > 0 {
		p.Time = time.UnixMilli(ms).UTC().Format("15:04")
	}
	return p
}

// Send posts rec to url once. The shot chart is attached when the game
// has shots; failing to draw it only drops the image.
func (w *Webhook) Send(ctx context.Context, url string, rec game.Record) error {
	payload := NewPayload(rec)
	if rec.Stats != nil && len(rec.Stats.Shots) > 0 {
		chart, err := shotchart.Base64(rec.Stats.Shots, w.chart)
		if err != nil {
			log.Warn("Sending export without shot chart", "id", rec.ID, "error", err)
		} else {
			payload.ShotChart = chart
		}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling export payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating export request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("posting export: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("export webhook returned %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}
	log.Info("Exported game", "id", rec.ID, "status", resp.StatusCode)
	return nil
}
