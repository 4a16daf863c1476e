package slack

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/game"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/slack-go/slack"
)

// slackClient is an interface that contains the methods from the slack.Client that we use.
// This allows for easy mocking in tests.
type slackClient interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier posts game summaries to a Slack channel.
type Notifier struct {
	api       slackClient
	channelID string
	dryRun    bool
}

// NewNotifier creates a new Notifier. With dryRun set, messages are logged
// instead of posted.
func NewNotifier(token, channelID string, dryRun bool) *Notifier {
	return &Notifier{
		api:       slack.New(token),
		channelID: channelID,
		dryRun:    dryRun,
	}
}

// NewNotifierWithAPI creates a new Notifier with a specific slack.Client instance.
// Useful for tests that need to intercept API calls.
func NewNotifierWithAPI(api slackClient, channelID string, dryRun bool) *Notifier {
	return &Notifier{
		api:       api,
		channelID: channelID,
		dryRun:    dryRun,
	}
}

func (s *Notifier) NotifyGameSaved(ctx context.Context, rec game.Record) error {
	_, _, err := s.sendMessage(ctx, formatGameSummary(rec))
	return err
}

func (s *Notifier) sendMessage(ctx context.Context, message slack.Message) (string, string, error) {
	if s.dryRun {
		jsonMsg, _ := json.MarshalIndent(message, "", "  ")
		log.Info("[Dry Run] Would send Slack message", "channel", s.channelID, "message", string(jsonMsg))
		return "dry-run-channel", "dry-run-ts", nil
	}

	channelID, timestamp, err := s.api.PostMessageContext(
		ctx,
		s.channelID,
		slack.MsgOptionBlocks(message.Blocks.BlockSet...),
		slack.MsgOptionAsUser(true),
	)
	if err != nil {
		log.Error("Failed to send Slack message", "error", err, "channel", s.channelID)
		return "", "", fmt.Errorf("failed to post message: %w", err)
	}

	log.Info("Sent Slack message", "channel", channelID, "timestamp", timestamp)
	return channelID, timestamp, nil
}

// formatGameSummary builds the box score message for a saved game.
func formatGameSummary(rec game.Record) slack.Message {
	var s game.Stats
	if rec.Stats != nil {
		s = *rec.Stats
	}
	blocks := make([]slack.Block, 0, 5)

	title := fmt.Sprintf("🏀 %s vs %s", orDash(rec.HomeTeam), orDash(rec.AwayTeam))
	blocks = append(blocks, slack.NewHeaderBlock(slack.NewTextBlockObject("plain_text", title, true, false)))

	result := fmt.Sprintf("*%s* %s", orDash(string(rec.Outcome)), rec.FinalScore)
	if d, err := time.Parse(time.DateOnly, rec.Date); err == nil {
		result += "\n" + d.Format("Monday 02 Jan 2006")
	}
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("mrkdwn", result, false, false), nil, nil))

	pct := game.CalculatePercentages(s)
	fields := []*slack.TextBlockObject{
		field("Points", fmt.Sprintf("%d", s.Points)),
		field("Rebounds", fmt.Sprintf("%d (%d off, %d def)", s.Rebounds, s.OReb, s.DReb)),
		field("FG", fmt.Sprintf("%d/%d (%.1f%%)", s.FGM, s.FGA, pct.FG)),
		field("3PT", fmt.Sprintf("%d/%d (%.1f%%)", s.FG3M, s.FG3A, pct.FG3)),
		field("FT", fmt.Sprintf("%d/%d (%.1f%%)", s.FTM, s.FTA, pct.FT)),
		field("Assists", fmt.Sprintf("%d", s.Assists)),
		field("Stl / Blk", fmt.Sprintf("%d / %d", s.Steals, s.Blocks)),
		field("TO / Fouls", fmt.Sprintf("%d / %d", s.Turnovers, s.Fouls)),
	}
	blocks = append(blocks, slack.NewSectionBlock(nil, fields, nil))

	if periods := formatPeriods(s.PeriodScores, rec.Format); periods != "" {
		blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", periods, true, false), nil, nil))
	}

	var footer []slack.MixedElement
	if rec.Player != "" {
		footer = append(footer, slack.NewTextBlockObject("plain_text", "Player: "+rec.Player, true, false))
	}
	if notes := strings.TrimSpace(rec.Notes); notes != "" {
		footer = append(footer, slack.NewTextBlockObject("plain_text", notes, true, false))
	}
	if len(footer) > 0 {
		blocks = append(blocks, slack.NewContextBlock("", footer...))
	}

	return slack.NewBlockMessage(blocks...)
}

func field(label, value string) *slack.TextBlockObject {
	return slack.NewTextBlockObject("mrkdwn", fmt.Sprintf("*%s*\n%s", label, value), false, false)
}

// formatPeriods renders "Q1 4 · Q2 0 ..." in period order.
func formatPeriods(scores map[int]int, format game.Format) string {
	if len(scores) == 0 {
		return ""
	}
	prefix := "Q"
	if format.Normalize() == game.FormatHalves {
		prefix = "H"
	}
	periods := make([]int, 0, len(scores))
	for p := range scores {
		periods = append(periods, p)
	}
	sort.Ints(periods)
	parts := make([]string, 0, len(periods))
	for _, p := range periods {
		parts = append(parts, fmt.Sprintf("%s%d %d", prefix, p, scores[p]))
	}
	return strings.Join(parts, " · ")
}

func orDash(v string) string {
	if strings.TrimSpace(v) == "" {
		return "-"
	}
	return v
}
