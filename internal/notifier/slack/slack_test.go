package slack

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mauv0809/courtside/internal/game"
	slackapi "github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSlackAPI is a mock implementation of the parts of the slack.Client that we use.
type mockSlackAPI struct {
	postMessageContextFunc func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error)
}

func (m *mockSlackAPI) PostMessageContext(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
	if m.postMessageContextFunc != nil {
		return m.postMessageContextFunc(ctx, channelID, options...)
	}
	return "C12345", "123456789.12345", nil
}

func testRecord() game.Record {
	s := game.NewStats(game.FormatHalves)
	s.Points, s.FGM, s.FGA = 4, 2, 5
	s.PeriodScores[1] = 4
	s.Rebounds, s.OReb, s.DReb = 3, 1, 2
	d := game.Details{Date: "2024-03-09", HomeTeam: "Hawks", AwayTeam: "Owls", Notes: "Good hustle", Format: game.FormatHalves, HomeScore: "50", AwayScore: "48"}
	return game.NewRecord("abc", d, s, "Sam", time.Date(2024, 3, 9, 18, 0, 0, 0, time.UTC))
}

func TestNotifyGameSaved_DryRun(t *testing.T) {
	// Pass nil for the api, as it shouldn't be called in dry-run mode.
	n := NewNotifierWithAPI(nil, "C123", true)
	require.NoError(t, n.NotifyGameSaved(context.Background(), testRecord()))
}

func TestNotifyGameSaved_Success(t *testing.T) {
	called := false
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			called = true
			assert.Equal(t, "C123", channelID)
			return "C123", "ts123", nil
		},
	}

	n := NewNotifierWithAPI(api, "C123", false)
	require.NoError(t, n.NotifyGameSaved(context.Background(), testRecord()))
	assert.True(t, called, "PostMessageContext should have been called")
}

func TestNotifyGameSaved_Failure(t *testing.T) {
	expectedErr := errors.New("slack API is down")
	api := &mockSlackAPI{
		postMessageContextFunc: func(ctx context.Context, channelID string, options ...slackapi.MsgOption) (string, string, error) {
			return "", "", expectedErr
		},
	}

	n := NewNotifierWithAPI(api, "C123", false)
	err := n.NotifyGameSaved(context.Background(), testRecord())
	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
}

func TestFormatGameSummary(t *testing.T) {
	msg := formatGameSummary(testRecord())
	blocks := msg.Blocks.BlockSet
	require.Len(t, blocks, 5)

	header, ok := blocks[0].(*slackapi.HeaderBlock)
	require.True(t, ok)
	assert.Equal(t, "🏀 Hawks vs Owls", header.Text.Text)

	result, ok := blocks[1].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "*Win* 50 - 48\nSaturday 09 Mar 2024", result.Text.Text)

	stats, ok := blocks[2].(*slackapi.SectionBlock)
	require.True(t, ok)
	require.Len(t, stats.Fields, 8)
	assert.Equal(t, "*FG*\n2/5 (40.0%)", stats.Fields[2].Text)

	periods, ok := blocks[3].(*slackapi.SectionBlock)
	require.True(t, ok)
	assert.Equal(t, "H1 4 · H2 0", periods.Text.Text)

	_, ok = blocks[4].(*slackapi.ContextBlock)
	assert.True(t, ok)
}

func TestFormatGameSummary_EmptyRecord(t *testing.T) {
	msg := formatGameSummary(game.Record{ID: "x"})
	blocks := msg.Blocks.BlockSet
	require.Len(t, blocks, 3)
	header := blocks[0].(*slackapi.HeaderBlock)
	assert.Equal(t, "🏀 - vs -", header.Text.Text)
}
