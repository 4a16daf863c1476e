package config

import (
	"testing"

	"github.com/mauv0809/courtside/internal/game"
	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_NAME", "courtside.db")
	t.Setenv("PORT", "8080")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("GAME_FORMAT", "halves")
	t.Setenv("PERIOD_LENGTH", "ten")
	t.Setenv("SLACK_DRY_RUN", "true")
	t.Setenv("USER_ID", "")
	t.Setenv("GCP_PROJECT", "")

	cfg := Load()
	assert.Equal(t, "courtside.db", cfg.DBName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "default", cfg.UserID)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, game.FormatHalves, cfg.Game.Format)
	assert.Equal(t, game.DefaultPeriodLength, cfg.Game.PeriodLength)
	assert.True(t, cfg.Slack.DryRun)
	assert.Empty(t, cfg.ProjectID)
}
