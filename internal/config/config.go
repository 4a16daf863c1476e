package config

import (
	"os"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/courtside/internal/game"
)

// Load reads configuration from environment variables and .env file.
// DB_NAME and PORT are required; everything else is optional.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}

	return Config{
		DBName:   getEnv("DB_NAME"),
		Port:     getEnv("PORT"),
		UserID:   getOptional("USER_ID", "default"),
		LogLevel: getOptional("LOG_LEVEL", "info"),
		Turso: TursoConfig{
			PrimaryURL: getOptional("TURSO_PRIMARY_URL", ""),
			AuthToken:  getOptional("TURSO_AUTH_TOKEN", ""),
		},
		Redis: RedisConfig{
			Addr:     getOptional("REDIS_ADDR", ""),
			Password: getOptional("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
		},
		Slack: SlackConfig{
			Token:     getOptional("SLACK_BOT_TOKEN", ""),
			ChannelID: getOptional("SLACK_CHANNEL_ID", ""),
			DryRun:    getOptional("SLACK_DRY_RUN", "") == "true",
		},
		ProjectID: getOptional("GCP_PROJECT", ""),
		ExportURL: getOptional("EXPORT_WEBHOOK_URL", ""),
		Game: GameConfig{
			Format:       game.Format(getOptional("GAME_FORMAT", string(game.FormatQuarters))).Normalize(),
			PeriodLength: getInt("PERIOD_LENGTH", game.DefaultPeriodLength),
		},
	}
}

func getOptional(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := getOptional(key, "")
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn("Ignoring non-numeric environment variable", "key", key, "value", raw)
		return fallback
	}
	return n
}
