package config

import "github.com/mauv0809/courtside/internal/game"

// Config holds all configuration for the application.
type Config struct {
	DBName string
	Port   string
	// UserID scopes the remote store.
	UserID   string
	LogLevel string
	Turso    TursoConfig
	Redis    RedisConfig
	Slack    SlackConfig
	// ProjectID enables Pub/Sub events when set.
	ProjectID string
	// ExportURL is the webhook used when the user has not set one.
	ExportURL string
	Game      GameConfig
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}
type SlackConfig struct {
	Token     string
	ChannelID string
	DryRun    bool
}
type GameConfig struct {
	Format       game.Format
	PeriodLength int
}
