package main

import (
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/courtside/internal/database"
	"github.com/mauv0809/courtside/internal/game"
	"github.com/mauv0809/courtside/internal/library"
	"github.com/mauv0809/courtside/internal/storage"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{"SEED_GAMES": "50"}
	if value, ok := os.LookupEnv("DB_NAME"); ok {
		config["DB_NAME"] = value
	} else {
		log.Fatalf("Error: Required environment variable %s is not set.", "DB_NAME")
	}
	for _, key := range []string{"TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN", "SEED_GAMES", "SEED_PLAYER"} {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

var opponents = []string{"Owls", "Bears", "Comets", "Falcons", "Rockets", "Tigers"}

func main() {
	log.Info("Starting game seeder...")
	cfg := loadConfig()

	numGames, err := strconv.Atoi(cfg["SEED_GAMES"])
	if err != nil || numGames <= 0 {
		log.Fatalf("SEED_GAMES must be a positive number, got %q", cfg["SEED_GAMES"])
	}

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to open database: %s", err)
	}
	defer teardown()

	local := library.NewLocalCache(storage.New(db))

	log.Info("Preparing to insert demo games...", "total", numGames)
	startTime := time.Now()

	records := make([]game.Record, 0, numGames)
	for i := 0; i < numGames; i++ {
		playedAt := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour)
		records = append(records, randomGame(playedAt, cfg["SEED_PLAYER"]))
	}
	if err := local.UpsertMany(records); err != nil {
		log.Fatalf("Failed to insert demo games: %s", err)
	}

	duration := time.Since(startTime)
	log.Info("Successfully inserted all demo games.", "count", len(records), "duration", duration)
}

// randomGame plays a game through the reducer so the seeded stats hold
// together the same way tracked ones do.
func randomGame(playedAt time.Time, player string) game.Record {
	format := game.FormatQuarters
	if rand.Intn(4) == 0 {
		format = game.FormatHalves
	}
	stats := game.NewStats(format)
	opts := game.Options{Format: format, ShotTracking: true}

	for period := 1; period <= format.MaxPeriods(); period++ {
		for n := rand.Intn(12) + 4; n > 0; n-- {
			stats = apply(stats, randomAction(), opts)
		}
		stats = apply(stats, game.Action{Kind: game.ActionPeriod, Direction: 1}, opts)
	}

	opponentScore := 30 + rand.Intn(40)
	teamScore := opponentScore + rand.Intn(21) - 10
	details := game.Details{
		Date:      playedAt.Format(time.DateOnly),
		HomeTeam:  "Demo Team",
		AwayTeam:  opponents[rand.Intn(len(opponents))],
		Notes:     "Seeded game",
		Format:    format,
		HomeScore: strconv.Itoa(teamScore),
		AwayScore: strconv.Itoa(opponentScore),
	}
	return game.NewRecord("seed_"+uuid.NewString(), details, stats, player, playedAt)
}

func apply(s game.Stats, a game.Action, opts game.Options) game.Stats {
	res, err := game.Apply(s, a, opts)
	if err != nil {
		panic(fmt.Sprintf("seeder built an invalid action %+v: %v", a, err))
	}
	return res.State
}

func randomAction() game.Action {
	switch rand.Intn(5) {
	case 0, 1:
		categories := []game.Category{game.CategoryFG, game.CategoryFG3, game.CategoryFT}
		kind := game.ActionMiss
		if rand.Intn(2) == 0 {
			kind = game.ActionMake
		}
		return game.Action{
			Kind:     kind,
			Category: categories[rand.Intn(len(categories))],
			Location: &game.Location{X: rand.Float64() * 100, Y: rand.Float64() * 60},
		}
	case 2:
		kind := game.ReboundDefensive
		if rand.Intn(3) == 0 {
			kind = game.ReboundOffensive
		}
		return game.Action{Kind: game.ActionRebound, Rebound: kind}
	default:
		stats := []game.SimpleStat{game.StatAssists, game.StatSteals, game.StatBlocks, game.StatTurnovers, game.StatFouls}
		return game.Action{Kind: game.ActionStat, Stat: stats[rand.Intn(len(stats))]}
	}
}
