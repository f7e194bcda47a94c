package main

import (
	"context"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/riverwatch/internal/clan"
	"github.com/mauv0809/riverwatch/internal/database"
	"github.com/mauv0809/riverwatch/internal/war"
)

const (
	numPlayers = 50
	numWeeks   = 10
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{"DB_NAME": "clan_data.db"}
	for _, key := range []string{"DB_NAME", "TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN"} {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

// seedTag derives a game-style tag from a random UUID.
func seedTag() string {
	return "#" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:9])
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], cfg["TURSO_PRIMARY_URL"], cfg["TURSO_AUTH_TOKEN"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	store := clan.New(db)
	ctx := context.Background()

	players := make([]clan.Player, numPlayers)
	for i := range players {
		players[i] = clan.Player{Tag: seedTag(), Name: "Seeder " + string(rune('A'+i%26)) + string(rune('a'+i/26))}
	}
	log.Info("Generated dummy players", "count", len(players))

	startTime := time.Now()
	monday := clan.Monday(startTime)
	for section := 0; section < numWeeks; section++ {
		created := monday.AddDate(0, 0, -7*(section+1)).Format("20060102") + "T094500.000Z"
		week := clan.HistoricalWeek(section, created)

		counters := make([]clan.WeeklyCounter, 0, len(players))
		for _, p := range players {
			decks := rand.Intn(war.FullQuota + 1)
			counters = append(counters, clan.WeeklyCounter{
				Week:          week,
				PlayerTag:     p.Tag,
				DecksUsed:     decks,
				DecksPossible: war.FullQuota,
				Fame:          decks * (150 + rand.Intn(100)),
			})
		}
		summary, err := store.ApplyWeek(ctx, players, counters, clan.PolicyReplace)
		if err != nil {
			log.Fatalf("Failed to seed week %s: %s", week, err)
		}
		log.Info("Seeded week", "week", week, "inserted", summary.Inserted, "updated", summary.Updated)
	}

	log.Info("Successfully seeded history.", "weeks", numWeeks, "duration", time.Since(startTime))
}
