package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/mauv0809/riverwatch/internal/royale"
)

const (
	defaultDBName       = "clan_data.db"
	defaultPort         = "8080"
	defaultHistoryLimit = 10
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	cfg, err := FromEnv(os.LookupEnv)
	if err != nil {
		log.Fatalf("Error: %s", err)
	}
	return cfg
}

// FromEnv builds a Config from the given lookup function.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	var missing []string
	getEnv := func(key string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		missing = append(missing, key)
		return ""
	}
	getOptional := func(key, fallback string) string {
		if value, ok := lookup(key); ok && value != "" {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBName:   getOptional("DB_NAME", defaultDBName),
		Port:     getOptional("PORT", defaultPort),
		LogLevel: getOptional("LOG_LEVEL", "info"),
		Clan: ClanConfig{
			Tag:        royale.NormalizeTag(getEnv("CLAN_TAG")),
			APIToken:   getEnv("CR_API_TOKEN"),
			APIBaseURL: getOptional("CR_API_BASE_URL", royale.DefaultBaseURL),
		},
		Telegram: TelegramConfig{
			Token: getEnv("TELEGRAM_TOKEN"),
		},
		Slack: SlackConfig{
			Token:     getOptional("SLACK_BOT_TOKEN", ""),
			ChannelID: getOptional("SLACK_CHANNEL_ID", ""),
		},
		Turso: TursoConfig{
			PrimaryURL: getOptional("TURSO_PRIMARY_URL", ""),
			AuthToken:  getOptional("TURSO_AUTH_TOKEN", ""),
		},
		ProjectID:    getOptional("GCP_PROJECT", ""),
		DashboardURL: getOptional("DASHBOARD_URL", ""),

		AdminAPIToken: getOptional("ADMIN_API_TOKEN", ""),
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	limit, err := strconv.Atoi(getOptional("HISTORY_LIMIT", strconv.Itoa(defaultHistoryLimit)))
	if err != nil || limit <= 0 {
		return Config{}, fmt.Errorf("HISTORY_LIMIT must be a positive integer")
	}
	cfg.Clan.HistoryLimit = limit

	if raw := getOptional("TELEGRAM_ANNOUNCE_CHAT_ID", ""); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("TELEGRAM_ANNOUNCE_CHAT_ID: %w", err)
		}
		cfg.Telegram.AnnounceChatID = id
	}

	ids, err := parseIDs(getOptional("TELEGRAM_ADMIN_IDS", ""))
	if err != nil {
		return Config{}, fmt.Errorf("TELEGRAM_ADMIN_IDS: %w", err)
	}
	cfg.Telegram.AdminIDs = ids

	return cfg, nil
}

// parseIDs parses a comma separated list of Telegram user IDs.
func parseIDs(raw string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
