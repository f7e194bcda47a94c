package config

// Config holds all configuration for the application.
type Config struct {
	DBName       string
	Port         string
	LogLevel     string
	Clan         ClanConfig
	Telegram     TelegramConfig
	Slack        SlackConfig
	Turso        TursoConfig
	ProjectID    string
	DashboardURL string

	// AdminAPIToken guards the HTTP routes that write data. Empty disables them.
	AdminAPIToken string
}

// ClanConfig points the game API client at one clan.
type ClanConfig struct {
	Tag          string
	APIToken     string
	APIBaseURL   string
	HistoryLimit int
}

type TelegramConfig struct {
	Token          string
	AnnounceChatID int64
	AdminIDs       []int64
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
