package bot

import (
	"github.com/mauv0809/riverwatch/internal/metrics"
)

// Bot answers clan commands received over Telegram long polling.
type Bot struct {
	api      BotAPI
	scanner  Scanner
	importer HistoryImporter
	reports  Reports
	admin    AdminStore
	metrics  metrics.Metrics
	usage    metrics.MetricsStore
	admins   map[int64]bool
	dashURL  string
}

// Options holds the optional behaviour of the bot.
type Options struct {
	// AdminIDs restricts the write commands to these Telegram user IDs. Empty means everyone.
	AdminIDs     []int64
	DashboardURL string
}

// Services groups the domain services the bot dispatches to.
type Services struct {
	Scanner  Scanner
	Importer HistoryImporter
	Reports  Reports
	Admin    AdminStore
}

const (
	cmdScan      = "scan"
	cmdToday     = "waroggi"
	cmdWeek      = "war"
	cmdHistory   = "storia"
	cmdImport    = "importa"
	cmdStatus    = "status"
	cmdNote      = "nota"
	cmdDashboard = "dashboard"
	cmdStart     = "start"
	cmdHelp      = "help"
)

// aliases maps English command names onto the canonical ones.
var aliases = map[string]string{
	"today":   cmdToday,
	"history": cmdHistory,
	"import":  cmdImport,
	"note":    cmdNote,
}

var adminCommands = map[string]bool{
	cmdScan:   true,
	cmdImport: true,
	cmdStatus: true,
	cmdNote:   true,
}
