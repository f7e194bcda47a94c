package bot

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mauv0809/riverwatch/internal/metrics"
	"github.com/mauv0809/riverwatch/internal/notifier/telegram"
)

// pollTimeout is the long-polling timeout in seconds.
const pollTimeout = 60

// New creates a new Bot.
func New(api BotAPI, services Services, metrics metrics.Metrics, usage metrics.MetricsStore, opts Options) *Bot {
	admins := make(map[int64]bool, len(opts.AdminIDs))
	for _, id := range opts.AdminIDs {
		admins[id] = true
	}
	return &Bot{
		api:      api,
		scanner:  services.Scanner,
		importer: services.Importer,
		reports:  services.Reports,
		admin:    services.Admin,
		metrics:  metrics,
		usage:    usage,
		admins:   admins,
		dashURL:  opts.DashboardURL,
	}
}

// Start polls Telegram for updates and handles them one at a time until ctx is cancelled.
func (b *Bot) Start(ctx context.Context) error {
	log.Info("Starting Telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		select {
		case <-ctx.Done():
			log.Info("Telegram bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				log.Info("Update channel closed, stopping bot")
				return nil
			}
			b.HandleUpdate(ctx, update)
		}
	}
}

// HandleUpdate dispatches a single update. Anything that is not a command is ignored.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || !msg.IsCommand() {
		return
	}

	command := strings.ToLower(msg.Command())
	if canonical, ok := aliases[command]; ok {
		command = canonical
	}
	var userID int64
	if msg.From != nil {
		userID = msg.From.ID
	}
	log.Info("Received command", "command", command, "chat_id", msg.Chat.ID, "user_id", userID)

	if adminCommands[command] && !b.isAdmin(userID) {
		log.Warn("Rejected admin command", "command", command, "user_id", userID)
		b.sendText(msg.Chat.ID, "⛔ This command is reserved to clan admins.")
		return
	}

	handled := b.handleCommand(ctx, command, msg)
	if !handled {
		log.Warn("Unknown command", "command", command)
		return
	}
	b.metrics.IncCommandsHandled(command)
	b.usage.Increment(metrics.KeyCommandPrefix + command)
}

func (b *Bot) isAdmin(userID int64) bool {
	if len(b.admins) == 0 {
		return true
	}
	return b.admins[userID]
}

// sendText sends a plain status line.
func (b *Bot) sendText(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

// sendHTML sends pre-formatted HTML chunks in order.
func (b *Bot) sendHTML(chatID int64, chunks []string) {
	for _, chunk := range chunks {
		b.send(telegram.NewHTMLMessage(chatID, chunk))
	}
}

func (b *Bot) send(c tgbotapi.Chattable) {
	if _, err := b.api.Send(c); err != nil {
		b.metrics.IncNotifFailed("telegram")
		log.Error("Failed to send Telegram reply", "error", err)
		return
	}
	b.metrics.IncNotifSent("telegram")
}
