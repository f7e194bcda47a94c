package telegram

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mauv0809/riverwatch/internal/metrics"
	"github.com/mauv0809/riverwatch/internal/notifier"
	"github.com/mauv0809/riverwatch/internal/war"
)

const channelName = "telegram"

// Sender is the part of tgbotapi.BotAPI used to deliver messages.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

var _ notifier.Notifier = &Notifier{}

// Notifier announces background runs in a Telegram chat.
type Notifier struct {
	api     Sender
	chatID  int64
	metrics metrics.Metrics
}

// NewNotifier creates a new Notifier posting to chatID.
func NewNotifier(api Sender, chatID int64, metrics metrics.Metrics) *Notifier {
	return &Notifier{
		api:     api,
		chatID:  chatID,
		metrics: metrics,
	}
}

func (n *Notifier) sendMessage(ctx context.Context, text string, dryRun bool) error {
	if dryRun {
		log.Info("[Dry Run] Would send Telegram message", "chat_id", n.chatID, "message", text)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := n.api.Send(NewHTMLMessage(n.chatID, text)); err != nil {
		n.metrics.IncNotifFailed(channelName)
		log.Error("Failed to send Telegram message", "error", err, "chat_id", n.chatID)
		return fmt.Errorf("failed to send message: %w", err)
	}
	n.metrics.IncNotifSent(channelName)
	log.Info("Successfully sent Telegram message", "chat_id", n.chatID)
	return nil
}

func (n *Notifier) SendScanSummary(ctx context.Context, result *war.ReconcileResult, dryRun bool) error {
	return n.sendMessage(ctx, FormatScanSummary(result), dryRun)
}

func (n *Notifier) SendImportSummary(ctx context.Context, result *war.ImportResult, status string, dryRun bool) error {
	return n.sendMessage(ctx, FormatImportSummary(result, status), dryRun)
}
