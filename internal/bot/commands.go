package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mauv0809/riverwatch/internal/clan"
	"github.com/mauv0809/riverwatch/internal/metrics"
	"github.com/mauv0809/riverwatch/internal/notifier/telegram"
	"github.com/mauv0809/riverwatch/internal/royale"
	"github.com/mauv0809/riverwatch/internal/war"
)

const helpText = `🤖 River race tracker

/scan - save the current week's decks and fame
/waroggi - attacks of the current battle day
/war - weekly progress of the current race
/storia - totals over the past weeks
/importa - wipe and reload the past weeks
/status #TAG 0-3 - set a player's status (0=⚪️ 1=🟢 2=🔴 3=⚫️)
/nota #TAG text - attach a note to a player
/dashboard - open the web dashboard`

const (
	statusUsage = "Usage: /status #TAG [0-3]\n0=⚪️, 1=🟢, 2=🔴, 3=⚫️"
	noteUsage   = "Usage: /nota #TAG text"
	apiError    = "❌ API error."
)

// handleCommand runs a canonical command. It reports false for unknown commands.
func (b *Bot) handleCommand(ctx context.Context, command string, msg *tgbotapi.Message) bool {
	chatID := msg.Chat.ID
	args := strings.Fields(msg.CommandArguments())

	switch command {
	case cmdScan:
		b.handleScan(ctx, chatID)
	case cmdToday:
		b.handleToday(ctx, chatID)
	case cmdWeek:
		b.handleWeek(ctx, chatID)
	case cmdHistory:
		b.handleHistory(ctx, chatID)
	case cmdImport:
		b.handleImport(ctx, chatID)
	case cmdStatus:
		b.handleStatus(ctx, chatID, args)
	case cmdNote:
		b.handleNote(ctx, chatID, args)
	case cmdDashboard:
		b.handleDashboard(chatID)
	case cmdStart, cmdHelp:
		b.sendText(chatID, helpText)
	default:
		return false
	}
	return true
}

func (b *Bot) handleScan(ctx context.Context, chatID int64) {
	b.sendText(chatID, "🔄 Scanning and saving war data...")
	result, err := b.scanner.Reconcile(ctx, false)
	if err != nil {
		log.Error("Scan failed", "error", err)
		if errors.Is(err, war.ErrFetchFailed) {
			b.sendText(chatID, "❌ API error: unable to download the data.")
			return
		}
		b.sendText(chatID, fmt.Sprintf("❌ Scan failed: %v", err))
		return
	}
	metrics.RecordScan(b.usage, result.Inserted, result.Updated)
	b.sendHTML(chatID, []string{telegram.FormatScanSummary(result)})
}

func (b *Bot) handleToday(ctx context.Context, chatID int64) {
	report, err := b.reports.Today(ctx)
	if err != nil {
		log.Error("Failed to build today report", "error", err)
		b.sendText(chatID, apiError)
		return
	}
	b.sendHTML(chatID, telegram.FormatToday(report))
}

func (b *Bot) handleWeek(ctx context.Context, chatID int64) {
	report, err := b.reports.Week(ctx)
	if err != nil {
		log.Error("Failed to build week report", "error", err)
		b.sendText(chatID, apiError)
		return
	}
	b.sendHTML(chatID, telegram.FormatWeek(report))
}

func (b *Bot) handleHistory(ctx context.Context, chatID int64) {
	report, err := b.reports.History(ctx)
	if err != nil {
		log.Error("Failed to build history report", "error", err)
		if errors.Is(err, war.ErrFetchFailed) {
			b.sendText(chatID, "❌ API error: unable to fetch the current members.")
			return
		}
		b.sendText(chatID, fmt.Sprintf("❌ DB error: %v", err))
		return
	}
	b.sendHTML(chatID, telegram.FormatHistory(report))
}

func (b *Bot) handleImport(ctx context.Context, chatID int64) {
	b.sendText(chatID, "⏳ Clearing and reloading the history...")
	result, err := b.importer.Import(ctx, true, false)
	status := war.ImportStatus(result, err)
	if err != nil {
		log.Error("Import failed", "error", err)
		b.sendText(chatID, status)
		return
	}
	metrics.RecordImport(b.usage, result.Rows)
	b.sendHTML(chatID, []string{telegram.FormatImportSummary(result, status)})
}

func (b *Bot) handleStatus(ctx context.Context, chatID int64, args []string) {
	if len(args) < 2 {
		b.sendText(chatID, statusUsage)
		return
	}
	tag := royale.NormalizeTag(args[0])
	value, err := strconv.Atoi(args[1])
	if err != nil || !clan.Status(value).Valid() {
		b.sendText(chatID, "❌ Status must be a number (0-3).")
		return
	}

	found, err := b.admin.SetStatus(ctx, tag, clan.Status(value))
	switch {
	case err != nil:
		log.Error("Failed to set status", "tag", tag, "error", err)
		b.sendText(chatID, fmt.Sprintf("❌ DB error: %v", err))
	case !found:
		b.sendText(chatID, fmt.Sprintf("⚠️ Tag %s not found in the database.\nMake sure the player has been scanned.", tag))
	default:
		log.Info("Status updated", "tag", tag, "status", value)
		b.sendText(chatID, fmt.Sprintf("✅ Status for %s set to %s", tag, clan.Status(value).Icon()))
	}
}

func (b *Bot) handleNote(ctx context.Context, chatID int64, args []string) {
	if len(args) < 2 {
		b.sendText(chatID, noteUsage)
		return
	}
	tag := royale.NormalizeTag(args[0])
	note := strings.Join(args[1:], " ")

	found, err := b.admin.SetNote(ctx, tag, note)
	switch {
	case err != nil:
		log.Error("Failed to set note", "tag", tag, "error", err)
		b.sendText(chatID, fmt.Sprintf("❌ DB error: %v", err))
	case !found:
		b.sendText(chatID, fmt.Sprintf("⚠️ Tag %s not found in the database.", tag))
	default:
		b.sendText(chatID, fmt.Sprintf("✅ Note saved for %s", tag))
	}
}

func (b *Bot) handleDashboard(chatID int64) {
	if b.dashURL == "" {
		b.sendText(chatID, "⚠️ The dashboard URL is not configured.")
		return
	}
	msg := tgbotapi.NewMessage(chatID, "Tap below to open the dashboard:")
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(tgbotapi.NewInlineKeyboardButtonURL("📱 Open Dashboard", b.dashURL)),
	)
	b.send(msg)
}
