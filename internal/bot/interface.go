package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mauv0809/riverwatch/internal/clan"
	"github.com/mauv0809/riverwatch/internal/war"
)

// BotAPI is the part of tgbotapi.BotAPI the bot relies on.
type BotAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Scanner reconciles the live week.
type Scanner interface {
	Reconcile(ctx context.Context, dryRun bool) (*war.ReconcileResult, error)
}

// HistoryImporter reloads settled weeks from the race log.
type HistoryImporter interface {
	Import(ctx context.Context, refresh, dryRun bool) (*war.ImportResult, error)
}

// Reports builds the read-only views.
type Reports interface {
	Week(ctx context.Context) (*war.WeekReport, error)
	Today(ctx context.Context) (*war.TodayReport, error)
	History(ctx context.Context) (*war.HistoryReport, error)
}

// AdminStore holds the admin-owned player fields.
type AdminStore interface {
	SetStatus(ctx context.Context, tag string, status clan.Status) (bool, error)
	SetNote(ctx context.Context, tag, note string) (bool, error)
}
