package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/mauv0809/riverwatch/internal/bot"
	"github.com/mauv0809/riverwatch/internal/clan"
	"github.com/mauv0809/riverwatch/internal/config"
	"github.com/mauv0809/riverwatch/internal/database"
	server "github.com/mauv0809/riverwatch/internal/http"
	"github.com/mauv0809/riverwatch/internal/metrics"
	"github.com/mauv0809/riverwatch/internal/notifier"
	"github.com/mauv0809/riverwatch/internal/notifier/slack"
	"github.com/mauv0809/riverwatch/internal/notifier/telegram"
	"github.com/mauv0809/riverwatch/internal/pubsub"
	"github.com/mauv0809/riverwatch/internal/royale"
	"github.com/mauv0809/riverwatch/internal/war"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warn("Unknown log level, keeping default", "level", cfg.LogLevel)
	}

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	dbInitDuration := time.Since(startTime)
	log.Info("Database initialization time recorded", "duration_ms", dbInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	botAPI, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Fatalf("Failed to create Telegram bot: %s", err)
	}
	log.Info("Authorized on Telegram", "bot", botAPI.Self.UserName)

	clanStore := clan.New(db)
	usageStore := metrics.New(db)
	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	royaleClient := royale.NewClient(cfg.Clan.APIBaseURL, cfg.Clan.APIToken, cfg.Clan.Tag)
	pubsub := pubsub.New(cfg.ProjectID)
	defer pubsub.Close()

	var announcers notifier.Multi
	if cfg.Slack.Token != "" && cfg.Slack.ChannelID != "" {
		announcers = append(announcers, slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc))
	}
	if cfg.Telegram.AnnounceChatID != 0 {
		announcers = append(announcers, telegram.NewNotifier(botAPI, cfg.Telegram.AnnounceChatID, metricsSvc))
	}

	reconciler := war.NewReconciler(clanStore, royaleClient, metricsSvc, pubsub)
	importer := war.NewImporter(clanStore, royaleClient, metricsSvc, pubsub, cfg.Clan.Tag, cfg.Clan.HistoryLimit)
	reporter := war.NewReporter(clanStore, royaleClient)

	// Restore the settled weeks before serving anything. A failure here is not fatal.
	log.Info("Restoring race history on startup")
	log.Info("Startup history sync finished", "report", importer.SyncHistory(context.Background(), false))

	if cfg.AdminAPIToken == "" {
		log.Warn("ADMIN_API_TOKEN not set, the scan, import, trigger and players routes are disabled")
	}
	s := server.NewServer(
		clanStore,
		usageStore,
		metricsHandler,
		cfg,
		reconciler,
		importer,
		reporter,
		announcers,
		pubsub,
	)
	chatBot := bot.New(botAPI, bot.Services{
		Scanner:  reconciler,
		Importer: importer,
		Reports:  reporter,
		Admin:    clanStore,
	}, metricsSvc, usageStore, bot.Options{
		AdminIDs:     cfg.Telegram.AdminIDs,
		DashboardURL: cfg.DashboardURL,
	})

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	botCtx, stopBot := context.WithCancel(context.Background())
	botDone := make(chan struct{})
	go func() {
		defer close(botDone)
		if err := chatBot.Start(botCtx); err != nil {
			log.Error("Telegram bot stopped with error", "error", err)
		}
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Error("Server error", "error", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Stopping Telegram bot")
	stopBot()
	<-botDone

	log.Info("Server process shutting down")
}
