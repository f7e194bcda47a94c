package http

import (
	"net/http"

	"github.com/mauv0809/riverwatch/internal/clan"
	"github.com/mauv0809/riverwatch/internal/config"
	"github.com/mauv0809/riverwatch/internal/http/handlers"
	"github.com/mauv0809/riverwatch/internal/metrics"
	"github.com/mauv0809/riverwatch/internal/notifier"
	"github.com/mauv0809/riverwatch/internal/pubsub"
)

func NewServer(store clan.ClanStore, usage metrics.MetricsStore, metricsHandler http.Handler, cfg config.Config, scanner handlers.Scanner, importer handlers.HistoryImporter, reports handlers.Reports, notifier notifier.Notifier, pubsub pubsub.PubSubClient) *Server {
	server := &Server{
		Store:          store,
		Usage:          usage,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Scanner:        scanner,
		Importer:       importer,
		Reports:        reports,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsub,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// Routes that write data or expose admin notes also need the admin token.
	admin := authMiddleware(s.Cfg.AdminAPIToken)
	post := methodMiddleware(http.MethodPost)

	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("/health", Chain(handlers.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("/", Chain(handlers.DashboardHandler(s.Cfg.Clan.Tag), paramsMiddleware))
	s.Router.Handle("/api/week", Chain(handlers.WeekHandler(s.Reports), paramsMiddleware))
	s.Router.Handle("/api/today", Chain(handlers.TodayHandler(s.Reports), paramsMiddleware))
	s.Router.Handle("/api/history", Chain(handlers.HistoryHandler(s.Reports), paramsMiddleware))
	s.Router.Handle("/api/usage", Chain(handlers.UsageHandler(s.Usage), paramsMiddleware))
	s.Router.Handle("/api/players", Chain(handlers.ListPlayersHandler(s.Store), paramsMiddleware, admin))
	s.Router.Handle("/scan", Chain(handlers.ScanHandler(s.Scanner, s.Notifier, s.Usage), paramsMiddleware, post, admin))
	s.Router.Handle("/import", Chain(handlers.ImportHandler(s.Importer, s.Notifier, s.Usage), paramsMiddleware, post, admin))
	s.Router.Handle("/pubsub/trigger", Chain(handlers.TriggerHandler(s.Scanner, s.Importer, s.Notifier, s.Usage, s.pubsub), paramsMiddleware, post, admin))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
