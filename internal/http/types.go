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

type Server struct {
	Store          clan.ClanStore
	Usage          metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Scanner        handlers.Scanner
	Importer       handlers.HistoryImporter
	Reports        handlers.Reports
	Notifier       notifier.Notifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}
