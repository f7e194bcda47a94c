package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		ScansRun: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "riverwatch_scans_total",
			Help: "The total number of current-week reconciliations.",
		}),
		ImportsRun: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "riverwatch_imports_total",
			Help: "The total number of historical imports.",
		}),
		APIFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "riverwatch_api_failures_total",
			Help: "The total number of failed Clash Royale API fetches.",
		}),
		ScanDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "riverwatch_scan_duration_seconds",
			Help:    "The duration of a full reconciliation run.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		CounterWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "riverwatch_counter_writes_total",
			Help: "The total number of weekly counter rows written, by outcome.",
		}, []string{"outcome"}),
		CommandsHandled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "riverwatch_commands_handled_total",
			Help: "The total number of chat commands handled.",
		}, []string{"command"}),
		NotifSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "riverwatch_notifications_sent_total",
			Help: "The total number of notifications successfully sent.",
		}, []string{"channel"}),
		NotifFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "riverwatch_notifications_failed_total",
			Help: "The total number of notifications that failed to send.",
		}, []string{"channel"}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "riverwatch_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.ScansRun,
		s.ImportsRun,
		s.APIFailures,
		s.ScanDuration,
		s.CounterWrites,
		s.CommandsHandled,
		s.NotifSent,
		s.NotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncScansRun() {
	s.ScansRun.Inc()
}

func (s *Service) IncImportsRun() {
	s.ImportsRun.Inc()
}

func (s *Service) IncAPIFailures() {
	s.APIFailures.Inc()
}

func (s *Service) ObserveScanDuration(duration float64) {
	s.ScanDuration.Observe(duration)
}

func (s *Service) AddCounterWrites(inserted, updated int) {
	s.CounterWrites.WithLabelValues("inserted").Add(float64(inserted))
	s.CounterWrites.WithLabelValues("updated").Add(float64(updated))
}

func (s *Service) IncCommandsHandled(command string) {
	s.CommandsHandled.WithLabelValues(command).Inc()
}

func (s *Service) IncNotifSent(channel string) {
	s.NotifSent.WithLabelValues(channel).Inc()
}

func (s *Service) IncNotifFailed(channel string) {
	s.NotifFailed.WithLabelValues(channel).Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
