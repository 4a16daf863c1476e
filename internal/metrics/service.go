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
		ActionsDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "courtside_actions_dispatched_total",
			Help: "The total number of stat actions applied to the live game, by kind.",
		}, []string{"kind"}),
		GamesSaved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_games_saved_total",
			Help: "The total number of games committed to the local cache.",
		}),
		SaveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_save_failures_total",
			Help: "The total number of submissions that failed to write locally.",
		}),
		SaveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "courtside_save_duration_seconds",
			Help:    "The duration of the synchronous part of a submission.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		StageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "courtside_stage_failures_total",
			Help: "The total number of background save stages that failed, by stage.",
		}, []string{"stage"}),
		RemoteSyncErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_remote_sync_errors_total",
			Help: "The total number of remote store subscription errors.",
		}),
		AutoSaves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_autosaves_total",
			Help: "The total number of in-progress game snapshots written.",
		}),
		GamesListed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "courtside_games_listed",
			Help: "The number of games in the reconciled history.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "courtside_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.ActionsDispatched,
		s.GamesSaved,
		s.SaveFailures,
		s.SaveDuration,
		s.StageFailures,
		s.RemoteSyncErrors,
		s.AutoSaves,
		s.GamesListed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncActionsDispatched(kind string) {
	s.ActionsDispatched.WithLabelValues(kind).Inc()
}

func (s *Service) IncGamesSaved() {
	s.GamesSaved.Inc()
}

func (s *Service) IncSaveFailures() {
	s.SaveFailures.Inc()
}

func (s *Service) ObserveSaveDuration(duration float64) {
	s.SaveDuration.Observe(duration)
}

func (s *Service) IncStageFailed(stage string) {
	s.StageFailures.WithLabelValues(stage).Inc()
}

func (s *Service) IncRemoteSyncErrors() {
	s.RemoteSyncErrors.Inc()
}

func (s *Service) IncAutoSaves() {
	s.AutoSaves.Inc()
}

func (s *Service) SetGamesListed(count int) {
	s.GamesListed.Set(float64(count))
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
