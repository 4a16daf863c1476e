package http

import (
	"net/http"

	"github.com/mauv0809/courtside/internal/config"
	"github.com/mauv0809/courtside/internal/library"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/processor"
	"github.com/mauv0809/courtside/internal/session"
	"github.com/mauv0809/courtside/internal/storage"
)

func NewServer(sess *session.Session, lib *library.Library, proc *processor.Processor, settingsStore storage.Store, metricsSvc metrics.Metrics, metricsHandler http.Handler, counters metrics.MetricsStore, cfg config.Config) *Server {
	server := &Server{
		Session:        sess,
		Library:        lib,
		Processor:      proc,
		Settings:       settingsStore,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Counters:       counters,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), recoverMiddleware, paramsMiddleware))

	s.Router.Handle("GET /game", Chain(s.GameHandler(), recoverMiddleware, paramsMiddleware))
	s.Router.Handle("POST /game/actions", Chain(s.DispatchHandler(), recoverMiddleware, paramsMiddleware))
	s.Router.Handle("POST /game/undo", Chain(s.UndoHandler(), recoverMiddleware, paramsMiddleware))
	s.Router.Handle("POST /game/reset", Chain(s.ResetHandler(), recoverMiddleware, paramsMiddleware))
	s.Router.Handle("PUT /game/details", Chain(s.DetailsHandler(), recoverMiddleware, paramsMiddleware))
	s.Router.Handle("PUT /game/shot-tracking", Chain(s.ShotTrackingHandler(), recoverMiddleware, paramsMiddleware))
	s.Router.Handle("POST /game/timer", Chain(s.TimerHandler(), recoverMiddleware, paramsMiddleware))
	s.Router.Handle("PUT /game/timer/length", Chain(s.PeriodLengthHandler(), recoverMiddleware, paramsMiddleware))
	s.Router.Handle("POST /game/dialog", Chain(s.OpenDialogHandler(), recoverMiddleware, paramsMiddleware))
	s.Router.Handle("DELETE /game/dialog", Chain(s.CloseDialogHandler(), recoverMiddleware, paramsMiddleware))
	s.Router.Handle("POST /game/submit", Chain(s.SubmitHandler(), recoverMiddleware, paramsMiddleware))
	s.Router.Handle("GET /game/shotchart.png", Chain(s.ShotChartHandler(), recoverMiddleware, paramsMiddleware))

	s.Router.Handle("GET /games", Chain(s.ListGamesHandler(), recoverMiddleware, paramsMiddleware))
	s.Router.Handle("POST /games/refresh", Chain(s.RefreshGamesHandler(), recoverMiddleware, paramsMiddleware))
	s.Router.Handle("DELETE /games/{id}", Chain(s.DeleteGameHandler(), recoverMiddleware, paramsMiddleware))
	s.Router.Handle("GET /games/export.csv", Chain(s.ExportCSVHandler(), recoverMiddleware, paramsMiddleware))
	s.Router.Handle("GET /games/template.csv", Chain(s.TemplateCSVHandler(), recoverMiddleware, paramsMiddleware))
	s.Router.Handle("POST /games/import", Chain(s.ImportCSVHandler(), recoverMiddleware, paramsMiddleware))

	s.Router.Handle("GET /settings", Chain(s.GetSettingsHandler(), recoverMiddleware, paramsMiddleware))
	s.Router.Handle("PUT /settings", Chain(s.PutSettingsHandler(), recoverMiddleware, paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
