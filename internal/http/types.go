package http

import (
	"net/http"

	"github.com/mauv0809/courtside/internal/config"
	"github.com/mauv0809/courtside/internal/game"
	"github.com/mauv0809/courtside/internal/library"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/processor"
	"github.com/mauv0809/courtside/internal/session"
	"github.com/mauv0809/courtside/internal/storage"
)

type Server struct {
	Session        *session.Session
	Library        *library.Library
	Processor      *processor.Processor
	Settings       storage.Store
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Counters       metrics.MetricsStore
	Cfg            config.Config
	Router         *http.ServeMux
}

// actionResponse is returned by POST /game/actions. NeedsLocation is set
// when the action was not applied and must be sent again with a location.
type actionResponse struct {
	Result        game.ResultKind       `json:"result"`
	Changed       bool                  `json:"changed"`
	NeedsLocation *game.LocationRequest `json:"needsLocation,omitempty"`
	Game          session.View          `json:"game"`
}

type submitResponse struct {
	Record game.Record  `json:"record"`
	Game   session.View `json:"game"`
}

type importResponse struct {
	Imported int           `json:"imported"`
	DryRun   bool          `json:"dryRun,omitempty"`
	Games    []game.Record `json:"games"`
}

type healthResponse struct {
	Status   string         `json:"status"`
	Remote   bool           `json:"remote"`
	Counters map[string]int `json:"counters,omitempty"`
}

type errorResponse struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
	Row     int      `json:"row,omitempty"`
	Column  string   `json:"column,omitempty"`
}

type timerRequest struct {
	Op string `json:"op"`
}

type lengthRequest struct {
	Minutes int `json:"minutes"`
}

type toggleRequest struct {
	Enabled bool `json:"enabled"`
}

type dialogRequest struct {
	Dialog session.Dialog `json:"dialog"`
}
