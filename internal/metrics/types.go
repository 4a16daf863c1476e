package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	ActionsDispatched  *prometheus.CounterVec
	GamesSaved         prometheus.Counter
	SaveFailures       prometheus.Counter
	SaveDuration       prometheus.Histogram
	StageFailures      *prometheus.CounterVec
	RemoteSyncErrors   prometheus.Counter
	AutoSaves          prometheus.Counter
	GamesListed        prometheus.Gauge
	StartupTimeSeconds prometheus.Gauge
}

// Lifetime counter keys.
const (
	KeyGamesSaved    = "games_saved"
	KeyGamesDeleted  = "games_deleted"
	KeyGamesImported = "games_imported"
)
