package metrics

// Metrics defines the interface for collecting application metrics.
type Metrics interface {
	IncActionsDispatched(kind string)
	IncGamesSaved()
	IncSaveFailures()
	ObserveSaveDuration(duration float64)
	IncStageFailed(stage string)
	IncRemoteSyncErrors()
	IncAutoSaves()
	SetGamesListed(count int)
	SetStartupTime(duration float64)
}

// MetricsStore keeps lifetime counters that survive restarts.
type MetricsStore interface {
	Increment(key string)
	GetAll() (map[string]int, error)
}
