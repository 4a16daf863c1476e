package processor

import (
	"context"
	"sync"
	"time"

	"github.com/mauv0809/courtside/internal/library"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/remote"
	"github.com/mauv0809/courtside/internal/storage"
)

// Stage names, also used as the metrics label.
const (
	StageRemote  = "remote"
	StageWebhook = "webhook"
	StageSlack   = "slack"
	StagePubSub  = "pubsub"
)

// Deps wires a Processor. Remote, Webhook, Notifier, PubSub and Counters
// are optional; a nil value skips that part of the pipeline.
type Deps struct {
	Session  Session
	Local    library.LocalCache
	Library  Library
	Settings storage.Store
	Metrics  metrics.Metrics

	Remote   remote.Store
	Webhook  Exporter
	Notifier notifier.Notifier
	PubSub   pubsub.PubSubClient
	Counters metrics.MetricsStore

	// ExportURL is used when the user has not set one.
	ExportURL string
	Now       func() time.Time
}

// Processor runs the save pipeline: a synchronous local write followed by
// background stages that never affect the reported result.
type Processor struct {
	deps Deps
	wg   sync.WaitGroup
}

// stage is one background side effect with its own error boundary.
type stage struct {
	name string
	run  func(ctx context.Context) error
}
