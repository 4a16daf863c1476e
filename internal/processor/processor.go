package processor

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/game"
	"github.com/mauv0809/courtside/internal/gamecsv"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/session"
	"github.com/mauv0809/courtside/internal/settings"
)

// New creates a new Processor.
func New(deps Deps) *Processor {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Processor{deps: deps}
}

// Submit saves the live game. It returns once the game is in the local
// cache; remote sync and exports continue in the background. A validation
// error leaves the session untouched. A local write failure marks the
// submission failed, keeps the game, and wraps session.ErrPersist.
func (p *Processor) Submit(ctx context.Context) (game.Record, error) {
	start := p.deps.Now()
	details, stats, err := p.deps.Session.BeginSubmit()
	if err != nil {
		return game.Record{}, err
	}

	prefs := settings.Load(p.deps.Settings)
	rec := game.NewRecord(p.newID(ctx), details, stats, prefs.PlayerName, start)
	log.Info("Submitting game", "id", rec.ID, "opponent", rec.AwayTeam, "score", rec.FinalScore)

	if err := p.deps.Local.Upsert(rec); err != nil {
		p.deps.Metrics.IncSaveFailures()
		err = fmt.Errorf("%w: %v", session.ErrPersist, err)
		p.deps.Session.FailSubmit(err)
		log.Error("Failed to save game locally", "id", rec.ID, "error", err)
		return game.Record{}, err
	}
	p.deps.Metrics.IncGamesSaved()
	p.count(metrics.KeyGamesSaved)

	if err := p.deps.Session.CompleteSubmit(); err != nil {
		log.Warn("Saved game but could not clear the snapshot", "id", rec.ID, "error", err)
	}
	if err := settings.AddOpponent(p.deps.Settings, rec.AwayTeam); err != nil {
		log.Warn("Failed to remember opponent", "opponent", rec.AwayTeam, "error", err)
	}
	p.refresh()
	p.deps.Metrics.ObserveSaveDuration(p.deps.Now().Sub(start).Seconds())

	p.runStages(ctx, rec.ID, p.savedStages(rec, prefs.ExportURL))
	return rec, nil
}

// Delete removes a game locally, then from the remote store in the
// background.
func (p *Processor) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("game id is required")
	}
	if err := p.deps.Local.Delete(id); err != nil {
		log.Error("Failed to delete game locally", "id", id, "error", err)
		return fmt.Errorf("%w: %v", session.ErrPersist, err)
	}
	p.count(metrics.KeyGamesDeleted)
	p.refresh()

	var stages []stage
	if p.deps.Remote != nil {
		stages = append(stages, stage{StageRemote, func(ctx context.Context) error {
			return p.deps.Remote.Delete(ctx, id)
		}})
	}
	if p.deps.PubSub != nil {
		event := pubsub.GameDeleted{ID: id, DeletedAt: p.deps.Now().UTC().Format(time.RFC3339)}
		stages = append(stages, stage{StagePubSub, func(ctx context.Context) error {
			return p.deps.PubSub.SendMessage(ctx, pubsub.EventGameDeleted, event)
		}})
	}
	p.runStages(ctx, id, stages)
	return nil
}

// Import adds every game in a CSV file. A malformed file is rejected
// before anything is written.
func (p *Processor) Import(ctx context.Context, r io.Reader) ([]game.Record, error) {
	records, err := gamecsv.Import(r, p.deps.Now())
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return records, nil
	}
	if err := p.deps.Local.UpsertMany(records); err != nil {
		log.Error("Failed to save imported games", "count", len(records), "error", err)
		return nil, fmt.Errorf("%w: %v", session.ErrPersist, err)
	}
	for range records {
		p.count(metrics.KeyGamesImported)
	}
	p.refresh()
	log.Info("Imported games", "count", len(records))

	if p.deps.Remote != nil {
		stages := make([]stage, 0, len(records))
		for _, rec := range records {
			stages = append(stages, stage{StageRemote, func(ctx context.Context) error {
				return p.deps.Remote.Backfill(ctx, rec)
			}})
		}
		p.runStages(ctx, "import", stages)
	}
	return records, nil
}

// Wait blocks until all background stages have finished.
func (p *Processor) Wait() {
	p.wg.Wait()
}

func (p *Processor) savedStages(rec game.Record, userURL string) []stage {
	var stages []stage
	if p.deps.Remote != nil {
		stages = append(stages, stage{StageRemote, func(ctx context.Context) error {
			return p.deps.Remote.Append(ctx, rec)
		}})
	}
	url := strings.TrimSpace(userURL)
	if url == "" {
		url = p.deps.ExportURL
	}
	if p.deps.Webhook != nil && url != "" {
		stages = append(stages, stage{StageWebhook, func(ctx context.Context) error {
			return p.deps.Webhook.Send(ctx, url, rec)
		}})
	}
	if p.deps.Notifier != nil {
		stages = append(stages, stage{StageSlack, func(ctx context.Context) error {
			return p.deps.Notifier.NotifyGameSaved(ctx, rec)
		}})
	}
	if p.deps.PubSub != nil {
		stages = append(stages, stage{StagePubSub, func(ctx context.Context) error {
			return p.deps.PubSub.SendMessage(ctx, pubsub.EventGameSaved, rec)
		}})
	}
	return stages
}

// runStages runs stages in order on one goroutine. Each failure is logged
// and counted; later stages still run. The caller's cancellation does not
// stop them.
func (p *Processor) runStages(ctx context.Context, id string, stages []stage) {
	if len(stages) == 0 {
		return
	}
	ctx = context.WithoutCancel(ctx)
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		for _, s := range stages {
			if err := s.run(ctx); err != nil {
				p.deps.Metrics.IncStageFailed(s.name)
				log.Error("Background stage failed", "stage", s.name, "id", id, "error", err)
				continue
			}
			log.Debug("Background stage finished", "stage", s.name, "id", id)
		}
	}()
}

// newID pre-allocates a remote id so the local and remote copies share it.
func (p *Processor) newID(ctx context.Context) string {
	if p.deps.Remote != nil {
		id, err := p.deps.Remote.NewID(ctx)
		if err == nil {
			return id
		}
		log.Warn("Remote store unavailable, using a local id", "error", err)
	}
	return fmt.Sprintf("local_%d", p.deps.Now().UnixMilli())
}

func (p *Processor) refresh() {
	if _, err := p.deps.Library.Refresh(); err != nil {
		log.Error("Failed to refresh game list", "error", err)
	}
}

func (p *Processor) count(key string) {
	if p.deps.Counters != nil {
		p.deps.Counters.Increment(key)
	}
}
