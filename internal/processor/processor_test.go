package processor

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/mauv0809/courtside/internal/game"
	"github.com/mauv0809/courtside/internal/gamecsv"
	"github.com/mauv0809/courtside/internal/library"
	"github.com/mauv0809/courtside/internal/metrics"
	"github.com/mauv0809/courtside/internal/notifier"
	"github.com/mauv0809/courtside/internal/pubsub"
	"github.com/mauv0809/courtside/internal/remote"
	"github.com/mauv0809/courtside/internal/session"
	"github.com/mauv0809/courtside/internal/settings"
	"github.com/mauv0809/courtside/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 3, 9, 18, 0, 0, 0, time.UTC)

type mockExporter struct {
	mu    sync.Mutex
	urls  []string
	calls []game.Record
	err   error
}

func (m *mockExporter) Send(ctx context.Context, url string, rec game.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urls = append(m.urls, url)
	m.calls = append(m.calls, rec)
	return m.err
}

type fixture struct {
	proc     *Processor
	sess     *session.Session
	store    *storage.MockStore
	local    library.LocalCache
	lib      *library.Library
	remote   *remote.MockStore
	webhook  *mockExporter
	notifier *notifier.Mock
	pubsub   *pubsub.MockPubSubClient
	metrics  *metrics.Mock
}

func setup(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		store:    storage.NewMock(),
		remote:   remote.NewMock(),
		webhook:  &mockExporter{},
		notifier: notifier.NewMock(),
		pubsub:   pubsub.NewMock(),
		metrics:  metrics.NewMock(),
	}
	f.sess = session.New(f.store, f.metrics, session.Options{})
	require.NoError(t, f.sess.Restore())
	f.local = library.NewLocalCache(f.store)
	f.lib = library.New(f.local, f.metrics)
	f.proc = New(Deps{
		Session:   f.sess,
		Local:     f.local,
		Library:   f.lib,
		Settings:  f.store,
		Metrics:   f.metrics,
		Remote:    f.remote,
		Webhook:   f.webhook,
		Notifier:  f.notifier,
		PubSub:    f.pubsub,
		ExportURL: "https://default.example/hook",
		Now:       func() time.Time { return fixedNow },
	})
	return f
}

func (f *fixture) playGame(t *testing.T, away string) {
	t.Helper()
	_, err := f.sess.Dispatch(game.Action{Kind: game.ActionMake, Category: game.CategoryFG})
	require.NoError(t, err)
	require.NoError(t, f.sess.SetDetails(game.Details{HomeTeam: "Hawks", AwayTeam: away, HomeScore: "50", AwayScore: "48"}))
}

func TestSubmit(t *testing.T) {
	t.Run("saves locally, clears the game and runs every stage", func(t *testing.T) {
		f := setup(t)
		require.NoError(t, settings.Save(f.store, settings.Settings{PlayerName: "Sam", ExportURL: "https://user.example/hook"}))
		f.playGame(t, "Owls")

		rec, err := f.proc.Submit(context.Background())
		require.NoError(t, err)
		f.proc.Wait()

		assert.Equal(t, "remote-1", rec.ID)
		assert.Equal(t, "Sam", rec.Player)
		assert.Equal(t, game.OutcomeWin, rec.Outcome)
		assert.Equal(t, 2, rec.Stats.Points)

		cached, err := f.local.List()
		require.NoError(t, err)
		require.Len(t, cached, 1)
		assert.Equal(t, "remote-1", cached[0].ID)

		v := f.sess.View()
		assert.Equal(t, session.SubmitSaved, v.Submit)
		assert.Equal(t, 0, v.Stats.Points)
		assert.False(t, f.store.Has(storage.KeySession))
		assert.Equal(t, []string{"Owls"}, settings.Load(f.store).SavedOpponents)
		assert.Len(t, f.lib.List(), 1)

		require.Len(t, f.remote.AppendCalls, 1)
		assert.Equal(t, "remote-1", f.remote.AppendCalls[0].ID)
		assert.Equal(t, []string{"https://user.example/hook"}, f.webhook.urls)
		assert.Len(t, f.notifier.Calls(), 1)
		calls := f.pubsub.Calls()
		require.Len(t, calls, 1)
		assert.Equal(t, pubsub.EventGameSaved, calls[0].Topic)
		assert.Equal(t, 1, f.metrics.GamesSaved())
	})

	t.Run("missing opponent is rejected before anything changes", func(t *testing.T) {
		f := setup(t)
		f.playGame(t, "")
		before := f.sess.View()

		_, err := f.proc.Submit(context.Background())
		f.proc.Wait()

		var verr *game.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, before, f.sess.View())
		cached, err := f.local.List()
		require.NoError(t, err)
		assert.Empty(t, cached)
		assert.Empty(t, f.remote.AppendCalls)
		assert.Empty(t, f.notifier.Calls())
	})

	t.Run("unreachable remote falls back to a local id", func(t *testing.T) {
		f := setup(t)
		f.remote.NewIDFunc = func(context.Context) (string, error) { return "", errors.New("offline") }
		f.remote.AppendFunc = func(context.Context, game.Record) error { return errors.New("offline") }
		f.playGame(t, "Owls")

		rec, err := f.proc.Submit(context.Background())
		require.NoError(t, err)
		f.proc.Wait()

		assert.Equal(t, "local_1710007200000", rec.ID)
		assert.Equal(t, 1, f.metrics.StageFailures(StageRemote))
		// Later stages still run.
		assert.Equal(t, []string{"https://default.example/hook"}, f.webhook.urls)
		assert.Len(t, f.pubsub.Calls(), 1)
		assert.Len(t, f.lib.List(), 1)
	})

	t.Run("failing exports do not affect the result", func(t *testing.T) {
		f := setup(t)
		f.webhook.err = errors.New("sheet down")
		f.notifier.NotifyGameSavedFunc = func(context.Context, game.Record) error { return errors.New("slack down") }
		f.playGame(t, "Owls")

		_, err := f.proc.Submit(context.Background())
		require.NoError(t, err)
		f.proc.Wait()

		assert.Equal(t, 1, f.metrics.StageFailures(StageWebhook))
		assert.Equal(t, 1, f.metrics.StageFailures(StageSlack))
		assert.Len(t, f.pubsub.Calls(), 1)
		assert.Equal(t, session.SubmitSaved, f.sess.View().Submit)
	})

	t.Run("local write failure keeps the game", func(t *testing.T) {
		f := setup(t)
		f.playGame(t, "Owls")
		f.store.PutFunc = func(key string, _ []byte) error {
			if key == storage.KeyGames {
				return errors.New("quota exceeded")
			}
			return nil
		}

		_, err := f.proc.Submit(context.Background())
		f.proc.Wait()

		assert.ErrorIs(t, err, session.ErrPersist)
		v := f.sess.View()
		assert.Equal(t, session.SubmitFailed, v.Submit)
		assert.Equal(t, 2, v.Stats.Points)
		assert.True(t, f.store.Has(storage.KeySession))
		assert.Empty(t, f.remote.AppendCalls)
		assert.Equal(t, 1, f.metrics.SaveFailures())
	})

	t.Run("stages outlive the request context", func(t *testing.T) {
		f := setup(t)
		f.playGame(t, "Owls")
		ctx, cancel := context.WithCancel(context.Background())
		var stageErr error
		f.pubsub.SendMessageFunc = func(ctx context.Context, _ pubsub.EventType, _ any) error {
			stageErr = ctx.Err()
			return nil
		}

		_, err := f.proc.Submit(ctx)
		require.NoError(t, err)
		cancel()
		f.proc.Wait()
		assert.NoError(t, stageErr)
	})
}

func TestDelete(t *testing.T) {
	f := setup(t)
	f.playGame(t, "Owls")
	rec, err := f.proc.Submit(context.Background())
	require.NoError(t, err)
	f.proc.Wait()

	require.NoError(t, f.proc.Delete(context.Background(), rec.ID))
	f.proc.Wait()

	cached, err := f.local.List()
	require.NoError(t, err)
	assert.Empty(t, cached)
	assert.Equal(t, []string{rec.ID}, f.remote.DeleteCalls)
	assert.Empty(t, f.remote.Records())

	calls := f.pubsub.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, pubsub.EventGameDeleted, calls[1].Topic)
	var event pubsub.GameDeleted
	require.NoError(t, f.pubsub.ProcessMessage(calls[1].Data, &event))
	assert.Equal(t, rec.ID, event.ID)

	assert.Error(t, f.proc.Delete(context.Background(), " "))
}

func TestImport(t *testing.T) {
	header := strings.Join(gamecsv.Header, ",")

	t.Run("imports locally and backfills remotely", func(t *testing.T) {
		f := setup(t)
		in := header + "\n" +
			"03-02-2024,Sam,Hawks,Owls,Win,50 - 48,12,1,2,3,0,0,0,0,5,9,0,1,2,2,1\n" +
			"03-03-2024,Sam,Hawks,Bears,Loss,40 - 42,8,0,0,0,0,0,0,0,4,7,0,0,0,0,0\n"

		records, err := f.proc.Import(context.Background(), strings.NewReader(in))
		require.NoError(t, err)
		f.proc.Wait()

		require.Len(t, records, 2)
		cached, err := f.local.List()
		require.NoError(t, err)
		assert.Len(t, cached, 2)
		assert.Empty(t, f.remote.AppendCalls)
		assert.Len(t, f.remote.BackfillCalls, 2)
		list := f.lib.List()
		require.Len(t, list, 2)
		assert.Equal(t, "Bears", list[0].AwayTeam)

		// The remote copies keep the game dates, so they still sort by them
		// once they win the merge.
		remoteList := f.remote.Records()
		require.Len(t, remoteList, 2)
		assert.Equal(t, "2024-03-03T00:00:00Z", remoteList[0].CreatedAt)
		assert.Equal(t, "2024-03-02T00:00:00Z", remoteList[1].CreatedAt)
		merged, err := f.lib.OnRemoteUpdate(remoteList)
		require.NoError(t, err)
		assert.Equal(t, "Bears", merged[0].AwayTeam)
		assert.Equal(t, "Owls", merged[1].AwayTeam)
	})

	t.Run("malformed file writes nothing", func(t *testing.T) {
		f := setup(t)
		in := header + "\n03-02-2024,Sam,Hawks,Owls,Win,50 - 48,x,1,2,3,0,0,0,0,5,9,0,1,2,2,1\n"

		_, err := f.proc.Import(context.Background(), strings.NewReader(in))
		var ferr *gamecsv.FormatError
		require.ErrorAs(t, err, &ferr)
		f.proc.Wait()

		assert.False(t, f.store.Has(storage.KeyGames))
		assert.Empty(t, f.remote.BackfillCalls)
	})
}
