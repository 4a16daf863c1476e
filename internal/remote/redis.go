package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/courtside/internal/game"
	"github.com/redis/go-redis/v9"
)

// NewRedis creates a Store scoped to userID on an existing Redis client.
func NewRedis(client *redis.Client, userID string) Store {
	return &redisStore{
		client: client,
		userID: userID,
	}
}

// NewID checks the store is reachable before handing out an id, so callers
// fall back to a local id when it is not.
func (s *redisStore) NewID(ctx context.Context) (string, error) {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return "", fmt.Errorf("remote store unreachable: %w", err)
	}
	return uuid.NewString(), nil
}

func (s *redisStore) Append(ctx context.Context, rec game.Record) error {
	now, err := s.client.Time(ctx).Result()
	if err != nil {
		return fmt.Errorf("reading server time: %w", err)
	}
	return s.create(ctx, rec, now)
}

func (s *redisStore) Backfill(ctx context.Context, rec game.Record) error {
	ms := rec.CreatedAtMillis()
	if ms <= 0 {
		return s.Append(ctx, rec)
	}
	return s.create(ctx, rec, time.UnixMilli(ms))
}

func (s *redisStore) create(ctx context.Context, rec game.Record, at time.Time) error {
	rec.CreatedAt = at.UTC().Format(time.RFC3339Nano)

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling game: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.docsKey(), rec.ID, data)
	pipe.ZAdd(ctx, s.orderKey(), redis.Z{Score: float64(at.UnixMilli()), Member: rec.ID})
	pipe.Publish(ctx, s.changedKey(), rec.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("appending game %s: %w", rec.ID, err)
	}
	log.Debug("Appended game to remote store", "id", rec.ID, "createdAt", rec.CreatedAt)
	return nil
}

// Replace overwrites a document but keeps its position in the ordering.
func (s *redisStore) Replace(ctx context.Context, rec game.Record) error {
	score, err := s.client.ZScore(ctx, s.orderKey(), rec.ID).Result()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("%w: %s", ErrNotFound, rec.ID)
	}
	if err != nil {
		return fmt.Errorf("looking up game %s: %w", rec.ID, err)
	}
	rec.CreatedAt = time.UnixMilli(int64(score)).UTC().Format(time.RFC3339Nano)

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshaling game: %w", err)
	}
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, s.docsKey(), rec.ID, data)
	pipe.Publish(ctx, s.changedKey(), rec.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("replacing game %s: %w", rec.ID, err)
	}
	return nil
}

func (s *redisStore) Delete(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.HDel(ctx, s.docsKey(), id)
	pipe.ZRem(ctx, s.orderKey(), id)
	pipe.Publish(ctx, s.changedKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("deleting game %s: %w", id, err)
	}
	return nil
}

func (s *redisStore) Subscribe(ctx context.Context) (<-chan []game.Record, <-chan error, error) {
	sub := s.client.Subscribe(ctx, s.changedKey())
	// Wait for the subscription to be confirmed so no change is missed
	// between the initial list and the first message.
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return nil, nil, fmt.Errorf("subscribing to %s: %w", s.changedKey(), err)
	}

	lists := make(chan []game.Record, 1)
	errs := make(chan error, 1)
	go func() {
		defer close(lists)
		defer close(errs)
		defer sub.Close()

		emit := func() bool {
			list, err := s.list(ctx)
			if err != nil {
				select {
				case errs <- err:
				default:
					log.Warn("Dropping remote store error", "error", err)
				}
				return ctx.Err() == nil
			}
			select {
			case lists <- list:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !emit() {
			return
		}
		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				log.Debug("Remote subscription closed", "user", s.userID)
				return
			case _, ok := <-messages:
				if !ok {
					return
				}
				if !emit() {
					return
				}
			}
		}
	}()
	return lists, errs, nil
}

// list reads every document newest-first. Documents that fail to decode
// are skipped.
func (s *redisStore) list(ctx context.Context) ([]game.Record, error) {
	ids, err := s.client.ZRevRange(ctx, s.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("listing games: %w", err)
	}
	if len(ids) == 0 {
		return []game.Record{}, nil
	}
	docs, err := s.client.HMGet(ctx, s.docsKey(), ids...).Result()
	if err != nil {
		return nil, fmt.Errorf("reading games: %w", err)
	}

	records := make([]game.Record, 0, len(docs))
	for i, doc := range docs {
		raw, ok := doc.(string)
		if !ok {
			continue
		}
		var rec game.Record
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			log.Warn("Skipping malformed remote game", "id", ids[i], "error", err)
			continue
		}
		records = append(records, rec)
	}
	return records, nil
}
