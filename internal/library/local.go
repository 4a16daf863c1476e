package library

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/game"
	"github.com/mauv0809/courtside/internal/storage"
)

// NewLocalCache creates a LocalCache on the durable key-value store.
func NewLocalCache(store storage.Store) LocalCache {
	return &localCache{
		store: store,
	}
}

// List returns the cached games. A list that cannot be decoded reads as
// empty.
func (c *localCache) List() ([]game.Record, error) {
	raw, err := c.store.Get(storage.KeyGames)
	if errors.Is(err, storage.ErrNotFound) {
		return []game.Record{}, nil
	}
	if err != nil {
		return nil, err
	}
	records, err := decodeList(raw)
	if err != nil {
		log.Error("Local game list is unreadable, showing it as empty", "error", err)
		return []game.Record{}, nil
	}
	return records, nil
}

func (c *localCache) Upsert(rec game.Record) error {
	return c.UpsertMany([]game.Record{rec})
}

func (c *localCache) UpsertMany(recs []game.Record) error {
	for _, rec := range recs {
		if rec.ID == "" {
			return fmt.Errorf("cannot cache a game without an id")
		}
	}
	return c.store.Update(storage.KeyGames, func(cur []byte) ([]byte, error) {
		records, err := decodeList(cur)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptCache, err)
		}
		for _, rec := range recs {
			records = upsert(records, rec)
		}
		log.Debug("Writing local game list", "count", len(records))
		return json.Marshal(records)
	})
}

func (c *localCache) Delete(id string) error {
	return c.store.Update(storage.KeyGames, func(cur []byte) ([]byte, error) {
		records, err := decodeList(cur)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorruptCache, err)
		}
		kept := records[:0]
		for _, r := range records {
			if r.ID != id {
				kept = append(kept, r)
			}
		}
		return json.Marshal(kept)
	})
}

func upsert(records []game.Record, rec game.Record) []game.Record {
	for i := range records {
		if records[i].ID == rec.ID {
			records[i] = rec
			return records
		}
	}
	return append(records, rec)
}

func decodeList(raw []byte) ([]game.Record, error) {
	if len(raw) == 0 {
		return []game.Record{}, nil
	}
	var records []game.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []game.Record{}
	}
	return records, nil
}
