package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/storage"
)

// Load reads every stored setting over the defaults. Unreadable values and
// keys it does not know are skipped.
func Load(store storage.Store) Settings {
	s := Defaults()
	keys, err := store.Keys(storage.KeySettingsPrefix)
	if err != nil {
		log.Warn("Failed to list settings, using defaults", "error", err)
		return s
	}

	fields := s.stringFields()
	for _, full := range keys {
		key := strings.TrimPrefix(full, storage.KeySettingsPrefix)
		raw, err := store.Get(full)
		if err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				log.Warn("Failed to read setting", "key", key, "error", err)
			}
			continue
		}

		if key == keySavedOpponents {
			var opponents []string
			if err := json.Unmarshal(raw, &opponents); err != nil {
				log.Warn("Ignoring malformed saved opponents", "error", err)
			} else if opponents != nil {
				s.SavedOpponents = opponents
			}
			continue
		}

		dst, ok := fields[key]
		if !ok {
			log.Debug("Ignoring unknown setting", "key", key)
			continue
		}
		var v string
		if err := json.Unmarshal(raw, &v); err != nil {
			log.Warn("Ignoring malformed setting", "key", key, "error", err)
			continue
		}
		*dst = v
	}
	return s
}

// Save writes every setting under its own key.
func Save(store storage.Store, s Settings) error {
	for key, src := range s.stringFields() {
		if err := putJSON(store, key, *src); err != nil {
			return err
		}
	}
	if s.SavedOpponents == nil {
		s.SavedOpponents = []string{}
	}
	return putJSON(store, keySavedOpponents, s.SavedOpponents)
}

// AddOpponent remembers an opponent name for later games. Names are
// compared case-insensitively and blank names are ignored.
func AddOpponent(store storage.Store, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	return store.Update(storage.KeySettingsPrefix+keySavedOpponents, func(cur []byte) ([]byte, error) {
		var opponents []string
		if cur != nil {
			if err := json.Unmarshal(cur, &opponents); err != nil {
				log.Warn("Replacing malformed saved opponents", "error", err)
				opponents = nil
			}
		}
		if slices.ContainsFunc(opponents, func(o string) bool { return strings.EqualFold(o, name) }) {
			return cur, nil
		}
		opponents = append(opponents, name)
		slices.SortFunc(opponents, func(a, b string) int {
			return strings.Compare(strings.ToLower(a), strings.ToLower(b))
		})
		return json.Marshal(opponents)
	})
}

func (s *Settings) stringFields() map[string]*string {
	return map[string]*string{
		keyPlayerName:     &s.PlayerName,
		keyTeamName:       &s.TeamName,
		keyPrimaryColor:   &s.PrimaryColor,
		keySecondaryColor: &s.SecondaryColor,
		keyLogoData:       &s.LogoData,
		keyExportURL:      &s.ExportURL,
		keyAIKey:          &s.AIKey,
	}
}

func putJSON(store storage.Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if err := store.Put(storage.KeySettingsPrefix+key, raw); err != nil {
		return fmt.Errorf("failed to save setting %s: %w", key, err)
	}
	return nil
}
