package remote

import (
	"errors"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned by Replace for ids the store does not hold.
var ErrNotFound = errors.New("game not found")

// redisStore keeps one hash of documents and one sorted set ordering them
// by server creation time per user.
type redisStore struct {
	client *redis.Client
	userID string
}

func (s *redisStore) docsKey() string    { return "courtside:" + s.userID + ":games" }
func (s *redisStore) orderKey() string   { return "courtside:" + s.userID + ":order" }
func (s *redisStore) changedKey() string { return "courtside:" + s.userID + ":changed" }
