package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
}

// EventType represents the type of event/message sent via pubsub. It is
// also the topic name.
type EventType string

const (
	EventGameSaved   EventType = "game-saved"
	EventGameDeleted EventType = "game-deleted"
)

// GameDeleted is the payload of EventGameDeleted.
type GameDeleted struct {
	ID        string `msgpack:"id"`
	DeletedAt string `msgpack:"deletedAt"`
}
