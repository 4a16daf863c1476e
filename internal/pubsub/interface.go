package pubsub

import "context"

// PubSubClient publishes msgpack-encoded game events.
type PubSubClient interface {
	SendMessage(ctx context.Context, topic EventType, data any) error
	ProcessMessage(data []byte, returnValue any) error
	Close() error
}
