// Package pubsub carries change events between the goal book, the settings
// store and the view module.
package pubsub

import "context"

// Message is one event on the bus. Typed events carry a JSON payload.
type Message struct {
	Topic    string
	Payload  []byte
	Metadata map[string]string
}

// Handler processes a delivered message.
type Handler func(ctx context.Context, msg Message) error

// Publisher sends messages.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber delivers messages for a topic to a handler in the background
// until ctx is canceled or the subscriber is closed.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
