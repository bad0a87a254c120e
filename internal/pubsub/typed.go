package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// Event[T] wraps a topic name and provides type-safe publishing and subscribing.
type Event[T any] struct {
	topicName   string
	description string
}

// EventInfo describes a declared event for listings.
type EventInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Module      string `json:"module"`
}

var (
	catalogMu sync.RWMutex
	catalog   = map[string]EventInfo{}
)

// NewEvent creates a typed event and records it in the event catalog.
// Events are declared at package level; declaring the same name twice is a
// programming error and panics.
func NewEvent[T any](name string, description string) Event[T] {
	catalogMu.Lock()
	defer catalogMu.Unlock()

	if _, exists := catalog[name]; exists {
		panic(fmt.Sprintf("pubsub: event already declared: %s", name))
	}

	// Module is the first dotted segment, e.g. "goals.goal.added" -> "goals".
	module := name
	for i, ch := range name {
		if ch == '.' {
			module = name[:i]
			break
		}
	}

	catalog[name] = EventInfo{Name: name, Description: description, Module: module}

	return Event[T]{topicName: name, description: description}
}

// Name returns the topic name.
func (e Event[T]) Name() string {
	return e.topicName
}

// Description returns the human readable description given at declaration.
func (e Event[T]) Description() string {
	return e.description
}

// Events returns every declared event sorted by name.
func Events() []EventInfo {
	catalogMu.RLock()
	defer catalogMu.RUnlock()

	out := make([]EventInfo, 0, len(catalog))
	for _, info := range catalog {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Publish sends a typed event. The compiler ensures 'payload' matches 'T'.
func Publish[T any](ctx context.Context, p Publisher, event Event[T], payload T) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", event.Name(), err)
	}

	return p.Publish(ctx, Message{
		Topic:   event.Name(),
		Payload: data,
	})
}

// Subscribe registers a typed handler for an event. Payloads that fail to
// decode are reported as handler errors.
func Subscribe[T any](ctx context.Context, s Subscriber, event Event[T], handler func(ctx context.Context, payload T) error) error {
	return s.Subscribe(ctx, event.Name(), func(ctx context.Context, msg Message) error {
		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("unmarshal %s payload: %w", event.Name(), err)
		}
		return handler(ctx, payload)
	})
}
