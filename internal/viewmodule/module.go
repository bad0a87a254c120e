// Package viewmodule is the entry point a host application uses to reach the
// Golf Journeys screens. It hands out the resource bundle that ships with the
// views and resolves view classes from their string identifiers.
//
// The identifier table is compiled in; there is no registration API, so
// lookups are safe from any number of goroutines without locking.
package viewmodule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/samber/do/v2"

	"github.com/nfrund/golfjourneys/internal/bundle"
	"github.com/nfrund/golfjourneys/internal/goals"
	"github.com/nfrund/golfjourneys/internal/pubsub"
	"github.com/nfrund/golfjourneys/internal/settings"
	"github.com/nfrund/golfjourneys/internal/views"
)

// ErrUnknownView is returned by Instantiate for identifiers with no view class
// and by New on a ViewClass that was not resolved from the table.
var ErrUnknownView = errors.New("unknown view identifier")

// Module is the view module facade.
type Module struct {
	bundle *bundle.Bundle
	watch  bool

	mu       sync.Mutex
	cancel   context.CancelFunc
	revision atomic.Uint64
}

// Option configures a Module.
type Option func(*Module)

// WithWatch makes Boot watch a disk bundle for changes.
func WithWatch(watch bool) Option {
	return func(m *Module) { m.watch = watch }
}

// New creates a view module serving resources from b. A nil bundle means the
// embedded default bundle.
func New(b *bundle.Bundle, opts ...Option) *Module {
	m := &Module{bundle: b}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Name returns the unique name for the module.
func (m *Module) Name() string {
	return "views"
}

// Bundle returns the module's resource bundle. It never returns nil.
func (m *Module) Bundle() *bundle.Bundle {
	if m == nil || m.bundle == nil {
		return bundle.Default()
	}
	return m.bundle
}

// ViewClass resolves an identifier to its view class. Unknown and empty
// identifiers report false.
func (m *Module) ViewClass(id string) (*ViewClass, bool) {
	return lookup(id)
}

// Identifiers returns every known view identifier in sorted order.
func (m *Module) Identifiers() []string {
	ids := sortedIdentifiers()
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

// Instantiate resolves id and constructs the view. Views without a localizer
// in deps use the module bundle in its default locale.
func (m *Module) Instantiate(id string, deps views.Dependencies) (views.View, error) {
	class, ok := m.ViewClass(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, id)
	}
	if deps.Localizer == nil {
		deps.Localizer = m.Bundle().Localizer()
	}
	return class.New(deps)
}

// Revision counts the goal, settings and bundle changes seen since Boot.
// Hosts compare it with an earlier value to know when snapshots are stale.
func (m *Module) Revision() uint64 {
	return m.revision.Load()
}

// Register provides the module itself to the injector.
func (m *Module) Register(i do.Injector) error {
	do.ProvideValue(i, m)
	return nil
}

// Boot starts the bundle watcher when enabled and follows change events when a
// subscriber is available.
func (m *Module) Boot(ctx context.Context, i do.Injector) error {
	ctx, cancel := context.WithCancel(ctx)
	m.mu.Lock()
	m.cancel = cancel
	m.mu.Unlock()

	if m.watch {
		err := m.Bundle().Watch(ctx, func(err error) {
			if err == nil {
				m.revision.Add(1)
			}
		})
		if err != nil {
			cancel()
			return fmt.Errorf("failed to watch view bundle: %w", err)
		}
	}

	sub, err := do.Invoke[pubsub.Subscriber](i)
	if err != nil {
		slog.Debug("No subscriber available, view revisions follow bundle reloads only", "error", err)
		return nil
	}

	subs := []func() error{
		func() error { return follow(ctx, sub, goals.GoalAdded, m) },
		func() error { return follow(ctx, sub, goals.GoalUpdated, m) },
		func() error { return follow(ctx, sub, goals.GoalDeleted, m) },
		func() error { return follow(ctx, sub, settings.Changed, m) },
	}
	for _, subscribe := range subs {
		if err := subscribe(); err != nil {
			cancel()
			return fmt.Errorf("failed to subscribe to view events: %w", err)
		}
	}

	slog.Info("View module booted", "bundle", m.Bundle().Identifier(), "source", m.Bundle().Source(), "views", len(classes))
	return nil
}

// Shutdown stops the watcher and event subscriptions started by Boot.
func (m *Module) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	return nil
}

func follow[T any](ctx context.Context, sub pubsub.Subscriber, event pubsub.Event[T], m *Module) error {
	return pubsub.Subscribe(ctx, sub, event, func(ctx context.Context, _ T) error {
		rev := m.revision.Add(1)
		slog.Debug("View data changed", "event", event.Name(), "revision", rev)
		return nil
	})
}
