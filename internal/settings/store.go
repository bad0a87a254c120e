// Package settings holds the player's profile and display preferences.
package settings

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/nfrund/golfjourneys/internal/domain"
	"github.com/nfrund/golfjourneys/internal/pubsub"
)

// Changed is published with the new settings after every successful change.
var Changed = pubsub.NewEvent[domain.UserSettings]("settings.changed", "The player's settings changed")

// Store is an in-memory, concurrency-safe settings holder.
type Store struct {
	mu        sync.RWMutex
	current   domain.UserSettings
	publisher pubsub.Publisher
}

// NewStore creates a Store starting from initial. publisher may be nil.
func NewStore(initial domain.UserSettings, publisher pubsub.Publisher) *Store {
	return &Store{current: initial, publisher: publisher}
}

// Get returns a copy of the current settings.
func (s *Store) Get() domain.UserSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetFirstName changes the player's name. Blank names are rejected.
func (s *Store) SetFirstName(ctx context.Context, name string) (domain.UserSettings, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.Get(), fmt.Errorf("%w: first name is required", domain.ErrInvalidInput)
	}
	return s.update(ctx, func(u *domain.UserSettings) { u.FirstName = name })
}

// SetDarkMode switches the appearance.
func (s *Store) SetDarkMode(ctx context.Context, dark bool) (domain.UserSettings, error) {
	return s.update(ctx, func(u *domain.UserSettings) { u.IsDarkMode = dark })
}

// CompleteOnboarding stores the player's name and marks onboarding done.
func (s *Store) CompleteOnboarding(ctx context.Context, name string) (domain.UserSettings, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return s.Get(), fmt.Errorf("%w: first name is required", domain.ErrInvalidInput)
	}
	return s.update(ctx, func(u *domain.UserSettings) {
		u.FirstName = name
		u.HasCompletedOnboarding = true
	})
}

func (s *Store) update(ctx context.Context, fn func(*domain.UserSettings)) (domain.UserSettings, error) {
	s.mu.Lock()
	fn(&s.current)
	updated := s.current
	s.mu.Unlock()

	if s.publisher != nil {
		if err := pubsub.Publish(ctx, s.publisher, Changed, updated); err != nil {
			slog.WarnContext(ctx, "Failed to publish settings event", "error", err)
		}
	}
	return updated, nil
}
