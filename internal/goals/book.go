// Package goals keeps the player's goals in memory and answers the questions
// the goal screens ask about them.
package goals

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nfrund/golfjourneys/internal/domain"
	"github.com/nfrund/golfjourneys/internal/pubsub"
)

// Book is an in-memory, concurrency-safe collection of goals.
type Book struct {
	mu        sync.RWMutex
	goals     []domain.Goal
	publisher pubsub.Publisher
	now       func() time.Time
}

// Option configures a Book.
type Option func(*Book)

// WithPublisher publishes change events for every mutation.
func WithPublisher(p pubsub.Publisher) Option {
	return func(b *Book) { b.publisher = p }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Book) { b.now = now }
}

// NewBook creates an empty goal book.
func NewBook(opts ...Option) *Book {
	b := &Book{now: time.Now}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Sections splits goals into the two lists shown on the goals screen.
type Sections struct {
	Urgent []domain.Goal `json:"urgent"`
	Other  []domain.Goal `json:"other"`
}

// Add validates and appends a goal.
func (b *Book) Add(ctx context.Context, g domain.Goal) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if err := g.Validate(); err != nil {
		return err
	}

	b.mu.Lock()
	for _, existing := range b.goals {
		if existing.ID == g.ID {
			b.mu.Unlock()
			return fmt.Errorf("%w: goal %s already exists", domain.ErrInvalidInput, g.ID)
		}
	}
	b.goals = append(b.goals, g)
	b.mu.Unlock()

	b.publish(ctx, func() error { return pubsub.Publish(ctx, b.publisher, GoalAdded, g) })
	return nil
}

// Toggle flips a goal between completed and open. Completing stamps the
// completion date; reopening clears it.
func (b *Book) Toggle(ctx context.Context, id uuid.UUID) (domain.Goal, error) {
	return b.mutate(ctx, id, func(g *domain.Goal) error {
		g.SetCompleted(!g.IsCompleted, b.now())
		return nil
	})
}

// Complete marks a goal completed. Completing a completed goal keeps its
// original completion date.
func (b *Book) Complete(ctx context.Context, id uuid.UUID) (domain.Goal, error) {
	return b.mutate(ctx, id, func(g *domain.Goal) error {
		if !g.IsCompleted {
			g.SetCompleted(true, b.now())
		}
		return nil
	})
}

// Update replaces the editable fields of a stored goal. A hard deadline cannot
// be moved.
func (b *Book) Update(ctx context.Context, updated domain.Goal) (domain.Goal, error) {
	if err := updated.Validate(); err != nil {
		return domain.Goal{}, err
	}
	return b.mutate(ctx, updated.ID, func(g *domain.Goal) error {
		if g.IsHardDeadline && !updated.DeadlineDate.Equal(g.DeadlineDate) {
			return domain.ErrHardDeadline
		}
		// A goal cannot be downgraded from a hard deadline by an edit.
		updated.IsHardDeadline = g.IsHardDeadline || updated.IsHardDeadline
		*g = updated
		return nil
	})
}

// Delete removes a goal.
func (b *Book) Delete(ctx context.Context, id uuid.UUID) error {
	b.mu.Lock()
	idx := b.indexOf(id)
	if idx < 0 {
		b.mu.Unlock()
		return fmt.Errorf("goal %s: %w", id, domain.ErrNotFound)
	}
	b.goals = append(b.goals[:idx], b.goals[idx+1:]...)
	b.mu.Unlock()

	b.publish(ctx, func() error {
		return pubsub.Publish(ctx, b.publisher, GoalDeleted, GoalDeletedPayload{ID: id})
	})
	return nil
}

// Get returns a copy of one goal.
func (b *Book) Get(id uuid.UUID) (domain.Goal, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	idx := b.indexOf(id)
	if idx < 0 {
		return domain.Goal{}, fmt.Errorf("goal %s: %w", id, domain.ErrNotFound)
	}
	return b.goals[idx], nil
}

// List returns a copy of every goal in insertion order.
func (b *Book) List() []domain.Goal {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.Goal, len(b.goals))
	copy(out, b.goals)
	return out
}

// Grouped sorts goals by deadline and splits them into urgent goals (open and
// due within domain.UrgentWindowDays, overdue included) and everything else.
func (b *Book) Grouped(now time.Time) Sections {
	all := b.List()
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].DeadlineDate.Before(all[j].DeadlineDate)
	})

	var s Sections
	for _, g := range all {
		if g.IsUrgent(now) {
			s.Urgent = append(s.Urgent, g)
		} else {
			s.Other = append(s.Other, g)
		}
	}
	return s
}

// Counts returns the number of completed goals and the total number of goals.
func (b *Book) Counts() (completed, total int) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, g := range b.goals {
		if g.IsCompleted {
			completed++
		}
	}
	return completed, len(b.goals)
}

// Progress returns the completed fraction of goals, 0 for an empty book.
func (b *Book) Progress() float64 {
	completed, total := b.Counts()
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total)
}

func (b *Book) mutate(ctx context.Context, id uuid.UUID, fn func(g *domain.Goal) error) (domain.Goal, error) {
	b.mu.Lock()
	idx := b.indexOf(id)
	if idx < 0 {
		b.mu.Unlock()
		return domain.Goal{}, fmt.Errorf("goal %s: %w", id, domain.ErrNotFound)
	}
	g := b.goals[idx]
	if err := fn(&g); err != nil {
		b.mu.Unlock()
		return domain.Goal{}, err
	}
	b.goals[idx] = g
	b.mu.Unlock()

	b.publish(ctx, func() error { return pubsub.Publish(ctx, b.publisher, GoalUpdated, g) })
	return g, nil
}

// indexOf must be called with the lock held.
func (b *Book) indexOf(id uuid.UUID) int {
	for i := range b.goals {
		if b.goals[i].ID == id {
			return i
		}
	}
	return -1
}

// publish sends a change event when a publisher is configured. The mutation
// has already happened, so a failed publish is only logged.
func (b *Book) publish(ctx context.Context, send func() error) {
	if b.publisher == nil {
		return
	}
	if err := send(); err != nil {
		slog.WarnContext(ctx, "Failed to publish goal event", "error", err)
	}
}
