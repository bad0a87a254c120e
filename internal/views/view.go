// Package views holds the view models of the Golf Journeys screens. A view
// model computes everything a host needs to draw a screen (localized text,
// resource paths, grouped goals) and exposes the screen's actions, but never
// draws anything itself.
package views

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/nfrund/golfjourneys/internal/bundle"
	"github.com/nfrund/golfjourneys/internal/domain"
	"github.com/nfrund/golfjourneys/internal/goals"
	"github.com/nfrund/golfjourneys/internal/settings"
)

// Identifiers of the screens.
const (
	IDWelcome          = "welcome"
	IDOnboarding       = "onboarding"
	IDGoalsList        = "goals"
	IDGoalRow          = "goal-row"
	IDAddGoal          = "add-goal"
	IDEditGoal         = "edit-goal"
	IDSettings         = "settings"
	IDGolfBallProgress = "golf-ball-progress"
)

// ErrMissingDependency is returned when a view is built without something it needs.
var ErrMissingDependency = errors.New("missing view dependency")

// View is implemented by every view model.
type View interface {
	// Identifier returns the identifier the view is registered under.
	Identifier() string
	// Title returns the localized screen title.
	Title() string
	// Snapshot returns a JSON-serializable picture of the current state.
	Snapshot() any
}

// Dependencies are the services a view may need. Views check for the ones
// they use and report ErrMissingDependency.
type Dependencies struct {
	// Localizer defaults to the embedded bundle in its default locale.
	Localizer *bundle.Localizer
	Goals     *goals.Book
	Settings  *settings.Store
	// Clock defaults to time.Now.
	Clock func() time.Time
	// Rand picks quotes; nil uses the global source.
	Rand *rand.Rand
	// GoalID selects the goal for views that show a single goal.
	GoalID uuid.UUID
}

func (d Dependencies) localizer() *bundle.Localizer {
	if d.Localizer != nil {
		return d.Localizer
	}
	return bundle.Default().Localizer()
}

func (d Dependencies) now() time.Time {
	if d.Clock != nil {
		return d.Clock()
	}
	return time.Now()
}

func (d Dependencies) intN(n int) int {
	if d.Rand != nil {
		return d.Rand.IntN(n)
	}
	return rand.IntN(n)
}

func (d Dependencies) requireGoals(view string) error {
	if d.Goals == nil {
		return fmt.Errorf("%s: goal book: %w", view, ErrMissingDependency)
	}
	return nil
}

func (d Dependencies) requireSettings(view string) error {
	if d.Settings == nil {
		return fmt.Errorf("%s: settings store: %w", view, ErrMissingDependency)
	}
	return nil
}

func (d Dependencies) requireGoal(view string) (domain.Goal, error) {
	if err := d.requireGoals(view); err != nil {
		return domain.Goal{}, err
	}
	if d.GoalID == uuid.Nil {
		return domain.Goal{}, fmt.Errorf("%s: goal id: %w", view, ErrMissingDependency)
	}
	return d.Goals.Get(d.GoalID)
}
