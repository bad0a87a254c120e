package viewmodule

import (
	"fmt"
	"strings"

	"github.com/nfrund/golfjourneys/internal/views"
)

// Kind tags the view type a class constructs.
type Kind int

const (
	KindUnknown Kind = iota
	KindWelcome
	KindOnboarding
	KindGoalsList
	KindGoalRow
	KindAddGoal
	KindEditGoal
	KindSettings
	KindGolfBallProgress
)

var kindNames = map[Kind]string{
	KindWelcome:          "Welcome",
	KindOnboarding:       "Onboarding",
	KindGoalsList:        "GoalsList",
	KindGoalRow:          "GoalRow",
	KindAddGoal:          "AddGoal",
	KindEditGoal:         "EditGoal",
	KindSettings:         "Settings",
	KindGolfBallProgress: "GolfBallProgress",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// Presentation is how a host is expected to show a view.
type Presentation string

const (
	PresentationRoot     Presentation = "root"
	PresentationSheet    Presentation = "sheet"
	PresentationEmbedded Presentation = "embedded"
)

// Requirement is a set of dependencies a view class needs to be constructed.
type Requirement uint8

const (
	RequiresGoals Requirement = 1 << iota
	RequiresSettings
	RequiresGoalID
)

// Has reports whether every requirement in other is part of r.
func (r Requirement) Has(other Requirement) bool {
	return r&other == other
}

// Names lists the requirements in a stable order.
func (r Requirement) Names() []string {
	var names []string
	if r.Has(RequiresGoals) {
		names = append(names, "goals")
	}
	if r.Has(RequiresSettings) {
		names = append(names, "settings")
	}
	if r.Has(RequiresGoalID) {
		names = append(names, "goal-id")
	}
	return names
}

func (r Requirement) String() string {
	if r == 0 {
		return "none"
	}
	return strings.Join(r.Names(), ",")
}

// Factory constructs a view from its dependencies.
type Factory func(deps views.Dependencies) (views.View, error)

// ViewClass describes a view type that can be resolved by identifier and
// instantiated on demand. Classes are read-only; every lookup of an
// identifier yields the same value.
type ViewClass struct {
	identifier   string
	kind         Kind
	titleKey     string
	presentation Presentation
	requires     Requirement
	factory      Factory
}

// Identifier returns the string the class is resolved by.
func (c *ViewClass) Identifier() string { return c.identifier }

// Kind returns the type tag of the views the class constructs.
func (c *ViewClass) Kind() Kind { return c.kind }

// TitleKey returns the bundle string key of the view title. Views titled by
// their data, such as goal rows, have none.
func (c *ViewClass) TitleKey() string { return c.titleKey }

func (c *ViewClass) Presentation() Presentation { return c.presentation }

// Requires returns the dependencies New needs.
func (c *ViewClass) Requires() Requirement { return c.requires }

// New constructs an instance of the class.
func (c *ViewClass) New(deps views.Dependencies) (views.View, error) {
	if c == nil || c.factory == nil {
		return nil, fmt.Errorf("%w: class has no constructor", ErrUnknownView)
	}
	return c.factory(deps)
}

// factoryOf adapts a typed view constructor to a Factory.
func factoryOf[V views.View](construct func(views.Dependencies) (V, error)) Factory {
	return func(deps views.Dependencies) (views.View, error) {
		v, err := construct(deps)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}
