package viewmodule

import (
	"sort"
	"sync"

	"github.com/nfrund/golfjourneys/internal/views"
)

// classes is the compiled-in identifier table. It is never modified after
// package initialization.
var classes = []ViewClass{
	{
		identifier:   views.IDWelcome,
		kind:         KindWelcome,
		titleKey:     "welcome.title",
		presentation: PresentationRoot,
		factory:      factoryOf(views.NewWelcome),
	},
	{
		identifier:   views.IDOnboarding,
		kind:         KindOnboarding,
		titleKey:     "onboarding.title",
		presentation: PresentationSheet,
		requires:     RequiresSettings,
		factory:      factoryOf(views.NewOnboarding),
	},
	{
		identifier:   views.IDGoalsList,
		kind:         KindGoalsList,
		titleKey:     "goals.title",
		presentation: PresentationRoot,
		requires:     RequiresGoals | RequiresSettings,
		factory:      factoryOf(views.NewGoalsList),
	},
	{
		identifier:   views.IDGoalRow,
		kind:         KindGoalRow,
		presentation: PresentationEmbedded,
		requires:     RequiresGoals | RequiresGoalID,
		factory:      factoryOf(views.NewGoalRow),
	},
	{
		identifier:   views.IDAddGoal,
		kind:         KindAddGoal,
		titleKey:     "add_goal.title",
		presentation: PresentationSheet,
		requires:     RequiresGoals,
		factory:      factoryOf(views.NewAddGoal),
	},
	{
		identifier:   views.IDEditGoal,
		kind:         KindEditGoal,
		titleKey:     "edit_goal.title",
		presentation: PresentationSheet,
		requires:     RequiresGoals | RequiresGoalID,
		factory:      factoryOf(views.NewEditGoal),
	},
	{
		identifier:   views.IDSettings,
		kind:         KindSettings,
		titleKey:     "settings.title",
		presentation: PresentationSheet,
		requires:     RequiresSettings,
		factory:      factoryOf(views.NewSettings),
	},
	{
		identifier:   views.IDGolfBallProgress,
		kind:         KindGolfBallProgress,
		titleKey:     "progress.title",
		presentation: PresentationEmbedded,
		requires:     RequiresGoals,
		factory:      factoryOf(views.NewGolfBallProgress),
	},
}

// table indexes classes by identifier. Values point into classes so every
// lookup of an identifier yields the same pointer.
var table = sync.OnceValue(func() map[string]*ViewClass {
	m := make(map[string]*ViewClass, len(classes))
	for i := range classes {
		c := &classes[i]
		if _, dup := m[c.identifier]; dup {
			panic("viewmodule: duplicate view identifier: " + c.identifier)
		}
		m[c.identifier] = c
	}
	return m
})

var sortedIdentifiers = sync.OnceValue(func() []string {
	ids := make([]string, 0, len(classes))
	for _, c := range classes {
		ids = append(ids, c.identifier)
	}
	sort.Strings(ids)
	return ids
})

func lookup(id string) (*ViewClass, bool) {
	if id == "" {
		return nil, false
	}
	c, ok := table()[id]
	return c, ok
}
