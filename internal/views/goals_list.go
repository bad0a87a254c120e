package views

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/nfrund/golfjourneys/internal/bundle"
	"github.com/nfrund/golfjourneys/internal/domain"
	"github.com/nfrund/golfjourneys/internal/goals"
	"github.com/nfrund/golfjourneys/internal/settings"
)

// Image names used by the goals screen.
const (
	ImageBunker   = "bunker-icon"
	ImageAddGoal  = "addgoal-icon"
	ImageSettings = "settings-icon"
)

// GoalsList is the main screen: a greeting, a quote, progress and the goals.
type GoalsList struct {
	deps     Dependencies
	loc      *bundle.Localizer
	book     *goals.Book
	settings *settings.Store
	quote    *bundle.Quote
}

// Toolbar holds the resource paths of the toolbar buttons.
type Toolbar struct {
	AddGoalIcon  string `json:"addGoalIcon"`
	SettingsIcon string `json:"settingsIcon"`
}

// EmptyState is shown instead of the goals when there are none.
type EmptyState struct {
	Title   string `json:"title"`
	Message string `json:"message"`
	Action  string `json:"action"`
	Icon    string `json:"icon"`
}

// Section is a titled group of goal rows.
type Section struct {
	Title  string            `json:"title"`
	Urgent bool              `json:"urgent"`
	Rows   []GoalRowSnapshot `json:"rows"`
}

// GoalsListSnapshot is the rendered state of the goals screen.
type GoalsListSnapshot struct {
	Title      string                    `json:"title"`
	Greeting   string                    `json:"greeting"`
	Quote      *bundle.Quote             `json:"quote,omitempty"`
	Appearance domain.Appearance         `json:"appearance"`
	BrandColor string                    `json:"brandColor,omitempty"`
	Toolbar    Toolbar                   `json:"toolbar"`
	Empty      *EmptyState               `json:"empty,omitempty"`
	Progress   *GolfBallProgressSnapshot `json:"progress,omitempty"`
	Upcoming   string                    `json:"upcoming,omitempty"`
	Sections   []Section                 `json:"sections,omitempty"`
}

// NewGoalsList builds the main goals screen and picks its first quote.
func NewGoalsList(deps Dependencies) (*GoalsList, error) {
	if err := deps.requireGoals(IDGoalsList); err != nil {
		return nil, err
	}
	if err := deps.requireSettings(IDGoalsList); err != nil {
		return nil, err
	}
	v := &GoalsList{
		deps:     deps,
		loc:      deps.localizer(),
		book:     deps.Goals,
		settings: deps.Settings,
	}
	v.RefreshQuote()
	return v, nil
}

// Identifier and Title implement View.
func (v *GoalsList) Identifier() string { return IDGoalsList }
func (v *GoalsList) Title() string      { return v.loc.String("goals.title") }

// Quote returns the quote currently on screen, nil if the bundle has none.
func (v *GoalsList) Quote() *bundle.Quote { return v.quote }

// RefreshQuote picks a new random quote from the bundle.
func (v *GoalsList) RefreshQuote() {
	quotes, err := v.loc.Bundle().Quotes()
	if err != nil {
		slog.Warn("Failed to load quotes", "error", err)
	}
	if len(quotes) == 0 {
		v.quote = nil
		return
	}
	q := quotes[v.deps.intN(len(quotes))]
	v.quote = &q
}

// Toggle flips the completion of one of the listed goals.
func (v *GoalsList) Toggle(ctx context.Context, id uuid.UUID) error {
	_, err := v.book.Toggle(ctx, id)
	return err
}

// Greeting returns the personalised greeting line.
func (v *GoalsList) Greeting() string {
	return v.loc.String("goals.greeting", v.settings.Get().FirstName)
}

// Snapshot returns a GoalsListSnapshot.
func (v *GoalsList) Snapshot() any {
	return v.snapshot(v.deps.now())
}

func (v *GoalsList) snapshot(now time.Time) GoalsListSnapshot {
	appearance := v.settings.Get().Appearance()
	b := v.loc.Bundle()

	s := GoalsListSnapshot{
		Title:      v.Title(),
		Greeting:   v.Greeting(),
		Quote:      v.quote,
		Appearance: appearance,
		BrandColor: b.Manifest().BrandColor,
		Toolbar: Toolbar{
			AddGoalIcon:  v.imagePath(ImageAddGoal, appearance),
			SettingsIcon: v.imagePath(ImageSettings, appearance),
		},
	}

	if len(v.book.List()) == 0 {
		s.Empty = &EmptyState{
			Title:   v.loc.String("goals.empty.title"),
			Message: v.loc.String("goals.empty.message"),
			Action:  v.loc.String("goals.empty.action"),
			Icon:    v.imagePath(ImageBunker, appearance),
		}
		return s
	}

	progress := (&GolfBallProgress{loc: v.loc, book: v.book, settings: v.settings}).snapshot()
	s.Progress = &progress
	s.Upcoming = v.loc.String("goals.upcoming")

	grouped := v.book.Grouped(now)
	if len(grouped.Urgent) > 0 {
		s.Sections = append(s.Sections, Section{
			Title:  v.loc.String("goals.section.urgent"),
			Urgent: true,
			Rows:   v.rows(grouped.Urgent, now),
		})
	}
	s.Sections = append(s.Sections, Section{
		Title: v.loc.String("goals.section.all"),
		Rows:  v.rows(grouped.Other, now),
	})
	return s
}

func (v *GoalsList) rows(gs []domain.Goal, now time.Time) []GoalRowSnapshot {
	out := make([]GoalRowSnapshot, len(gs))
	for i, g := range gs {
		out[i] = rowSnapshot(v.loc, g, now)
	}
	return out
}

func (v *GoalsList) imagePath(name string, appearance domain.Appearance) string {
	p, err := v.loc.Bundle().ImagePath(name, appearance)
	if err != nil {
		slog.Debug("Image missing from bundle", "image", name, "error", err)
		return ""
	}
	return p
}
