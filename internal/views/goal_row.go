package views

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nfrund/golfjourneys/internal/bundle"
	"github.com/nfrund/golfjourneys/internal/domain"
	"github.com/nfrund/golfjourneys/internal/goals"
)

// Completion icons of a goal row.
const (
	IconCompleted = "checkmark.circle.fill"
	IconOpen      = "circle"
)

// GoalRow is a single goal in the goals list.
type GoalRow struct {
	loc  *bundle.Localizer
	book *goals.Book
	now  func() time.Time
	goal domain.Goal
}

// GoalRowSnapshot is the rendered state of a goal row.
type GoalRowSnapshot struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	IsCompleted    bool      `json:"isCompleted"`
	IsHardDeadline bool      `json:"isHardDeadline"`
	DueText        string    `json:"dueText,omitempty"`
	IsOverdue      bool      `json:"isOverdue"`
	Icon           string    `json:"icon"`
}

// NewGoalRow builds the row for the goal named by deps.GoalID.
func NewGoalRow(deps Dependencies) (*GoalRow, error) {
	g, err := deps.requireGoal(IDGoalRow)
	if err != nil {
		return nil, err
	}
	return &GoalRow{loc: deps.localizer(), book: deps.Goals, now: deps.now, goal: g}, nil
}

// Identifier and Title implement View.
func (v *GoalRow) Identifier() string { return IDGoalRow }
func (v *GoalRow) Title() string      { return v.goal.Title }

// Goal returns the goal as last seen by the row.
func (v *GoalRow) Goal() domain.Goal { return v.goal }

// Toggle flips the goal's completion and refreshes the row.
func (v *GoalRow) Toggle(ctx context.Context) error {
	g, err := v.book.Toggle(ctx, v.goal.ID)
	if err != nil {
		return err
	}
	v.goal = g
	return nil
}

// Snapshot returns a GoalRowSnapshot.
func (v *GoalRow) Snapshot() any {
	return rowSnapshot(v.loc, v.goal, v.now())
}

// DueText describes how far away a goal's deadline is. Completed goals have
// no due text.
func DueText(loc *bundle.Localizer, g domain.Goal, now time.Time) string {
	if g.IsCompleted {
		return ""
	}
	switch days := g.DaysRemaining(now); {
	case days == 0:
		return loc.String("goal.due_today")
	case days < 0:
		return loc.Plural("goal.overdue", days)
	default:
		return loc.Plural("goal.due_in", days)
	}
}

func rowSnapshot(loc *bundle.Localizer, g domain.Goal, now time.Time) GoalRowSnapshot {
	icon := IconOpen
	if g.IsCompleted {
		icon = IconCompleted
	}
	return GoalRowSnapshot{
		ID:             g.ID,
		Title:          g.Title,
		Description:    g.Description,
		IsCompleted:    g.IsCompleted,
		IsHardDeadline: g.IsHardDeadline,
		DueText:        DueText(loc, g, now),
		IsOverdue:      g.IsOverdue(now),
		Icon:           icon,
	}
}
