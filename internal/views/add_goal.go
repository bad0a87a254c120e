package views

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nfrund/golfjourneys/internal/bundle"
	"github.com/nfrund/golfjourneys/internal/domain"
	"github.com/nfrund/golfjourneys/internal/goals"
)

// GoalForm holds the editable fields shared by the add and edit sheets.
type GoalForm struct {
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Deadline       time.Time `json:"deadline"`
	IsHardDeadline bool      `json:"isHardDeadline"`
}

// FormLabels are the localized labels of a goal form.
type FormLabels struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Deadline     string `json:"deadline"`
	HardDeadline string `json:"hardDeadline,omitempty"`
	Submit       string `json:"submit"`
	Cancel       string `json:"cancel"`
}

// AddGoal is the sheet for creating a goal.
type AddGoal struct {
	loc  *bundle.Localizer
	book *goals.Book
	Form GoalForm
}

// AddGoalSnapshot is the rendered state of the add goal sheet.
type AddGoalSnapshot struct {
	Form             GoalForm   `json:"form"`
	Labels           FormLabels `json:"labels"`
	HardDeadlineNote string     `json:"hardDeadlineNote,omitempty"`
	CanSubmit        bool       `json:"canSubmit"`
}

// NewAddGoal starts an empty form with today's date as the deadline.
func NewAddGoal(deps Dependencies) (*AddGoal, error) {
	if err := deps.requireGoals(IDAddGoal); err != nil {
		return nil, err
	}
	return &AddGoal{
		loc:  deps.localizer(),
		book: deps.Goals,
		Form: GoalForm{Deadline: deps.now()},
	}, nil
}

// Identifier and Title implement View.
func (v *AddGoal) Identifier() string { return IDAddGoal }
func (v *AddGoal) Title() string      { return v.loc.String("add_goal.title") }

// CanSubmit reports whether the form has a title.
func (v *AddGoal) CanSubmit() bool {
	return strings.TrimSpace(v.Form.Title) != ""
}

// HardDeadlineNote warns that a hard deadline is final. It is empty for soft deadlines.
func (v *AddGoal) HardDeadlineNote() string {
	if !v.Form.IsHardDeadline {
		return ""
	}
	return v.loc.String("add_goal.hard_deadline_note")
}

// Submit validates the form and adds the goal to the book.
func (v *AddGoal) Submit(ctx context.Context) (domain.Goal, error) {
	if !v.CanSubmit() {
		return domain.Goal{}, fmt.Errorf("%w: goal title is required", domain.ErrInvalidInput)
	}
	g := domain.NewGoal(strings.TrimSpace(v.Form.Title), v.Form.Description, v.Form.Deadline, v.Form.IsHardDeadline)
	if err := v.book.Add(ctx, g); err != nil {
		return domain.Goal{}, err
	}
	return g, nil
}

// Snapshot returns a AddGoalSnapshot.
func (v *AddGoal) Snapshot() any {
	return AddGoalSnapshot{
		Form: v.Form,
		Labels: FormLabels{
			Title:        v.loc.String("add_goal.field.title"),
			Description:  v.loc.String("add_goal.field.description"),
			Deadline:     v.loc.String("add_goal.field.deadline"),
			HardDeadline: v.loc.String("add_goal.field.hard_deadline"),
			Submit:       v.loc.String("add_goal.submit"),
			Cancel:       v.loc.String("add_goal.cancel"),
		},
		HardDeadlineNote: v.HardDeadlineNote(),
		CanSubmit:        v.CanSubmit(),
	}
}
