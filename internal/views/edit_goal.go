package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/nfrund/golfjourneys/internal/bundle"
	"github.com/nfrund/golfjourneys/internal/domain"
	"github.com/nfrund/golfjourneys/internal/goals"
)

// EditGoal is the sheet for changing or deleting an existing goal.
type EditGoal struct {
	loc      *bundle.Localizer
	book     *goals.Book
	original domain.Goal
	Form     GoalForm
	// ConfirmingDelete is set while the delete confirmation is shown.
	ConfirmingDelete bool
}

// EditGoalSnapshot is the rendered state of the edit goal sheet.
type EditGoalSnapshot struct {
	Form               GoalForm   `json:"form"`
	Labels             FormLabels `json:"labels"`
	DeadlineLocked     bool       `json:"deadlineLocked"`
	HardDeadlineNote   string     `json:"hardDeadlineNote,omitempty"`
	CanSave            bool       `json:"canSave"`
	DeleteLabel        string     `json:"deleteLabel"`
	ConfirmingDelete   bool       `json:"confirmingDelete"`
	DeleteConfirmation string     `json:"deleteConfirmation,omitempty"`
}

// NewEditGoal opens the goal named by deps.GoalID for editing. The form starts
// as a copy of the stored goal.
func NewEditGoal(deps Dependencies) (*EditGoal, error) {
	g, err := deps.requireGoal(IDEditGoal)
	if err != nil {
		return nil, err
	}
	return &EditGoal{
		loc:      deps.localizer(),
		book:     deps.Goals,
		original: g,
		Form: GoalForm{
			Title:          g.Title,
			Description:    g.Description,
			Deadline:       g.DeadlineDate,
			IsHardDeadline: g.IsHardDeadline,
		},
	}, nil
}

// Identifier and Title implement View.
func (v *EditGoal) Identifier() string { return IDEditGoal }
func (v *EditGoal) Title() string      { return v.loc.String("edit_goal.title") }

// DeadlineLocked reports whether the deadline field is read-only.
func (v *EditGoal) DeadlineLocked() bool { return v.original.IsHardDeadline }

// CanSave reports whether the form has a title.
func (v *EditGoal) CanSave() bool {
	return strings.TrimSpace(v.Form.Title) != ""
}

// Save writes the form back to the goal book. Completion state is kept.
func (v *EditGoal) Save(ctx context.Context) (domain.Goal, error) {
	if !v.CanSave() {
		return domain.Goal{}, fmt.Errorf("%w: goal title is required", domain.ErrInvalidInput)
	}
	updated := v.original
	updated.Title = strings.TrimSpace(v.Form.Title)
	updated.Description = v.Form.Description
	updated.DeadlineDate = v.Form.Deadline

	g, err := v.book.Update(ctx, updated)
	if err != nil {
		return domain.Goal{}, err
	}
	v.original = g
	return g, nil
}

// RequestDelete shows the delete confirmation.
func (v *EditGoal) RequestDelete() { v.ConfirmingDelete = true }

// CancelDelete hides the delete confirmation.
func (v *EditGoal) CancelDelete() { v.ConfirmingDelete = false }

// Delete removes the goal from the book.
func (v *EditGoal) Delete(ctx context.Context) error {
	v.ConfirmingDelete = false
	return v.book.Delete(ctx, v.original.ID)
}

// Snapshot returns a EditGoalSnapshot.
func (v *EditGoal) Snapshot() any {
	s := EditGoalSnapshot{
		Form: v.Form,
		Labels: FormLabels{
			Title:       v.loc.String("add_goal.field.title"),
			Description: v.loc.String("edit_goal.field.description"),
			Deadline:    v.loc.String("add_goal.field.deadline"),
			Submit:      v.loc.String("edit_goal.save"),
			Cancel:      v.loc.String("add_goal.cancel"),
		},
		DeadlineLocked:   v.DeadlineLocked(),
		CanSave:          v.CanSave(),
		DeleteLabel:      v.loc.String("edit_goal.delete"),
		ConfirmingDelete: v.ConfirmingDelete,
	}
	if v.DeadlineLocked() {
		s.HardDeadlineNote = v.loc.String("edit_goal.hard_deadline_note")
	}
	if v.ConfirmingDelete {
		s.DeleteConfirmation = v.loc.String("edit_goal.delete_confirmation")
	}
	return s
}
