package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// validatorInstance is a package-level validator instance.
// Using a single instance is more efficient as it caches struct information.
var validatorInstance = validator.New()

func init() {
	// notblank rejects strings made only of whitespace.
	_ = validatorInstance.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// Validator returns the shared validator so other packages validate with the
// same registered rules.
func Validator() *validator.Validate {
	return validatorInstance
}

// UrgentWindowDays is how close a deadline has to be for a goal to count as urgent.
const UrgentWindowDays = 30

const day = 24 * time.Hour

// Goal is a single golf goal a player is working towards.
type Goal struct {
	ID             uuid.UUID  `json:"id" validate:"required"`
	Title          string     `json:"title" validate:"required,notblank,max=200"`
	Description    string     `json:"description" validate:"max=2000"`
	IsCompleted    bool       `json:"isCompleted"`
	CompletedDate  *time.Time `json:"completedDate,omitempty"`
	DeadlineDate   time.Time  `json:"deadlineDate" validate:"required"`
	IsHardDeadline bool       `json:"isHardDeadline"`
}

// NewGoal creates an open goal with a fresh identifier.
func NewGoal(title, description string, deadline time.Time, hardDeadline bool) Goal {
	return Goal{
		ID:             uuid.New(),
		Title:          title,
		Description:    description,
		DeadlineDate:   deadline,
		IsHardDeadline: hardDeadline,
	}
}

// Validate runs validation checks on the Goal using the defined tags.
func (g *Goal) Validate() error {
	if err := validatorInstance.Struct(g); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// DaysRemaining counts whole days from now until the deadline, truncated toward
// zero. A deadline 12 hours in the past is still 0 days away. Completed goals
// always report 0.
func (g Goal) DaysRemaining(now time.Time) int {
	if g.IsCompleted {
		return 0
	}
	return int(g.DeadlineDate.Sub(now) / day)
}

// IsOverdue reports whether the goal is open and at least a full day past its deadline.
func (g Goal) IsOverdue(now time.Time) bool {
	return !g.IsCompleted && g.DaysRemaining(now) < 0
}

// IsUrgent reports whether the goal is open and due within UrgentWindowDays.
// Overdue goals are urgent.
func (g Goal) IsUrgent(now time.Time) bool {
	return !g.IsCompleted && g.DaysRemaining(now) <= UrgentWindowDays
}

// SetCompleted flips the completion state and keeps CompletedDate consistent with it.
func (g *Goal) SetCompleted(completed bool, at time.Time) {
	g.IsCompleted = completed
	if completed {
		t := at
		g.CompletedDate = &t
		return
	}
	g.CompletedDate = nil
}
