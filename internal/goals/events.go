package goals

import (
	"github.com/google/uuid"

	"github.com/nfrund/golfjourneys/internal/domain"
	"github.com/nfrund/golfjourneys/internal/pubsub"
)

// GoalDeletedPayload identifies a removed goal.
type GoalDeletedPayload struct {
	ID uuid.UUID `json:"id"`
}

// Change events published by a Book.
var (
	GoalAdded   = pubsub.NewEvent[domain.Goal]("goals.goal.added", "A goal was added to the goal book")
	GoalUpdated = pubsub.NewEvent[domain.Goal]("goals.goal.updated", "A goal was edited, completed or reopened")
	GoalDeleted = pubsub.NewEvent[GoalDeletedPayload]("goals.goal.deleted", "A goal was removed from the goal book")
)
