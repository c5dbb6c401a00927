package event

import (
	"context"

	"ticketledger/entities"
)

type ActivityRepository interface {
	Add(ctx context.Context, entry entities.ActivityEntry) error
}

type Handler struct {
	activityRepo ActivityRepository
}

func NewHandler(activityRepo ActivityRepository) Handler {
	if activityRepo == nil {
		panic("missing activityRepo")
	}

	return Handler{
		activityRepo: activityRepo,
	}
}
