package service

import (
	"context"

	"pickaside/internal/cache"
	"pickaside/internal/models"
	"pickaside/internal/repository"
)

// EventService lists campus events for the feed sidebar.
type EventService struct {
	repo repository.EventRepository
}

// NewEventService returns a new EventService.
func NewEventService(repo repository.EventRepository) *EventService {
	return &EventService{repo: repo}
}

// ListUpcoming returns future events soonest first, cache-aside.
func (s *EventService) ListUpcoming(ctx context.Context, limit int) ([]models.Event, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	var events []models.Event
	err := cache.Aside(ctx, cache.EventListKey, &events, cache.EventListTTL, func() error {
		res, ferr := s.repo.ListUpcoming(ctx, limit)
		if ferr != nil {
			return ferr
		}
		events = res
		return nil
	})
	if err != nil {
		return nil, err
	}
	return events, nil
}
