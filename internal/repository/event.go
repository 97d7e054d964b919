package repository

import (
	"context"
	"time"

	"pickaside/internal/models"

	"gorm.io/gorm"
)

// EventRepository defines the interface for event data operations
type EventRepository interface {
	ListUpcoming(ctx context.Context, limit int) ([]models.Event, error)
	Create(ctx context.Context, event *models.Event) error
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new event repository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) ListUpcoming(ctx context.Context, limit int) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.WithContext(ctx).
		Where("event_date >= ?", time.Now().UTC()).
		Order("event_date ASC").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
