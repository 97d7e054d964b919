package repository

import (
	"context"
	"errors"
	"time"

	"pickaside/internal/models"

	"gorm.io/gorm"
)

// ConnectionRepository defines the interface for connection data operations
type ConnectionRepository interface {
	Create(ctx context.Context, conn *models.Connection) error
	GetByID(ctx context.Context, id uint) (*models.Connection, error)
	GetBetweenUsers(ctx context.Context, a, b uint) (*models.Connection, error)
	GetPendingReceived(ctx context.Context, userID uint) ([]models.Connection, error)
	GetPendingSent(ctx context.Context, userID uint) ([]models.Connection, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Connection, error)
	GetConnectedUsers(ctx context.Context, userID uint) ([]models.User, error)
	UpdateStatus(ctx context.Context, id uint, status models.ConnectionStatus) error
}

type connectionRepository struct {
	db *gorm.DB
}

// NewConnectionRepository creates a new connection repository
func NewConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &connectionRepository{db: db}
}

func (r *connectionRepository) Create(ctx context.Context, conn *models.Connection) error {
	if err := r.db.WithContext(ctx).Create(conn).Error; err != nil {
		// The unique pair index catches racing requests between the same
		// two users.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("A connection already exists between these users")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *connectionRepository) GetByID(ctx context.Context, id uint) (*models.Connection, error) {
	var conn models.Connection
	if err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Receiver").
		First(&conn, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Connection", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &conn, nil
}

// GetBetweenUsers finds the connection record between two users regardless of
// who sent the request. Returns gorm.ErrRecordNotFound wrapped as a not found
// error when none exists.
func (r *connectionRepository) GetBetweenUsers(ctx context.Context, a, b uint) (*models.Connection, error) {
	low, high := models.OrderedPair(a, b)
	var conn models.Connection
	if err := r.db.WithContext(ctx).
		Where("user_low_id = ? AND user_high_id = ?", low, high).
		First(&conn).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Connection", a)
		}
		return nil, models.NewInternalError(err)
	}
	return &conn, nil
}

func (r *connectionRepository) GetPendingReceived(ctx context.Context, userID uint) ([]models.Connection, error) {
	var conns []models.Connection
	if err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND status = ?", userID, models.ConnectionStatusPending).
		Preload("Requester").
		Order("created_at DESC").
		Find(&conns).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return conns, nil
}

func (r *connectionRepository) GetPendingSent(ctx context.Context, userID uint) ([]models.Connection, error) {
	var conns []models.Connection
	if err := r.db.WithContext(ctx).
		Where("requester_id = ? AND status = ?", userID, models.ConnectionStatusPending).
		Preload("Receiver").
		Order("created_at DESC").
		Find(&conns).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return conns, nil
}

func (r *connectionRepository) ListForUser(ctx context.Context, userID uint) ([]models.Connection, error) {
	var conns []models.Connection
	if err := r.db.WithContext(ctx).
		Where("requester_id = ? OR receiver_id = ?", userID, userID).
		Preload("Requester").
		Preload("Receiver").
		Order("created_at DESC").
		Find(&conns).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return conns, nil
}

// GetConnectedUsers returns the users on the other end of the caller's
// accepted connections.
func (r *connectionRepository) GetConnectedUsers(ctx context.Context, userID uint) ([]models.User, error) {
	var users []models.User
	sub := r.db.Model(&models.Connection{}).
		Select("CASE WHEN requester_id = ? THEN receiver_id ELSE requester_id END", userID).
		Where("(requester_id = ? OR receiver_id = ?) AND status = ?",
			userID, userID, models.ConnectionStatusAccepted)
	if err := r.db.WithContext(ctx).
		Where("id IN (?)", sub).
		Preload("Interests").
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *connectionRepository) UpdateStatus(ctx context.Context, id uint, status models.ConnectionStatus) error {
	now := time.Now().UTC()
	res := r.db.WithContext(ctx).Model(&models.Connection{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "responded_at": &now})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Connection", id)
	}
	return nil
}
