package repository

import (
	"context"
	"errors"
	"time"

	"pickaside/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ChatRepository defines the interface for conversation and message data operations
type ChatRepository interface {
	FindOrCreateConversation(ctx context.Context, a, b uint) (*models.Conversation, bool, error)
	GetConversation(ctx context.Context, id uint) (*models.Conversation, error)
	GetUserConversations(ctx context.Context, userID uint) ([]*models.Conversation, error)
	CreateMessage(ctx context.Context, msg *models.Message) error
	GetMessages(ctx context.Context, convID uint, limit, offset int) ([]*models.Message, error)
	MarkConversationRead(ctx context.Context, convID, readerID uint) (int64, error)
	TouchConversation(ctx context.Context, convID uint) error
	CountUnread(ctx context.Context, convID, userID uint) (int64, error)
	GetLastMessage(ctx context.Context, convID uint) (*models.Message, error)
}

// chatRepository implements ChatRepository
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{db: db}
}

// FindOrCreateConversation returns the single conversation between two users,
// creating it when absent. The unique index on the participant pair plus
// OnConflict makes concurrent calls converge on one row. The bool reports
// whether this call created the conversation.
func (r *chatRepository) FindOrCreateConversation(ctx context.Context, a, b uint) (*models.Conversation, bool, error) {
	low, high := models.OrderedPair(a, b)

	conv := models.Conversation{ParticipantLowID: low, ParticipantHighID: high}
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&conv)
	if res.Error != nil {
		return nil, false, models.NewInternalError(res.Error)
	}
	created := res.RowsAffected > 0

	// Re-select by the pair so the loser of a concurrent insert still gets
	// the winning row.
	var out models.Conversation
	if err := r.db.WithContext(ctx).
		Where("participant_low_id = ? AND participant_high_id = ?", low, high).
		First(&out).Error; err != nil {
		return nil, false, models.NewInternalError(err)
	}
	return &out, created, nil
}

func (r *chatRepository) GetConversation(ctx context.Context, id uint) (*models.Conversation, error) {
	var conv models.Conversation
	if err := r.db.WithContext(ctx).First(&conv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Conversation", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &conv, nil
}

func (r *chatRepository) GetUserConversations(ctx context.Context, userID uint) ([]*models.Conversation, error) {
	var conversations []*models.Conversation
	if err := r.db.WithContext(ctx).
		Where("participant_low_id = ? OR participant_high_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&conversations).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return conversations, nil
}

func (r *chatRepository) CreateMessage(ctx context.Context, msg *models.Message) error {
	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *chatRepository) GetMessages(ctx context.Context, convID uint, limit, offset int) ([]*models.Message, error) {
	var messages []*models.Message
	if err := r.db.WithContext(ctx).
		Where("conversation_id = ?", convID).
		Preload("Sender").
		Order("sent_at ASC, id ASC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

// MarkConversationRead flags every unread message sent by the other
// participant. Repeat calls match zero rows and are harmless. Returns how many
// messages flipped.
func (r *chatRepository) MarkConversationRead(ctx context.Context, convID, readerID uint) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id != ? AND is_read = ?", convID, readerID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}

func (r *chatRepository) TouchConversation(ctx context.Context, convID uint) error {
	if err := r.db.WithContext(ctx).Model(&models.Conversation{}).
		Where("id = ?", convID).
		Update("updated_at", time.Now().UTC()).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *chatRepository) CountUnread(ctx context.Context, convID, userID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("conversation_id = ? AND sender_id != ? AND is_read = ?", convID, userID, false).
		Count(&count).Error; err != nil {
		return 0, models.NewInternalError(err)
	}
	return count, nil
}

func (r *chatRepository) GetLastMessage(ctx context.Context, convID uint) (*models.Message, error) {
	var msg models.Message
	err := r.db.WithContext(ctx).
		Where("conversation_id = ?", convID).
		Order("sent_at DESC, id DESC").
		First(&msg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &msg, nil
}
