package models

import (
	"time"

	"gorm.io/gorm"
)

// Conversation is the durable thread container for messages between exactly
// two users. Participants are stored in canonical (low, high) order so the
// unique index guarantees a single thread per pair.
type Conversation struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	ParticipantLowID  uint           `gorm:"not null;uniqueIndex:idx_conversation_pair" json:"participant_low_id"`
	ParticipantHighID uint           `gorm:"not null;uniqueIndex:idx_conversation_pair" json:"participant_high_id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	ParticipantLow  User      `gorm:"foreignKey:ParticipantLowID" json:"participant_low,omitempty"`
	ParticipantHigh User      `gorm:"foreignKey:ParticipantHighID" json:"participant_high,omitempty"`
	Messages        []Message `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`

	// Derived fields for conversation lists, not persisted.
	OtherUser   *UserSummary `gorm:"-" json:"other_user,omitempty"`
	LastMessage *Message     `gorm:"-" json:"last_message,omitempty"`
	UnreadCount int64        `gorm:"-" json:"unread_count"`
}

// TableName specifies the table name for GORM.
func (Conversation) TableName() string {
	return "conversations"
}

// HasParticipant reports whether the user is one of the two participants.
func (c *Conversation) HasParticipant(userID uint) bool {
	return c.ParticipantLowID == userID || c.ParticipantHighID == userID
}

// OtherParticipantID returns the participant that is not the given user.
func (c *Conversation) OtherParticipantID(userID uint) uint {
	if c.ParticipantLowID == userID {
		return c.ParticipantHighID
	}
	return c.ParticipantLowID
}

// Message is one entry in a conversation's append-only ledger. Rows are
// immutable after insert except for the is_read flag, which only the
// non-sender participant flips.
type Message struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ConversationID uint      `gorm:"not null;index" json:"conversation_id"`
	SenderID       uint      `gorm:"not null;index" json:"sender_id"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	IsRead         bool      `gorm:"default:false" json:"is_read"`
	SentAt         time.Time `gorm:"autoCreateTime;index" json:"sent_at"`

	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

// TableName specifies the table name for GORM.
func (Message) TableName() string {
	return "messages"
}
