package models

import (
	"time"

	"gorm.io/gorm"
)

// ConnectionStatus represents the status of a connection request.
type ConnectionStatus string

const (
	// ConnectionStatusPending indicates a connection request awaiting a response.
	ConnectionStatusPending ConnectionStatus = "pending"
	// ConnectionStatusAccepted indicates an accepted connection.
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	// ConnectionStatusDeclined indicates a declined connection request.
	ConnectionStatusDeclined ConnectionStatus = "declined"
)

// Connection represents a relationship between two users. Direction is
// preserved (requester vs receiver) because only the receiver may respond,
// but uniqueness is enforced on the unordered pair via UserLowID/UserHighID.
type Connection struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	RequesterID uint             `gorm:"not null;index" json:"requester_id"`
	ReceiverID  uint             `gorm:"not null;index" json:"receiver_id"`
	UserLowID   uint             `gorm:"not null;uniqueIndex:idx_connection_pair" json:"-"`
	UserHighID  uint             `gorm:"not null;uniqueIndex:idx_connection_pair" json:"-"`
	Status      ConnectionStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	RespondedAt *time.Time       `json:"responded_at,omitempty"`

	Requester User `gorm:"foreignKey:RequesterID" json:"requester,omitempty"`
	Receiver  User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

// TableName specifies the table name for GORM.
func (Connection) TableName() string {
	return "connections"
}

// BeforeCreate derives the canonical unordered pair key so the unique index
// rejects a second row regardless of which side requested.
func (c *Connection) BeforeCreate(_ *gorm.DB) error {
	c.UserLowID, c.UserHighID = OrderedPair(c.RequesterID, c.ReceiverID)
	return nil
}

// Touches reports whether the connection involves the given user.
func (c *Connection) Touches(userID uint) bool {
	return c.RequesterID == userID || c.ReceiverID == userID
}

// OrderedPair returns the two IDs as (low, high).
func OrderedPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}
