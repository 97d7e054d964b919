package models

import "time"

// NotificationKind enumerates the closed set of notification types.
type NotificationKind string

const (
	// NotificationConnectionRequest is sent to the receiver of a new connection request.
	NotificationConnectionRequest NotificationKind = "connection_request"
	// NotificationConnectionAccepted is sent to the requester when their request is accepted.
	NotificationConnectionAccepted NotificationKind = "connection_accepted"
	// NotificationJobApplication is sent to a job poster when someone applies.
	NotificationJobApplication NotificationKind = "job_application"
	// NotificationMessage is sent to a conversation participant on a new message.
	NotificationMessage NotificationKind = "message"
)

// Notification is a derived, best-effort record for one recipient. Failure to
// create one never rolls back the mutation that triggered it.
type Notification struct {
	ID        uint             `gorm:"primaryKey" json:"id"`
	UserID    uint             `gorm:"not null;index" json:"user_id"`
	Kind      NotificationKind `gorm:"type:varchar(32);not null;column:type" json:"type"`
	Title     string           `gorm:"not null" json:"title"`
	Message   string           `gorm:"type:text" json:"message"`
	RelatedID uint             `json:"related_id"`
	IsRead    bool             `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Notification) TableName() string {
	return "notifications"
}
