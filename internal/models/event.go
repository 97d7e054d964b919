package models

import "time"

// Event is a campus event shown on the dashboard. Read-only in the API.
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Location    string    `json:"location"`
	EventDate   time.Time `gorm:"index" json:"event_date"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (Event) TableName() string {
	return "events"
}
