// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents a student profile in Pick A Side. The profile row doubles as
// the auth principal: its ID is the subject of every issued token.
type User struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	Email             string         `gorm:"unique;not null" json:"email"`
	Password          string         `gorm:"not null" json:"-"`
	FullName          string         `gorm:"not null" json:"full_name"`
	StudentID         string         `json:"student_id"`
	Phone             string         `json:"phone"`
	Bio               string         `gorm:"type:text" json:"bio"`
	Location          string         `json:"location"`
	Major             string         `json:"major"`
	GraduationYear    *int           `json:"graduation_year"`
	GPA               *float64       `json:"gpa"`
	LinkedinURL       string         `json:"linkedin_url"`
	GithubURL         string         `json:"github_url"`
	PortfolioURL      string         `json:"portfolio_url"`
	ProfilePictureURL string         `json:"profile_picture_url"`
	ResumeURL         string         `json:"resume_url"`
	IsProfileComplete bool           `gorm:"default:false" json:"is_profile_complete"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	Interests []UserInterest `gorm:"foreignKey:UserID" json:"interests,omitempty"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// UserInterest is one interest tag attached to a profile. The full set is
// replaced wholesale when the profile setup form is saved.
type UserInterest struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"user_id"`
	Value    string `gorm:"not null" json:"value"`
	Category string `gorm:"default:'user_interest'" json:"category"`
}

// TableName specifies the table name for GORM.
func (UserInterest) TableName() string {
	return "user_interests"
}

// UserSummary is the compact profile shape embedded in conversation lists,
// application lists and realtime events.
type UserSummary struct {
	ID                uint   `json:"id"`
	FullName          string `json:"full_name"`
	Major             string `json:"major"`
	GraduationYear    *int   `json:"graduation_year"`
	ProfilePictureURL string `json:"profile_picture_url"`
}

// Summary returns the compact representation of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:                u.ID,
		FullName:          u.FullName,
		Major:             u.Major,
		GraduationYear:    u.GraduationYear,
		ProfilePictureURL: u.ProfilePictureURL,
	}
}
