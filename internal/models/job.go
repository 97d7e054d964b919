package models

import (
	"time"

	"gorm.io/gorm"
)

// JobPost is a position posted by a student or campus employer.
type JobPost struct {
	ID                  uint           `gorm:"primaryKey" json:"id"`
	PostedBy            uint           `gorm:"not null;index" json:"posted_by"`
	Title               string         `gorm:"not null" json:"title"`
	Company             string         `gorm:"not null" json:"company"`
	Location            string         `json:"location"`
	JobType             string         `json:"job_type"`
	Industry            string         `json:"industry"`
	Description         string         `gorm:"type:text" json:"description"`
	Requirements        string         `gorm:"type:text" json:"requirements"`
	SalaryRange         string         `json:"salary_range"`
	HoursPerWeek        string         `json:"hours_per_week"`
	ApplicationDeadline *time.Time     `json:"application_deadline,omitempty"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
	DeletedAt           gorm.DeletedAt `gorm:"index" json:"-"`

	Poster User `gorm:"foreignKey:PostedBy" json:"poster,omitempty"`

	// Derived per-viewer fields, not persisted.
	ApplicationCount int64 `gorm:"-" json:"application_count"`
	UserApplied      bool  `gorm:"-" json:"user_applied"`
}

// TableName specifies the table name for GORM.
func (JobPost) TableName() string {
	return "job_posts"
}

// ApplicationStatus represents the review status of a job application.
type ApplicationStatus string

const (
	// ApplicationStatusPending is the initial status of every application.
	ApplicationStatusPending ApplicationStatus = "pending"
	// ApplicationStatusReviewed indicates the poster has looked at the application.
	ApplicationStatusReviewed ApplicationStatus = "reviewed"
	// ApplicationStatusAccepted indicates an accepted application.
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	// ApplicationStatusRejected indicates a rejected application.
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// ValidApplicationStatus reports whether s is a known status value.
func ValidApplicationStatus(s ApplicationStatus) bool {
	switch s {
	case ApplicationStatusPending, ApplicationStatusReviewed,
		ApplicationStatusAccepted, ApplicationStatusRejected:
		return true
	}
	return false
}

// Application ties an applicant to a job post. One application per
// (job, applicant) pair, enforced by the composite unique index.
type Application struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	JobID       uint              `gorm:"not null;uniqueIndex:idx_applications_job_applicant" json:"job_id"`
	ApplicantID uint              `gorm:"not null;uniqueIndex:idx_applications_job_applicant" json:"applicant_id"`
	Status      ApplicationStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	CoverLetter string            `gorm:"type:text" json:"cover_letter"`
	AppliedAt   time.Time         `gorm:"autoCreateTime" json:"applied_at"`

	Applicant User    `gorm:"foreignKey:ApplicantID" json:"applicant,omitempty"`
	Job       JobPost `gorm:"foreignKey:JobID" json:"job,omitempty"`
}

// TableName specifies the table name for GORM.
func (Application) TableName() string {
	return "applications"
}
