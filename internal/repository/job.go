package repository

import (
	"context"
	"errors"

	"pickaside/internal/models"

	"gorm.io/gorm"
)

// JobRepository defines the interface for job post and application data operations
type JobRepository interface {
	CreateJob(ctx context.Context, job *models.JobPost) error
	GetJobByID(ctx context.Context, id uint) (*models.JobPost, error)
	ListJobs(ctx context.Context, limit, offset int) ([]models.JobPost, error)
	CreateApplication(ctx context.Context, app *models.Application) error
	GetApplicationByID(ctx context.Context, id uint) (*models.Application, error)
	GetApplicationForJobAndUser(ctx context.Context, jobID, applicantID uint) (*models.Application, error)
	ListApplicationsForJob(ctx context.Context, jobID uint) ([]models.Application, error)
	UpdateApplicationStatus(ctx context.Context, id uint, status models.ApplicationStatus) error
	CountApplications(ctx context.Context, jobIDs []uint) (map[uint]int, error)
	AppliedJobIDs(ctx context.Context, applicantID uint, jobIDs []uint) (map[uint]bool, error)
}

type jobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) CreateJob(ctx context.Context, job *models.JobPost) error {
	if err := r.db.WithContext(ctx).Create(job).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *jobRepository) GetJobByID(ctx context.Context, id uint) (*models.JobPost, error) {
	var job models.JobPost
	if err := r.db.WithContext(ctx).Preload("Poster").First(&job, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("JobPost", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &job, nil
}

func (r *jobRepository) ListJobs(ctx context.Context, limit, offset int) ([]models.JobPost, error) {
	var jobs []models.JobPost
	if err := r.db.WithContext(ctx).
		Preload("Poster").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&jobs).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return jobs, nil
}

func (r *jobRepository) CreateApplication(ctx context.Context, app *models.Application) error {
	if err := r.db.WithContext(ctx).Create(app).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.NewConflictError("You have already applied to this job")
		}
		return models.NewInternalError(err)
	}
	return nil
}

func (r *jobRepository) GetApplicationByID(ctx context.Context, id uint) (*models.Application, error) {
	var app models.Application
	if err := r.db.WithContext(ctx).
		Preload("Applicant").
		Preload("Job").
		First(&app, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Application", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &app, nil
}

func (r *jobRepository) GetApplicationForJobAndUser(ctx context.Context, jobID, applicantID uint) (*models.Application, error) {
	var app models.Application
	err := r.db.WithContext(ctx).
		Where("job_id = ? AND applicant_id = ?", jobID, applicantID).
		First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return &app, nil
}

func (r *jobRepository) ListApplicationsForJob(ctx context.Context, jobID uint) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Preload("Applicant").
		Order("applied_at DESC, id DESC").
		Find(&apps).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return apps, nil
}

func (r *jobRepository) UpdateApplicationStatus(ctx context.Context, id uint, status models.ApplicationStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Application", id)
	}
	return nil
}

// CountApplications returns application totals per job in one query.
func (r *jobRepository) CountApplications(ctx context.Context, jobIDs []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(jobIDs))
	if len(jobIDs) == 0 {
		return counts, nil
	}
	type row struct {
		JobID uint
		Total int
	}
	var rows []row
	if err := r.db.WithContext(ctx).Model(&models.Application{}).
		Select("job_id, COUNT(*) as total").
		Where("job_id IN ?", jobIDs).
		Group("job_id").
		Scan(&rows).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, r := range rows {
		counts[r.JobID] = r.Total
	}
	return counts, nil
}

// AppliedJobIDs reports which of the given jobs the applicant already applied to.
func (r *jobRepository) AppliedJobIDs(ctx context.Context, applicantID uint, jobIDs []uint) (map[uint]bool, error) {
	applied := make(map[uint]bool, len(jobIDs))
	if len(jobIDs) == 0 {
		return applied, nil
	}
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&models.Application{}).
		Where("applicant_id = ? AND job_id IN ?", applicantID, jobIDs).
		Pluck("job_id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, id := range ids {
		applied[id] = true
	}
	return applied, nil
}
