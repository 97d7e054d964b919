package service

import (
	"context"
	"strings"

	"pickaside/internal/cache"
	"pickaside/internal/models"
	"pickaside/internal/repository"
)

// JobService provides job post and application business logic.
type JobService struct {
	jobRepo  repository.JobRepository
	userRepo repository.UserRepository
	announce Announcer
}

// NewJobService returns a new JobService. announce may be nil.
func NewJobService(jobRepo repository.JobRepository, userRepo repository.UserRepository, announce Announcer) *JobService {
	return &JobService{jobRepo: jobRepo, userRepo: userRepo, announce: announce}
}

// CreateJob posts a new job on behalf of the poster.
func (s *JobService) CreateJob(ctx context.Context, job *models.JobPost) (*models.JobPost, error) {
	job.Title = strings.TrimSpace(job.Title)
	job.Company = strings.TrimSpace(job.Company)
	if job.Title == "" {
		return nil, models.NewValidationError("Job title is required")
	}
	if job.Company == "" {
		return nil, models.NewValidationError("Company is required")
	}
	if job.PostedBy == 0 {
		return nil, models.NewValidationError("Poster is required")
	}
	if err := s.jobRepo.CreateJob(ctx, job); err != nil {
		return nil, err
	}
	cache.InvalidateJobs(ctx)
	return s.jobRepo.GetJobByID(ctx, job.ID)
}

// GetJob returns a job with viewer-specific derived fields filled in.
func (s *JobService) GetJob(ctx context.Context, jobID, viewerID uint) (*models.JobPost, error) {
	job, err := s.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := s.decorate(ctx, viewerID, job); err != nil {
		return nil, err
	}
	return job, nil
}

// ListJobs returns jobs newest first. The base list is served cache-aside;
// per-viewer fields (application count, whether the viewer applied) are layered
// on after the cache read so cached entries stay viewer-neutral.
func (s *JobService) ListJobs(ctx context.Context, viewerID uint, limit, offset int) ([]models.JobPost, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var jobs []models.JobPost
	if offset == 0 && limit == 50 {
		err := cache.Aside(ctx, cache.JobListKey, &jobs, cache.JobListTTL, func() error {
			res, ferr := s.jobRepo.ListJobs(ctx, limit, offset)
			if ferr != nil {
				return ferr
			}
			jobs = res
			return nil
		})
		if err != nil {
			return nil, err
		}
	} else {
		var err error
		jobs, err = s.jobRepo.ListJobs(ctx, limit, offset)
		if err != nil {
			return nil, err
		}
	}

	ids := make([]uint, len(jobs))
	for i := range jobs {
		ids[i] = jobs[i].ID
	}
	counts, err := s.jobRepo.CountApplications(ctx, ids)
	if err != nil {
		return nil, err
	}
	applied, err := s.jobRepo.AppliedJobIDs(ctx, viewerID, ids)
	if err != nil {
		return nil, err
	}
	for i := range jobs {
		jobs[i].ApplicationCount = int64(counts[jobs[i].ID])
		jobs[i].UserApplied = applied[jobs[i].ID]
	}
	return jobs, nil
}

// SubmitApplication records one application per applicant per job. The poster
// cannot apply to their own job, and a repeat application is rejected.
func (s *JobService) SubmitApplication(ctx context.Context, jobID, applicantID uint, coverLetter string) (*models.Application, error) {
	job, err := s.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.PostedBy == applicantID {
		return nil, models.NewValidationError("You cannot apply to your own job post")
	}

	existing, err := s.jobRepo.GetApplicationForJobAndUser(ctx, jobID, applicantID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("You have already applied to this job")
	}

	app := &models.Application{
		JobID:       jobID,
		ApplicantID: applicantID,
		Status:      models.ApplicationStatusPending,
		CoverLetter: coverLetter,
	}
	if err := s.jobRepo.CreateApplication(ctx, app); err != nil {
		return nil, err
	}

	if s.announce != nil {
		applicant, uErr := s.userRepo.GetByID(ctx, applicantID)
		if uErr == nil {
			s.announce.ApplicationReceived(ctx, job, applicant, app)
		}
	}

	return app, nil
}

// ListApplicationsForJob returns a job's applications, most recent first.
// Only the poster may see them.
func (s *JobService) ListApplicationsForJob(ctx context.Context, jobID, callerID uint) ([]models.Application, error) {
	job, err := s.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.PostedBy != callerID {
		return nil, models.NewForbiddenError("Only the job poster can view applications")
	}
	return s.jobRepo.ListApplicationsForJob(ctx, jobID)
}

// UpdateApplicationStatus overwrites an application's review status. Only the
// job's poster may do this.
func (s *JobService) UpdateApplicationStatus(ctx context.Context, appID, callerID uint, status models.ApplicationStatus) (*models.Application, error) {
	if !models.ValidApplicationStatus(status) {
		return nil, models.NewValidationError("Invalid application status")
	}

	app, err := s.jobRepo.GetApplicationByID(ctx, appID)
	if err != nil {
		return nil, err
	}
	job, err := s.jobRepo.GetJobByID(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if job.PostedBy != callerID {
		return nil, models.NewForbiddenError("Only the job poster can update application status")
	}

	if err := s.jobRepo.UpdateApplicationStatus(ctx, appID, status); err != nil {
		return nil, err
	}
	return s.jobRepo.GetApplicationByID(ctx, appID)
}

// decorate fills the derived per-viewer fields on a single job.
func (s *JobService) decorate(ctx context.Context, viewerID uint, out *models.JobPost) error {
	ids := []uint{out.ID}
	counts, err := s.jobRepo.CountApplications(ctx, ids)
	if err != nil {
		return err
	}
	applied, err := s.jobRepo.AppliedJobIDs(ctx, viewerID, ids)
	if err != nil {
		return err
	}
	out.ApplicationCount = int64(counts[out.ID])
	out.UserApplied = applied[out.ID]
	return nil
}
