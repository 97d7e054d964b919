package service

import (
	"context"
	"testing"
	"time"

	"pickaside/internal/models"
)

type jobRepoStub struct {
	createJobFn         func(context.Context, *models.JobPost) error
	getJobByIDFn        func(context.Context, uint) (*models.JobPost, error)
	listJobsFn          func(context.Context, int, int) ([]models.JobPost, error)
	createApplicationFn func(context.Context, *models.Application) error
	getApplicationFn    func(context.Context, uint) (*models.Application, error)
	getAppForJobAndUser func(context.Context, uint, uint) (*models.Application, error)
	listAppsForJobFn    func(context.Context, uint) ([]models.Application, error)
	updateAppStatusFn   func(context.Context, uint, models.ApplicationStatus) error
	countApplicationsFn func(context.Context, []uint) (map[uint]int, error)
	appliedJobIDsFn     func(context.Context, uint, []uint) (map[uint]bool, error)
}

func (s *jobRepoStub) CreateJob(ctx context.Context, job *models.JobPost) error {
	return s.createJobFn(ctx, job)
}
func (s *jobRepoStub) GetJobByID(ctx context.Context, id uint) (*models.JobPost, error) {
	return s.getJobByIDFn(ctx, id)
}
func (s *jobRepoStub) ListJobs(ctx context.Context, limit, offset int) ([]models.JobPost, error) {
	return s.listJobsFn(ctx, limit, offset)
}
func (s *jobRepoStub) CreateApplication(ctx context.Context, app *models.Application) error {
	return s.createApplicationFn(ctx, app)
}
func (s *jobRepoStub) GetApplicationByID(ctx context.Context, id uint) (*models.Application, error) {
	return s.getApplicationFn(ctx, id)
}
func (s *jobRepoStub) GetApplicationForJobAndUser(ctx context.Context, jobID, applicantID uint) (*models.Application, error) {
	return s.getAppForJobAndUser(ctx, jobID, applicantID)
}
func (s *jobRepoStub) ListApplicationsForJob(ctx context.Context, jobID uint) ([]models.Application, error) {
	return s.listAppsForJobFn(ctx, jobID)
}
func (s *jobRepoStub) UpdateApplicationStatus(ctx context.Context, id uint, status models.ApplicationStatus) error {
	return s.updateAppStatusFn(ctx, id, status)
}
func (s *jobRepoStub) CountApplications(ctx context.Context, jobIDs []uint) (map[uint]int, error) {
	return s.countApplicationsFn(ctx, jobIDs)
}
func (s *jobRepoStub) AppliedJobIDs(ctx context.Context, applicantID uint, jobIDs []uint) (map[uint]bool, error) {
	return s.appliedJobIDsFn(ctx, applicantID, jobIDs)
}

func noopJobRepo() *jobRepoStub {
	return &jobRepoStub{
		createJobFn: func(context.Context, *models.JobPost) error { return nil },
		getJobByIDFn: func(ctx context.Context, id uint) (*models.JobPost, error) {
			return &models.JobPost{ID: id, PostedBy: 1, Title: "Backend Intern", Company: "Acme"}, nil
		},
		listJobsFn:          func(context.Context, int, int) ([]models.JobPost, error) { return nil, nil },
		createApplicationFn: func(context.Context, *models.Application) error { return nil },
		getApplicationFn: func(ctx context.Context, id uint) (*models.Application, error) {
			return &models.Application{ID: id, JobID: 1, ApplicantID: 2, Status: models.ApplicationStatusPending}, nil
		},
		getAppForJobAndUser: func(context.Context, uint, uint) (*models.Application, error) { return nil, nil },
		listAppsForJobFn:    func(context.Context, uint) ([]models.Application, error) { return nil, nil },
		updateAppStatusFn:   func(context.Context, uint, models.ApplicationStatus) error { return nil },
		countApplicationsFn: func(context.Context, []uint) (map[uint]int, error) { return map[uint]int{}, nil },
		appliedJobIDsFn:     func(context.Context, uint, []uint) (map[uint]bool, error) { return map[uint]bool{}, nil },
	}
}

func TestJobServiceCreateJobValidation(t *testing.T) {
	svc := NewJobService(noopJobRepo(), noopUserRepo(), nil)

	_, err := svc.CreateJob(context.Background(), &models.JobPost{Company: "Acme", PostedBy: 1})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")

	_, err = svc.CreateJob(context.Background(), &models.JobPost{Title: "  ", Company: "Acme", PostedBy: 1})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")

	_, err = svc.CreateJob(context.Background(), &models.JobPost{Title: "Intern", PostedBy: 1})
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestJobServiceApplyToOwnJob(t *testing.T) {
	svc := NewJobService(noopJobRepo(), noopUserRepo(), nil)
	_, err := svc.SubmitApplication(context.Background(), 1, 1, "")
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestJobServiceApplyTwice(t *testing.T) {
	repo := noopJobRepo()
	repo.getAppForJobAndUser = func(context.Context, uint, uint) (*models.Application, error) {
		return &models.Application{ID: 7, JobID: 1, ApplicantID: 2}, nil
	}

	svc := NewJobService(repo, noopUserRepo(), nil)
	_, err := svc.SubmitApplication(context.Background(), 1, 2, "still interested")
	assertAppErrorCode(t, err, "CONFLICT")
}

func TestJobServiceListApplicationsPosterOnly(t *testing.T) {
	svc := NewJobService(noopJobRepo(), noopUserRepo(), nil)
	_, err := svc.ListApplicationsForJob(context.Background(), 1, 2)
	assertAppErrorCode(t, err, "FORBIDDEN")
}

func TestJobServiceUpdateStatusPosterOnly(t *testing.T) {
	svc := NewJobService(noopJobRepo(), noopUserRepo(), nil)
	_, err := svc.UpdateApplicationStatus(context.Background(), 5, 2, models.ApplicationStatusAccepted)
	assertAppErrorCode(t, err, "FORBIDDEN")
}

func TestJobServiceUpdateStatusInvalid(t *testing.T) {
	svc := NewJobService(noopJobRepo(), noopUserRepo(), nil)
	_, err := svc.UpdateApplicationStatus(context.Background(), 5, 1, models.ApplicationStatus("hired"))
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

// TestJobServiceApplicationLifecycle walks the full flow: an applicant applies,
// the poster is notified, the poster accepts, and the updated status shows up
// in the poster's application list with the newest application first.
func TestJobServiceApplicationLifecycle(t *testing.T) {
	var apps []models.Application
	repo := noopJobRepo()
	repo.createApplicationFn = func(_ context.Context, app *models.Application) error {
		app.ID = uint(len(apps) + 1)
		app.AppliedAt = time.Now().Add(time.Duration(len(apps)) * time.Minute)
		apps = append(apps, *app)
		return nil
	}
	repo.getAppForJobAndUser = func(_ context.Context, jobID, applicantID uint) (*models.Application, error) {
		for i := range apps {
			if apps[i].JobID == jobID && apps[i].ApplicantID == applicantID {
				return &apps[i], nil
			}
		}
		return nil, nil
	}
	repo.getApplicationFn = func(_ context.Context, id uint) (*models.Application, error) {
		for i := range apps {
			if apps[i].ID == id {
				copied := apps[i]
				return &copied, nil
			}
		}
		return nil, models.NewNotFoundError("Application", id)
	}
	repo.updateAppStatusFn = func(_ context.Context, id uint, status models.ApplicationStatus) error {
		for i := range apps {
			if apps[i].ID == id {
				apps[i].Status = status
				return nil
			}
		}
		return models.NewNotFoundError("Application", id)
	}
	repo.listAppsForJobFn = func(_ context.Context, jobID uint) ([]models.Application, error) {
		// Newest application first, matching the repository ordering.
		var out []models.Application
		for i := len(apps) - 1; i >= 0; i-- {
			if apps[i].JobID == jobID {
				out = append(out, apps[i])
			}
		}
		return out, nil
	}
	announce := &announcerStub{}

	svc := NewJobService(repo, noopUserRepo(), announce)
	ctx := context.Background()

	first, err := svc.SubmitApplication(ctx, 1, 2, "cover letter")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Status != models.ApplicationStatusPending {
		t.Fatalf("expected pending status, got %s", first.Status)
	}
	if len(announce.applied) != 1 || announce.applied[0] != 1 {
		t.Fatalf("expected application notification for poster 1, got %v", announce.applied)
	}

	if _, err := svc.SubmitApplication(ctx, 1, 3, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	updated, err := svc.UpdateApplicationStatus(ctx, first.ID, 1, models.ApplicationStatusAccepted)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != models.ApplicationStatusAccepted {
		t.Fatalf("expected accepted status, got %s", updated.Status)
	}

	listed, err := svc.ListApplicationsForJob(ctx, 1, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 applications, got %d", len(listed))
	}
	if listed[0].ApplicantID != 3 {
		t.Fatalf("expected newest application first, got applicant %d", listed[0].ApplicantID)
	}
	if listed[1].Status != models.ApplicationStatusAccepted {
		t.Fatalf("expected updated status in the list, got %s", listed[1].Status)
	}
}
