package server

import (
	"time"

	"pickaside/internal/models"

	"github.com/gofiber/fiber/v2"
)

type createJobRequest struct {
	Title               string     `json:"title" validate:"required,min=2,max=200"`
	Company             string     `json:"company" validate:"required,min=1,max=200"`
	Location            string     `json:"location"`
	JobType             string     `json:"job_type"`
	Industry            string     `json:"industry"`
	Description         string     `json:"description"`
	Requirements        string     `json:"requirements"`
	SalaryRange         string     `json:"salary_range"`
	HoursPerWeek        string     `json:"hours_per_week"`
	ApplicationDeadline *time.Time `json:"application_deadline"`
}

// CreateJob handles POST /api/jobs
func (s *Server) CreateJob(c *fiber.Ctx) error {
	var req createJobRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if err := validate.Struct(req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	job := &models.JobPost{
		PostedBy:            currentUserID(c),
		Title:               req.Title,
		Company:             req.Company,
		Location:            req.Location,
		JobType:             req.JobType,
		Industry:            req.Industry,
		Description:         req.Description,
		Requirements:        req.Requirements,
		SalaryRange:         req.SalaryRange,
		HoursPerWeek:        req.HoursPerWeek,
		ApplicationDeadline: req.ApplicationDeadline,
	}

	created, err := s.jobService.CreateJob(c.Context(), job)
	if err != nil {
		return serviceError(c, err)
	}

	s.publishBroadcastEvent(EventJobPosted, map[string]interface{}{
		"job_id":  created.ID,
		"title":   created.Title,
		"company": created.Company,
	})

	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetJobs handles GET /api/jobs
func (s *Server) GetJobs(c *fiber.Ctx) error {
	p := parsePagination(c, 50)
	jobs, err := s.jobService.ListJobs(c.Context(), currentUserID(c), p.Limit, p.Offset)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"jobs": jobs})
}

// GetJob handles GET /api/jobs/:id
func (s *Server) GetJob(c *fiber.Ctx) error {
	jobID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	job, getErr := s.jobService.GetJob(c.Context(), jobID, currentUserID(c))
	if getErr != nil {
		return serviceError(c, getErr)
	}
	return c.JSON(job)
}

// ApplyToJob handles POST /api/jobs/:id/apply
func (s *Server) ApplyToJob(c *fiber.Ctx) error {
	jobID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		CoverLetter string `json:"cover_letter"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	app, appErr := s.jobService.SubmitApplication(
		c.Context(), jobID, currentUserID(c), req.CoverLetter)
	if appErr != nil {
		return serviceError(c, appErr)
	}
	return c.Status(fiber.StatusCreated).JSON(app)
}

// GetJobApplications handles GET /api/jobs/:id/applications (poster only)
func (s *Server) GetJobApplications(c *fiber.Ctx) error {
	jobID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	apps, listErr := s.jobService.ListApplicationsForJob(c.Context(), jobID, currentUserID(c))
	if listErr != nil {
		return serviceError(c, listErr)
	}
	return c.JSON(fiber.Map{"applications": apps})
}

// UpdateApplicationStatus handles PUT /api/applications/:id/status (poster only)
func (s *Server) UpdateApplicationStatus(c *fiber.Ctx) error {
	appID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Status models.ApplicationStatus `json:"status"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	app, updErr := s.jobService.UpdateApplicationStatus(
		c.Context(), appID, currentUserID(c), req.Status)
	if updErr != nil {
		return serviceError(c, updErr)
	}

	// Let the applicant know their application moved.
	s.publishUserEvent(app.ApplicantID, EventApplicationStatusUpdated, map[string]interface{}{
		"application_id": app.ID,
		"job_id":         app.JobID,
		"status":         app.Status,
	})

	return c.JSON(app)
}
