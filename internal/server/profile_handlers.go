package server

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"pickaside/internal/models"
	"pickaside/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.profileService.Get(c.Context(), currentUserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var in service.UpdateProfileInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.profileService.Update(c.Context(), currentUserID(c), in)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(user)
}

// CompleteProfileSetup handles POST /api/users/me/setup. It applies the setup
// form in one shot and flips the profile-complete flag.
func (s *Server) CompleteProfileSetup(c *fiber.Ctx) error {
	var in service.UpdateProfileInput
	if err := c.BodyParser(&in); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	in.MarkSetupComplete = true

	user, err := s.profileService.Update(c.Context(), currentUserID(c), in)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.profileService.Get(c.Context(), userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(user)
}

// GetPeople handles GET /api/users: the directory of other students annotated
// with the viewer's connection status.
func (s *Server) GetPeople(c *fiber.Ctx) error {
	p := parsePagination(c, 100)
	people, err := s.profileService.ListPeople(c.Context(), currentUserID(c), p.Limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"people": people})
}

// UploadAvatar handles POST /api/users/me/avatar
func (s *Server) UploadAvatar(c *fiber.Ctx) error {
	return s.handleUpload(c, "avatar", []string{".jpg", ".jpeg", ".png", ".webp"},
		s.profileService.SetAvatarURL)
}

// UploadResume handles POST /api/users/me/resume
func (s *Server) UploadResume(c *fiber.Ctx) error {
	return s.handleUpload(c, "resume", []string{".pdf", ".doc", ".docx"},
		s.profileService.SetResumeURL)
}

// handleUpload streams a multipart file to the storage provider and records
// the resulting URL on the caller's profile.
func (s *Server) handleUpload(
	c *fiber.Ctx,
	field string,
	allowedExts []string,
	store func(ctx context.Context, userID uint, url string) error,
) error {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(fmt.Sprintf("Missing %q file field", field)))
	}
	if fileHeader.Size > maxUploadBytes {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("File is too large"))
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	allowed := false
	for _, e := range allowedExts {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unsupported file type"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	defer src.Close()

	userID := currentUserID(c)
	filename := fmt.Sprintf("%s/%d/%s%s", field, userID, uuid.New().String(), ext)
	contentType := fileHeader.Header.Get("Content-Type")

	url, err := s.storage.Upload(c.Context(), filename, src, fileHeader.Size, contentType)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	if err := store(c.Context(), userID, url); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"url": url})
}
