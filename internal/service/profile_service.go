package service

import (
	"context"
	"strings"

	"pickaside/internal/cache"
	"pickaside/internal/models"
	"pickaside/internal/repository"
)

// UpdateProfileInput carries the editable profile fields. Nil pointers leave
// the stored value untouched.
type UpdateProfileInput struct {
	FullName          *string  `json:"full_name"`
	StudentID         *string  `json:"student_id"`
	Phone             *string  `json:"phone"`
	Bio               *string  `json:"bio"`
	Location          *string  `json:"location"`
	Major             *string  `json:"major"`
	GraduationYear    *int     `json:"graduation_year"`
	GPA               *float64 `json:"gpa"`
	LinkedinURL       *string  `json:"linkedin_url"`
	GithubURL         *string  `json:"github_url"`
	PortfolioURL      *string  `json:"portfolio_url"`
	Interests         []string `json:"interests"`
	MarkSetupComplete bool     `json:"mark_setup_complete"`
}

// PersonView is a directory entry: another user's profile plus the viewer's
// relationship with them.
type PersonView struct {
	models.UserSummary
	Bio              string         `json:"bio"`
	Location         string         `json:"location"`
	Interests        []string       `json:"interests"`
	ConnectionStatus RelationStatus `json:"connection_status"`
}

// ProfileService provides profile and people-directory business logic.
type ProfileService struct {
	userRepo repository.UserRepository
	connRepo repository.ConnectionRepository
}

// NewProfileService returns a new ProfileService.
func NewProfileService(userRepo repository.UserRepository, connRepo repository.ConnectionRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo, connRepo: connRepo}
}

// Get returns a user's full profile, cache-aside by user ID.
func (s *ProfileService) Get(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := cache.Aside(ctx, cache.UserKey(userID), &user, cache.UserTTL, func() error {
		u, ferr := s.userRepo.GetByID(ctx, userID)
		if ferr != nil {
			return ferr
		}
		user = *u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies the provided profile fields and replaces the interest set
// when one is given.
func (s *ProfileService) Update(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, models.NewValidationError("Full name cannot be empty")
		}
		user.FullName = name
	}
	if in.StudentID != nil {
		user.StudentID = *in.StudentID
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.Location != nil {
		user.Location = *in.Location
	}
	if in.Major != nil {
		user.Major = *in.Major
	}
	if in.GraduationYear != nil {
		user.GraduationYear = in.GraduationYear
	}
	if in.GPA != nil {
		if *in.GPA < 0 || *in.GPA > 4.0 {
			return nil, models.NewValidationError("GPA must be between 0.0 and 4.0")
		}
		user.GPA = in.GPA
	}
	if in.LinkedinURL != nil {
		user.LinkedinURL = *in.LinkedinURL
	}
	if in.GithubURL != nil {
		user.GithubURL = *in.GithubURL
	}
	if in.PortfolioURL != nil {
		user.PortfolioURL = *in.PortfolioURL
	}
	if in.MarkSetupComplete {
		user.IsProfileComplete = true
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	if in.Interests != nil {
		interests := make([]models.UserInterest, 0, len(in.Interests))
		for _, v := range in.Interests {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			interests = append(interests, models.UserInterest{Value: v})
		}
		if err := s.userRepo.ReplaceInterests(ctx, userID, interests); err != nil {
			return nil, err
		}
	}

	cache.InvalidateUser(ctx, userID)
	return s.userRepo.GetByID(ctx, userID)
}

// SetAvatarURL stores the uploaded profile picture location.
func (s *ProfileService) SetAvatarURL(ctx context.Context, userID uint, url string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.ProfilePictureURL = url
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}

// SetResumeURL stores the uploaded resume location.
func (s *ProfileService) SetResumeURL(ctx context.Context, userID uint, url string) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	user.ResumeURL = url
	if err := s.userRepo.Update(ctx, user); err != nil {
		return err
	}
	cache.InvalidateUser(ctx, userID)
	return nil
}

// ListPeople returns the directory of other users, each annotated with the
// viewer's relationship status.
func (s *ProfileService) ListPeople(ctx context.Context, viewerID uint, limit int) ([]PersonView, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}
	users, err := s.userRepo.ListOthers(ctx, viewerID, limit)
	if err != nil {
		return nil, err
	}

	conns, err := s.connRepo.ListForUser(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	byOther := make(map[uint]*models.Connection, len(conns))
	for i := range conns {
		c := &conns[i]
		other := c.RequesterID
		if other == viewerID {
			other = c.ReceiverID
		}
		byOther[other] = c
	}

	people := make([]PersonView, 0, len(users))
	for i := range users {
		u := &users[i]
		interests := make([]string, 0, len(u.Interests))
		for _, it := range u.Interests {
			interests = append(interests, it.Value)
		}
		people = append(people, PersonView{
			UserSummary:      u.Summary(),
			Bio:              u.Bio,
			Location:         u.Location,
			Interests:        interests,
			ConnectionStatus: ComputeStatus(viewerID, u.ID, byOther[u.ID]),
		})
	}
	return people, nil
}
