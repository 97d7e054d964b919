// Package seed provides database seeding utilities for development and testing.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"pickaside/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Options configures the seeder.
type Options struct {
	NumUsers    int
	NumJobs     int
	NumEvents   int
	ShouldClean bool
}

var majors = []string{
	"Computer Science", "Mechanical Engineering", "Electrical Engineering",
	"Business Administration", "Biology", "Psychology", "Economics",
	"Mathematics", "Nursing", "Political Science", "Graphic Design",
}

var interestPool = []string{
	"Hackathons", "Robotics", "Machine Learning", "Web Development",
	"Basketball", "Photography", "Entrepreneurship", "Music Production",
	"Volunteering", "Esports", "Climbing", "Research", "Study Groups",
}

var jobTypes = []string{"internship", "part-time", "full-time", "research"}

// Run populates the database with demo users, connections, conversations,
// jobs and events.
func Run(db *gorm.DB, opts Options) error {
	gofakeit.Seed(time.Now().UnixNano())
	r := rand.New(rand.NewSource(time.Now().UnixNano()))

	if opts.NumUsers <= 0 {
		opts.NumUsers = 25
	}
	if opts.NumJobs <= 0 {
		opts.NumJobs = 10
	}
	if opts.NumEvents <= 0 {
		opts.NumEvents = 8
	}

	if opts.ShouldClean {
		if err := clean(db); err != nil {
			return err
		}
	}

	users, err := seedUsers(db, r, opts.NumUsers)
	if err != nil {
		return err
	}
	if err := seedConnections(db, r, users); err != nil {
		return err
	}
	if err := seedConversations(db, r, users); err != nil {
		return err
	}
	if err := seedJobs(db, r, users, opts.NumJobs); err != nil {
		return err
	}
	if err := seedEvents(db, r, opts.NumEvents); err != nil {
		return err
	}

	log.Printf("Seeded %d users, %d jobs, %d events", opts.NumUsers, opts.NumJobs, opts.NumEvents)
	return nil
}

func clean(db *gorm.DB) error {
	tables := []string{
		"notifications", "applications", "job_posts", "messages",
		"conversations", "connections", "user_interests", "events", "users",
	}
	for _, t := range tables {
		if err := db.Exec("DELETE FROM " + t).Error; err != nil {
			return fmt.Errorf("clean %s: %w", t, err)
		}
	}
	return nil
}

func seedUsers(db *gorm.DB, r *rand.Rand, n int) ([]models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		year := 2026 + r.Intn(4)
		gpa := 2.0 + r.Float64()*2.0
		user := models.User{
			Email:             fmt.Sprintf("student%d@%s", i+1, "campus.edu"),
			Password:          string(hashed),
			FullName:          gofakeit.Name(),
			StudentID:         fmt.Sprintf("S%07d", r.Intn(10000000)),
			Phone:             gofakeit.Phone(),
			Bio:               gofakeit.Sentence(12),
			Location:          gofakeit.City(),
			Major:             majors[r.Intn(len(majors))],
			GraduationYear:    &year,
			GPA:               &gpa,
			IsProfileComplete: true,
		}
		if err := db.Create(&user).Error; err != nil {
			return nil, err
		}

		for _, idx := range r.Perm(len(interestPool))[:3] {
			interest := models.UserInterest{UserID: user.ID, Value: interestPool[idx]}
			if err := db.Create(&interest).Error; err != nil {
				return nil, err
			}
		}
		users = append(users, user)
	}
	return users, nil
}

func seedConnections(db *gorm.DB, r *rand.Rand, users []models.User) error {
	for i := range users {
		for j := i + 1; j < len(users); j++ {
			if r.Float64() > 0.2 {
				continue
			}
			status := models.ConnectionStatusAccepted
			var respondedAt *time.Time
			switch r.Intn(4) {
			case 0:
				status = models.ConnectionStatusPending
			case 1:
				status = models.ConnectionStatusDeclined
			}
			if status != models.ConnectionStatusPending {
				t := time.Now().Add(-time.Duration(r.Intn(72)) * time.Hour)
				respondedAt = &t
			}
			conn := models.Connection{
				RequesterID: users[i].ID,
				ReceiverID:  users[j].ID,
				Status:      status,
				RespondedAt: respondedAt,
			}
			if err := db.Create(&conn).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func seedConversations(db *gorm.DB, r *rand.Rand, users []models.User) error {
	var accepted []models.Connection
	if err := db.Where("status = ?", models.ConnectionStatusAccepted).Find(&accepted).Error; err != nil {
		return err
	}

	for _, conn := range accepted {
		if r.Float64() > 0.6 {
			continue
		}
		low, high := models.OrderedPair(conn.RequesterID, conn.ReceiverID)
		conv := models.Conversation{ParticipantLowID: low, ParticipantHighID: high}
		if err := db.Create(&conv).Error; err != nil {
			return err
		}

		participants := []uint{low, high}
		for m := 0; m < 2+r.Intn(8); m++ {
			msg := models.Message{
				ConversationID: conv.ID,
				SenderID:       participants[r.Intn(2)],
				Content:        gofakeit.Sentence(6 + r.Intn(10)),
				IsRead:         r.Float64() < 0.7,
			}
			if err := db.Create(&msg).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func seedJobs(db *gorm.DB, r *rand.Rand, users []models.User, n int) error {
	for i := 0; i < n; i++ {
		poster := users[r.Intn(len(users))]
		deadline := time.Now().AddDate(0, 0, 14+r.Intn(60))
		job := models.JobPost{
			PostedBy:            poster.ID,
			Title:               gofakeit.JobTitle(),
			Company:             gofakeit.Company(),
			Location:            gofakeit.City(),
			JobType:             jobTypes[r.Intn(len(jobTypes))],
			Industry:            gofakeit.BuzzWord(),
			Description:         gofakeit.Paragraph(1, 3, 8, "\n"),
			Requirements:        gofakeit.Paragraph(1, 2, 6, "\n"),
			SalaryRange:         fmt.Sprintf("$%d-%d/hr", 15+r.Intn(15), 35+r.Intn(30)),
			HoursPerWeek:        fmt.Sprintf("%d", 10+r.Intn(30)),
			ApplicationDeadline: &deadline,
		}
		if err := db.Create(&job).Error; err != nil {
			return err
		}

		// A few applications per job, never from the poster.
		for a := 0; a < r.Intn(4); a++ {
			applicant := users[r.Intn(len(users))]
			if applicant.ID == poster.ID {
				continue
			}
			app := models.Application{
				JobID:       job.ID,
				ApplicantID: applicant.ID,
				Status:      models.ApplicationStatusPending,
				CoverLetter: gofakeit.Paragraph(1, 2, 6, "\n"),
			}
			// Ignore duplicate pair errors from random applicant picks.
			_ = db.Create(&app).Error
		}
	}
	return nil
}

func seedEvents(db *gorm.DB, r *rand.Rand, n int) error {
	for i := 0; i < n; i++ {
		start := time.Now().AddDate(0, 0, 1+r.Intn(45))
		event := models.Event{
			Title:       gofakeit.Sentence(4),
			Description: gofakeit.Paragraph(1, 2, 6, "\n"),
			Location:    gofakeit.City(),
			EventDate:   start,
		}
		if err := db.Create(&event).Error; err != nil {
			return err
		}
	}
	return nil
}
