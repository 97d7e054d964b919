package service

import (
	"context"
	"testing"

	"pickaside/internal/models"
)

type notifRepoStub struct {
	createFn      func(context.Context, *models.Notification) error
	listForUserFn func(context.Context, uint, int, int) ([]models.Notification, error)
	countUnreadFn func(context.Context, uint) (int64, error)
	markReadFn    func(context.Context, uint, uint) error
	markAllReadFn func(context.Context, uint) (int64, error)
}

func (s *notifRepoStub) Create(ctx context.Context, n *models.Notification) error {
	return s.createFn(ctx, n)
}
func (s *notifRepoStub) ListForUser(ctx context.Context, userID uint, limit, offset int) ([]models.Notification, error) {
	return s.listForUserFn(ctx, userID, limit, offset)
}
func (s *notifRepoStub) CountUnread(ctx context.Context, userID uint) (int64, error) {
	return s.countUnreadFn(ctx, userID)
}
func (s *notifRepoStub) MarkRead(ctx context.Context, id, userID uint) error {
	return s.markReadFn(ctx, id, userID)
}
func (s *notifRepoStub) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.markAllReadFn(ctx, userID)
}

func noopNotifRepo() *notifRepoStub {
	return &notifRepoStub{
		createFn:      func(context.Context, *models.Notification) error { return nil },
		listForUserFn: func(context.Context, uint, int, int) ([]models.Notification, error) { return nil, nil },
		countUnreadFn: func(context.Context, uint) (int64, error) { return 0, nil },
		markReadFn:    func(context.Context, uint, uint) error { return nil },
		markAllReadFn: func(context.Context, uint) (int64, error) { return 0, nil },
	}
}

func TestNotificationServiceConnectionRequested(t *testing.T) {
	var saved *models.Notification
	repo := noopNotifRepo()
	repo.createFn = func(_ context.Context, n *models.Notification) error {
		n.ID = 1
		saved = n
		return nil
	}

	svc := NewNotificationService(repo, nil)
	conn := &models.Connection{ID: 8, RequesterID: 1, ReceiverID: 2}
	svc.ConnectionRequested(context.Background(), conn, &models.User{ID: 1, FullName: "Ada Park"})

	if saved == nil {
		t.Fatal("expected a notification row")
	}
	if saved.UserID != 2 {
		t.Fatalf("expected notification for receiver 2, got %d", saved.UserID)
	}
	if saved.Kind != models.NotificationConnectionRequest {
		t.Fatalf("expected kind %s, got %s", models.NotificationConnectionRequest, saved.Kind)
	}
	if saved.RelatedID != 8 {
		t.Fatalf("expected related id 8, got %d", saved.RelatedID)
	}
}

func TestNotificationServiceConnectionAccepted(t *testing.T) {
	var saved *models.Notification
	repo := noopNotifRepo()
	repo.createFn = func(_ context.Context, n *models.Notification) error {
		saved = n
		return nil
	}

	svc := NewNotificationService(repo, nil)
	conn := &models.Connection{ID: 8, RequesterID: 1, ReceiverID: 2, Status: models.ConnectionStatusAccepted}
	svc.ConnectionAccepted(context.Background(), conn, &models.User{ID: 2, FullName: "Ben Ito"})

	if saved == nil {
		t.Fatal("expected a notification row")
	}
	if saved.UserID != 1 {
		t.Fatalf("acceptance should notify the requester, got user %d", saved.UserID)
	}
	if saved.Kind != models.NotificationConnectionAccepted {
		t.Fatalf("expected kind %s, got %s", models.NotificationConnectionAccepted, saved.Kind)
	}
}

func TestNotificationServiceApplicationReceived(t *testing.T) {
	var saved *models.Notification
	repo := noopNotifRepo()
	repo.createFn = func(_ context.Context, n *models.Notification) error {
		saved = n
		return nil
	}

	svc := NewNotificationService(repo, nil)
	job := &models.JobPost{ID: 4, PostedBy: 9, Title: "Data Intern"}
	app := &models.Application{ID: 12, JobID: 4, ApplicantID: 3}
	svc.ApplicationReceived(context.Background(), job, &models.User{ID: 3, FullName: "Cam Lee"}, app)

	if saved == nil {
		t.Fatal("expected a notification row")
	}
	if saved.UserID != 9 {
		t.Fatalf("application should notify the poster, got user %d", saved.UserID)
	}
	if saved.RelatedID != 12 {
		t.Fatalf("expected related id 12, got %d", saved.RelatedID)
	}
}

func TestNotificationServiceDeliverSwallowsRepoError(t *testing.T) {
	repo := noopNotifRepo()
	repo.createFn = func(context.Context, *models.Notification) error {
		return models.NewInternalError(context.DeadlineExceeded)
	}

	// Delivery is best-effort: a persistence failure must not panic or
	// propagate to the caller.
	svc := NewNotificationService(repo, nil)
	svc.MessageReceived(context.Background(), &models.Message{ConversationID: 1}, &models.User{FullName: "Dee"}, 2)
}

func TestNotificationServiceMessageReceivedNoRecipient(t *testing.T) {
	repo := noopNotifRepo()
	repo.createFn = func(context.Context, *models.Notification) error {
		t.Fatal("must not create a notification without a recipient")
		return nil
	}

	svc := NewNotificationService(repo, nil)
	svc.MessageReceived(context.Background(), &models.Message{}, &models.User{}, 0)
}

func TestNotificationServiceList(t *testing.T) {
	repo := noopNotifRepo()
	repo.listForUserFn = func(_ context.Context, userID uint, limit, offset int) ([]models.Notification, error) {
		if limit != 50 {
			t.Fatalf("expected default limit 50, got %d", limit)
		}
		return []models.Notification{{ID: 2, UserID: userID}, {ID: 1, UserID: userID}}, nil
	}
	repo.countUnreadFn = func(context.Context, uint) (int64, error) { return 1, nil }

	svc := NewNotificationService(repo, nil)
	items, unread, err := svc.List(context.Background(), 7, 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 || unread != 1 {
		t.Fatalf("expected 2 items and 1 unread, got %d items and %d unread", len(items), unread)
	}
}
