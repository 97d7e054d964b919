// Package service provides application business logic (connections, chat, jobs, profiles).
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"pickaside/internal/middleware"
	"pickaside/internal/models"
	"pickaside/internal/notifications"
	"pickaside/internal/repository"
)

// Announcer delivers user-facing notifications for domain events. Delivery is
// best-effort: implementations log failures and never surface them, so the
// triggering operation commits regardless.
type Announcer interface {
	ConnectionRequested(ctx context.Context, conn *models.Connection, requester *models.User)
	ConnectionAccepted(ctx context.Context, conn *models.Connection, receiver *models.User)
	ApplicationReceived(ctx context.Context, job *models.JobPost, applicant *models.User, app *models.Application)
	MessageReceived(ctx context.Context, msg *models.Message, sender *models.User, recipientID uint)
}

// NotificationService persists notifications and fans them out over the
// realtime channel.
type NotificationService struct {
	repo     repository.NotificationRepository
	notifier *notifications.Notifier
}

// NewNotificationService returns a new NotificationService. The notifier may
// be nil when realtime delivery is unavailable.
func NewNotificationService(repo repository.NotificationRepository, notifier *notifications.Notifier) *NotificationService {
	return &NotificationService{repo: repo, notifier: notifier}
}

// List returns the user's notifications, newest first, with the unread total.
func (s *NotificationService) List(ctx context.Context, userID uint, limit, offset int) ([]models.Notification, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	items, err := s.repo.ListForUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	return items, unread, nil
}

// MarkRead marks a single notification as read for its owner.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) error {
	return s.repo.MarkRead(ctx, id, userID)
}

// MarkAllRead marks every unread notification for the user and returns the
// number updated.
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) (int64, error) {
	return s.repo.MarkAllRead(ctx, userID)
}

// ConnectionRequested notifies the receiver of a new pending connection.
func (s *NotificationService) ConnectionRequested(ctx context.Context, conn *models.Connection, requester *models.User) {
	s.deliver(ctx, &models.Notification{
		UserID:    conn.ReceiverID,
		Kind:      models.NotificationConnectionRequest,
		Title:     "New connection request",
		Message:   fmt.Sprintf("%s sent you a connection request", requester.FullName),
		RelatedID: conn.ID,
	})
}

// ConnectionAccepted notifies the original requester that the other side
// accepted.
func (s *NotificationService) ConnectionAccepted(ctx context.Context, conn *models.Connection, receiver *models.User) {
	s.deliver(ctx, &models.Notification{
		UserID:    conn.RequesterID,
		Kind:      models.NotificationConnectionAccepted,
		Title:     "Connection accepted",
		Message:   fmt.Sprintf("%s accepted your connection request", receiver.FullName),
		RelatedID: conn.ID,
	})
}

// ApplicationReceived notifies the job poster about a new application.
func (s *NotificationService) ApplicationReceived(ctx context.Context, job *models.JobPost, applicant *models.User, app *models.Application) {
	s.deliver(ctx, &models.Notification{
		UserID:    job.PostedBy,
		Kind:      models.NotificationJobApplication,
		Title:     "New application",
		Message:   fmt.Sprintf("%s applied to %s", applicant.FullName, job.Title),
		RelatedID: app.ID,
	})
}

// MessageReceived notifies the recipient of a new direct message.
func (s *NotificationService) MessageReceived(ctx context.Context, msg *models.Message, sender *models.User, recipientID uint) {
	if recipientID == 0 {
		return
	}
	s.deliver(ctx, &models.Notification{
		UserID:    recipientID,
		Kind:      models.NotificationMessage,
		Title:     "New message",
		Message:   fmt.Sprintf("New message from %s", sender.FullName),
		RelatedID: msg.ConversationID,
	})
}

// deliver writes the notification row and publishes it to the owner's realtime
// channel. Failures are logged and swallowed.
func (s *NotificationService) deliver(ctx context.Context, n *models.Notification) {
	if err := s.repo.Create(ctx, n); err != nil {
		slog.Error("failed to persist notification",
			"user_id", n.UserID, "kind", n.Kind, "error", err)
		return
	}
	middleware.NotificationsCreated.WithLabelValues(string(n.Kind)).Inc()

	if s.notifier == nil {
		return
	}
	payload, err := json.Marshal(map[string]any{
		"type":    string(n.Kind),
		"payload": n,
	})
	if err != nil {
		slog.Error("failed to encode notification payload", "error", err)
		return
	}
	if err := s.notifier.PublishUser(ctx, n.UserID, string(payload)); err != nil {
		slog.Warn("failed to publish notification",
			"user_id", n.UserID, "kind", n.Kind, "error", err)
	}
}
