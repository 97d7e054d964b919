package service

import (
	"context"

	"pickaside/internal/models"
	"pickaside/internal/repository"
)

// RelationStatus is the viewer-facing state of the relationship between two
// users, derived from the underlying connection row.
type RelationStatus string

const (
	// RelationNone means no connection row exists between the pair.
	RelationNone RelationStatus = "none"
	// RelationPending means a request exists and has not been answered.
	RelationPending RelationStatus = "pending"
	// RelationConnected means the request was accepted.
	RelationConnected RelationStatus = "connected"
	// RelationDeclined means the request was declined.
	RelationDeclined RelationStatus = "declined"
)

// ComputeStatus derives the relationship status between two users from their
// connection row, if any. The result is symmetric: swapping the arguments
// never changes it, no matter which side sent the request.
func ComputeStatus(a, b uint, conn *models.Connection) RelationStatus {
	if conn == nil || !conn.Touches(a) || !conn.Touches(b) {
		return RelationNone
	}
	switch conn.Status {
	case models.ConnectionStatusAccepted:
		return RelationConnected
	case models.ConnectionStatusDeclined:
		return RelationDeclined
	case models.ConnectionStatusPending:
		return RelationPending
	}
	return RelationNone
}

// ConnectionService provides connection graph business logic.
type ConnectionService struct {
	connRepo repository.ConnectionRepository
	userRepo repository.UserRepository
	announce Announcer
}

// NewConnectionService returns a new ConnectionService. announce may be nil.
func NewConnectionService(
	connRepo repository.ConnectionRepository,
	userRepo repository.UserRepository,
	announce Announcer,
) *ConnectionService {
	return &ConnectionService{connRepo: connRepo, userRepo: userRepo, announce: announce}
}

// RequestConnection creates a pending connection from requester to receiver.
// A second request between the same pair is rejected whichever side sent the
// first, and whatever its status.
func (s *ConnectionService) RequestConnection(ctx context.Context, requesterID, receiverID uint) (*models.Connection, error) {
	if requesterID == receiverID {
		return nil, models.NewValidationError("Cannot send a connection request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, receiverID); err != nil {
		return nil, err
	}

	existing, err := s.connRepo.GetBetweenUsers(ctx, requesterID, receiverID)
	if err != nil && !models.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("A connection already exists between these users")
	}

	conn := &models.Connection{
		RequesterID: requesterID,
		ReceiverID:  receiverID,
		Status:      models.ConnectionStatusPending,
	}
	if err := s.connRepo.Create(ctx, conn); err != nil {
		return nil, err
	}

	if s.announce != nil {
		requester, uErr := s.userRepo.GetByID(ctx, requesterID)
		if uErr == nil {
			s.announce.ConnectionRequested(ctx, conn, requester)
		}
	}

	return conn, nil
}

// RespondToConnection accepts or declines a pending request. Only the receiver
// may respond, and only while the request is still pending.
func (s *ConnectionService) RespondToConnection(ctx context.Context, connectionID, responderID uint, accept bool) (*models.Connection, error) {
	conn, err := s.connRepo.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if conn.ReceiverID != responderID {
		return nil, models.NewForbiddenError("Only the receiver can respond to this request")
	}
	if conn.Status != models.ConnectionStatusPending {
		return nil, models.NewConflictError("This request has already been answered")
	}

	status := models.ConnectionStatusDeclined
	if accept {
		status = models.ConnectionStatusAccepted
	}
	if err := s.connRepo.UpdateStatus(ctx, connectionID, status); err != nil {
		return nil, err
	}

	updated, err := s.connRepo.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}

	if accept && s.announce != nil {
		receiver, uErr := s.userRepo.GetByID(ctx, responderID)
		if uErr == nil {
			s.announce.ConnectionAccepted(ctx, updated, receiver)
		}
	}

	return updated, nil
}

// StatusWith returns the viewer's relationship status with another user.
func (s *ConnectionService) StatusWith(ctx context.Context, viewerID, otherID uint) (RelationStatus, error) {
	if viewerID == otherID {
		return RelationNone, nil
	}
	conn, err := s.connRepo.GetBetweenUsers(ctx, viewerID, otherID)
	if err != nil {
		if models.IsNotFound(err) {
			return RelationNone, nil
		}
		return RelationNone, err
	}
	return ComputeStatus(viewerID, otherID, conn), nil
}

// PendingReceived lists requests awaiting the user's response.
func (s *ConnectionService) PendingReceived(ctx context.Context, userID uint) ([]models.Connection, error) {
	return s.connRepo.GetPendingReceived(ctx, userID)
}

// PendingSent lists the user's outstanding requests.
func (s *ConnectionService) PendingSent(ctx context.Context, userID uint) ([]models.Connection, error) {
	return s.connRepo.GetPendingSent(ctx, userID)
}

// Connections lists the users this user is connected with.
func (s *ConnectionService) Connections(ctx context.Context, userID uint) ([]models.User, error) {
	return s.connRepo.GetConnectedUsers(ctx, userID)
}

// AreConnected reports whether the two users have an accepted connection.
func (s *ConnectionService) AreConnected(ctx context.Context, a, b uint) (bool, error) {
	status, err := s.StatusWith(ctx, a, b)
	if err != nil {
		return false, err
	}
	return status == RelationConnected, nil
}
