package service

import (
	"context"
	"log/slog"
	"strings"

	"pickaside/internal/models"
	"pickaside/internal/repository"
)

const maxMessageLength = 4000

// ChatService provides conversation and message business logic.
type ChatService struct {
	chatRepo repository.ChatRepository
	userRepo repository.UserRepository
	// areConnected gates conversation creation on an accepted connection.
	areConnected func(ctx context.Context, a, b uint) (bool, error)
	announce     Announcer
}

// NewChatService returns a new ChatService. areConnected and announce may be
// nil; a nil areConnected skips the connection gate.
func NewChatService(
	chatRepo repository.ChatRepository,
	userRepo repository.UserRepository,
	areConnected func(ctx context.Context, a, b uint) (bool, error),
	announce Announcer,
) *ChatService {
	return &ChatService{
		chatRepo:     chatRepo,
		userRepo:     userRepo,
		areConnected: areConnected,
		announce:     announce,
	}
}

// StartConversation returns the single conversation between the caller and the
// other user, creating it on first use. Both callers of a concurrent first use
// receive the same conversation.
func (s *ChatService) StartConversation(ctx context.Context, userID, otherID uint) (*models.Conversation, error) {
	if userID == otherID {
		return nil, models.NewValidationError("Cannot start a conversation with yourself")
	}
	if _, err := s.userRepo.GetByID(ctx, otherID); err != nil {
		return nil, err
	}
	if s.areConnected != nil {
		ok, err := s.areConnected(ctx, userID, otherID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, models.NewForbiddenError("You can only message users you are connected with")
		}
	}

	conv, _, err := s.chatRepo.FindOrCreateConversation(ctx, userID, otherID)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, conv, userID)
}

// GetConversation returns a conversation the caller participates in.
func (s *ChatService) GetConversation(ctx context.Context, convID, userID uint) (*models.Conversation, error) {
	conv, err := s.chatRepo.GetConversation(ctx, convID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, models.NewForbiddenError("You are not a participant in this conversation")
	}
	return s.enrich(ctx, conv, userID)
}

// ListConversations returns the caller's conversations, most recently active
// first, each carrying the other participant, last message and unread count.
func (s *ChatService) ListConversations(ctx context.Context, userID uint) ([]*models.Conversation, error) {
	convs, err := s.chatRepo.GetUserConversations(ctx, userID)
	if err != nil {
		return nil, err
	}
	for _, conv := range convs {
		if _, err := s.enrich(ctx, conv, userID); err != nil {
			return nil, err
		}
	}
	return convs, nil
}

// SendMessage appends a message to the conversation ledger. Content is trimmed
// and must be non-empty; messages are immutable once written.
func (s *ChatService) SendMessage(ctx context.Context, convID, senderID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, models.NewValidationError("Message content cannot be empty")
	}
	if len(content) > maxMessageLength {
		return nil, models.NewValidationError("Message content is too long")
	}

	conv, err := s.chatRepo.GetConversation(ctx, convID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(senderID) {
		return nil, models.NewForbiddenError("You are not a participant in this conversation")
	}

	msg := &models.Message{
		ConversationID: convID,
		SenderID:       senderID,
		Content:        content,
	}
	if err := s.chatRepo.CreateMessage(ctx, msg); err != nil {
		return nil, err
	}

	// Activity bump keeps conversation lists sorted by recency. Losing it
	// does not lose the message.
	if err := s.chatRepo.TouchConversation(ctx, convID); err != nil {
		slog.Warn("failed to bump conversation activity",
			"conversation_id", convID, "error", err)
	}

	if s.announce != nil {
		sender, uErr := s.userRepo.GetByID(ctx, senderID)
		if uErr == nil {
			s.announce.MessageReceived(ctx, msg, sender, conv.OtherParticipantID(senderID))
		}
	}

	return msg, nil
}

// ListMessages returns messages oldest first. Send order within the
// conversation is authoritative: sent_at ascending with id as tie-break.
func (s *ChatService) ListMessages(ctx context.Context, convID, userID uint, limit, offset int) ([]*models.Message, error) {
	conv, err := s.chatRepo.GetConversation(ctx, convID)
	if err != nil {
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, models.NewForbiddenError("You are not a participant in this conversation")
	}
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.chatRepo.GetMessages(ctx, convID, limit, offset)
}

// MarkRead flags every unread message from the other participant as read.
// Calling it again is harmless. Returns the number of messages updated.
func (s *ChatService) MarkRead(ctx context.Context, convID, readerID uint) (int64, error) {
	conv, err := s.chatRepo.GetConversation(ctx, convID)
	if err != nil {
		return 0, err
	}
	if !conv.HasParticipant(readerID) {
		return 0, models.NewForbiddenError("You are not a participant in this conversation")
	}
	return s.chatRepo.MarkConversationRead(ctx, convID, readerID)
}

// enrich fills the derived per-viewer fields on a conversation.
func (s *ChatService) enrich(ctx context.Context, conv *models.Conversation, viewerID uint) (*models.Conversation, error) {
	otherID := conv.OtherParticipantID(viewerID)
	other, err := s.userRepo.GetByID(ctx, otherID)
	if err != nil && !models.IsNotFound(err) {
		return nil, err
	}
	if other != nil {
		sum := other.Summary()
		conv.OtherUser = &sum
	}

	last, err := s.chatRepo.GetLastMessage(ctx, conv.ID)
	if err != nil {
		return nil, err
	}
	conv.LastMessage = last

	unread, err := s.chatRepo.CountUnread(ctx, conv.ID, viewerID)
	if err != nil {
		return nil, err
	}
	conv.UnreadCount = unread
	return conv, nil
}
