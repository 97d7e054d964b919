package server

import (
	"pickaside/internal/models"

	"github.com/gofiber/fiber/v2"
)

// StartConversation handles POST /api/conversations. The body names the other
// participant; calling it again for the same pair returns the existing thread.
func (s *Server) StartConversation(c *fiber.Ctx) error {
	var req struct {
		UserID uint `json:"user_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.UserID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("A target user_id is required"))
	}

	conv, err := s.chatService.StartConversation(c.Context(), currentUserID(c), req.UserID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(conv)
}

// GetConversations handles GET /api/conversations
func (s *Server) GetConversations(c *fiber.Ctx) error {
	convs, err := s.chatService.ListConversations(c.Context(), currentUserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(convs)
}

// GetConversation handles GET /api/conversations/:id
func (s *Server) GetConversation(c *fiber.Ctx) error {
	convID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	conv, getErr := s.chatService.GetConversation(c.Context(), convID, currentUserID(c))
	if getErr != nil {
		return serviceError(c, getErr)
	}
	return c.JSON(conv)
}

// GetMessages handles GET /api/conversations/:id/messages
func (s *Server) GetMessages(c *fiber.Ctx) error {
	convID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 50)

	messages, listErr := s.chatService.ListMessages(
		c.Context(), convID, currentUserID(c), p.Limit, p.Offset)
	if listErr != nil {
		return serviceError(c, listErr)
	}
	return c.JSON(messages)
}

// SendMessage handles POST /api/conversations/:id/messages
func (s *Server) SendMessage(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	convID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	msg, sendErr := s.chatService.SendMessage(ctx, convID, userID, req.Content)
	if sendErr != nil {
		return serviceError(c, sendErr)
	}

	// Push the message to the other participant for live chat views.
	if conv, convErr := s.chatRepo.GetConversation(ctx, convID); convErr == nil {
		s.publishUserEvent(conv.OtherParticipantID(userID), EventMessageReceived, map[string]interface{}{
			"conversation_id": convID,
			"message":         msg,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(msg)
}

// MarkConversationRead handles POST /api/conversations/:id/read
func (s *Server) MarkConversationRead(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	convID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	updated, markErr := s.chatService.MarkRead(ctx, convID, userID)
	if markErr != nil {
		return serviceError(c, markErr)
	}

	// Tell the sender their messages were seen.
	if updated > 0 {
		if conv, convErr := s.chatRepo.GetConversation(ctx, convID); convErr == nil {
			s.publishUserEvent(conv.OtherParticipantID(userID), EventConversationRead, map[string]interface{}{
				"conversation_id": convID,
				"read_by":         userID,
			})
		}
	}

	return c.JSON(fiber.Map{"marked_read": updated})
}
