package server

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// SendConnectionRequest handles POST /api/connections/requests/:userId
func (s *Server) SendConnectionRequest(c *fiber.Ctx) error {
	ctx := c.Context()
	userID := currentUserID(c)
	targetUserID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	conn, reqErr := s.connectionService.RequestConnection(ctx, userID, targetUserID)
	if reqErr != nil {
		return serviceError(c, reqErr)
	}

	// Reload with both profiles for the response and events.
	conn, getErr := s.connRepo.GetByID(ctx, conn.ID)
	if getErr != nil {
		return serviceError(c, getErr)
	}

	// Notify both users so UI updates immediately.
	s.publishUserEvent(conn.ReceiverID, EventConnectionRequestReceived, map[string]interface{}{
		"request_id": conn.ID,
		"from_user":  userSummary(conn.Requester),
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	s.publishUserEvent(conn.RequesterID, EventConnectionRequestSent, map[string]interface{}{
		"request_id": conn.ID,
		"to_user":    userSummary(conn.Receiver),
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})

	return c.Status(fiber.StatusCreated).JSON(conn)
}

// GetPendingRequests handles GET /api/connections/requests
func (s *Server) GetPendingRequests(c *fiber.Ctx) error {
	requests, err := s.connectionService.PendingReceived(c.Context(), currentUserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(requests)
}

// GetSentRequests handles GET /api/connections/requests/sent
func (s *Server) GetSentRequests(c *fiber.Ctx) error {
	requests, err := s.connectionService.PendingSent(c.Context(), currentUserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(requests)
}

// AcceptConnectionRequest handles POST /api/connections/requests/:requestId/accept
func (s *Server) AcceptConnectionRequest(c *fiber.Ctx) error {
	return s.respondToRequest(c, true)
}

// DeclineConnectionRequest handles POST /api/connections/requests/:requestId/decline
func (s *Server) DeclineConnectionRequest(c *fiber.Ctx) error {
	return s.respondToRequest(c, false)
}

func (s *Server) respondToRequest(c *fiber.Ctx, accept bool) error {
	ctx := c.Context()
	userID := currentUserID(c)
	requestID, err := s.parseID(c, "requestId")
	if err != nil {
		return nil
	}

	conn, respErr := s.connectionService.RespondToConnection(ctx, requestID, userID, accept)
	if respErr != nil {
		return serviceError(c, respErr)
	}

	if accept {
		s.publishUserEvent(conn.RequesterID, EventConnectionRequestAccepted, map[string]interface{}{
			"request_id": conn.ID,
			"by_user":    userSummary(conn.Receiver),
		})
	} else {
		s.publishUserEvent(conn.RequesterID, EventConnectionRequestDeclined, map[string]interface{}{
			"request_id": conn.ID,
		})
	}

	return c.JSON(conn)
}

// GetConnections handles GET /api/connections
func (s *Server) GetConnections(c *fiber.Ctx) error {
	users, err := s.connectionService.Connections(c.Context(), currentUserID(c))
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"connections": users})
}

// GetConnectionStatus handles GET /api/connections/status/:userId
func (s *Server) GetConnectionStatus(c *fiber.Ctx) error {
	userID := currentUserID(c)
	otherID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	status, stErr := s.connectionService.StatusWith(c.Context(), userID, otherID)
	if stErr != nil {
		return serviceError(c, stErr)
	}
	return c.JSON(fiber.Map{"status": status})
}
