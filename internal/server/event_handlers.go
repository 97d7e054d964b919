package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetEvents handles GET /api/events
func (s *Server) GetEvents(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	events, err := s.eventService.ListUpcoming(c.Context(), p.Limit)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"events": events})
}
