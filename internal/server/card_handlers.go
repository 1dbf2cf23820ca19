package server

import (
	"helios/internal/models"

	"github.com/gofiber/fiber/v2"
)

// UpdateCardPriceRequest carries a manual price override. The price accepts
// either a bare number or a currency display string.
type UpdateCardPriceRequest struct {
	Price string `json:"price"`
}

// GetCards handles GET /api/cards. An empty catalog returns 200 with [].
func (s *Server) GetCards(c *fiber.Ctx) error {
	cards, err := s.siteService.ListCards(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(cards)
}

// GetCard handles GET /api/cards/:id.
func (s *Server) GetCard(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	card, err := s.siteService.GetCard(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(card)
}

// UpdateCardPrice handles PUT /api/cards/:id.
func (s *Server) UpdateCardPrice(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req UpdateCardPriceRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Price == "" {
		return respondError(c, models.NewValidationError("Valid price is required"))
	}

	card, err := s.siteService.UpdatePrice(c.UserContext(), id, req.Price)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Price updated successfully",
		"card":    card,
	})
}
