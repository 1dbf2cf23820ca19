package server

import (
	"helios/internal/models"
	"helios/internal/money"
	"helios/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateInvestmentRequest is the funding ledger payload. AmountInvested
// accepts a bare number or a currency display string. The idempotency key
// may arrive in the Idempotency-Key header or in the body.
type CreateInvestmentRequest struct {
	UserID         uint   `json:"user_id"`
	CardID         uint   `json:"card_id"`
	AmountInvested string `json:"amount_invested"`
	InvestmentDate string `json:"investment_date"`
	IdempotencyKey string `json:"idempotency_key"`
}

// CreateInvestment handles POST /api/investments. A replayed idempotency key
// answers 200 with the original record; a fresh investment answers 201.
func (s *Server) CreateInvestment(c *fiber.Ctx) error {
	var req CreateInvestmentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	if req.UserID == 0 || req.CardID == 0 {
		return respondError(c, models.NewValidationError("User ID and card ID are required"))
	}

	amount, ok := money.Parse(req.AmountInvested)
	if !ok {
		return respondError(c, models.NewValidationError("A positive amount with at most two decimal places is required"))
	}

	key := c.Get("Idempotency-Key")
	if key == "" {
		key = req.IdempotencyKey
	}

	result, err := s.investmentService.Invest(c.UserContext(), service.InvestInput{
		UserID:         req.UserID,
		SiteID:         req.CardID,
		Amount:         amount,
		InvestmentDate: req.InvestmentDate,
		IdempotencyKey: key,
	})
	if err != nil {
		return respondError(c, err)
	}

	status := fiber.StatusCreated
	message := "Investment recorded successfully"
	if result.Replayed {
		status = fiber.StatusOK
		message = "Investment already recorded"
	}

	return c.Status(status).JSON(fiber.Map{
		"message":    message,
		"investment": result.Investment.View(),
		"card":       result.Site.View(),
	})
}

// GetPortfolio handles GET /api/portfolio/:userId.
func (s *Server) GetPortfolio(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	portfolio, err := s.investmentService.Portfolio(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(portfolio)
}
