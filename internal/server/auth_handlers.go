package server

import (
	"helios/internal/models"
	"helios/internal/service"

	"github.com/gofiber/fiber/v2"
)

// RegisterRequest is the signup payload. Field names match the mobile
// client's existing contract.
type RegisterRequest struct {
	Name         string `json:"name"`
	LastName     string `json:"last_name"`
	EmailAddress string `json:"email_address"`
	Password     string `json:"password"`
	JoinedDate   string `json:"joined_date"`
}

// LoginRequest is the username login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// EmailLoginRequest is the email login payload.
type EmailLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordRequest carries a password change.
type ChangePasswordRequest struct {
	UserID          uint   `json:"user_id"`
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UpdateProfileRequest carries a partial profile update.
type UpdateProfileRequest struct {
	ID           uint   `json:"id"`
	Username     string `json:"username"`
	ProfileImage string `json:"profileImage"`
}

// Register handles POST /register (and its legacy alias /addUser).
func (s *Server) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}

	if req.Name == "" || req.LastName == "" || req.EmailAddress == "" || req.Password == "" {
		return respondError(c, models.NewValidationError("Name, last name, email address and password are required"))
	}

	user, err := s.userService.Register(c.UserContext(), service.RegisterInput{
		Name:       req.Name,
		LastName:   req.LastName,
		Email:      req.EmailAddress,
		Password:   req.Password,
		JoinedDate: req.JoinedDate,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login handles POST /login with username credentials.
func (s *Server) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Username == "" || req.Password == "" {
		return respondError(c, models.NewValidationError("Username and password are required"))
	}

	if _, err := s.userService.LoginByUsername(c.UserContext(), req.Username, req.Password); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Login successful",
	})
}

// LoginWithEmail handles POST /loginWithEmail. On success the user record is
// returned with the password hash stripped (json:"-" on the model).
func (s *Server) LoginWithEmail(c *fiber.Ctx) error {
	var req EmailLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if req.Email == "" || req.Password == "" {
		return respondError(c, models.NewValidationError("Email and password are required"))
	}

	user, err := s.userService.LoginByEmail(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":  "Login successful",
		"userData": user,
	})
}

// ChangePassword handles PUT /changePassword.
func (s *Server) ChangePassword(c *fiber.Ctx) error {
	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if req.UserID == 0 || req.CurrentPassword == "" || req.NewPassword == "" {
		return respondError(c, models.NewValidationError("User ID, current password and new password are required"))
	}

	if err := s.userService.ChangePassword(c.UserContext(), req.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Password updated successfully",
	})
}

// UpdateProfile handles PUT /updateProfile.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, models.NewValidationError("Invalid request body"))
	}
	if req.ID == 0 {
		return respondError(c, models.NewValidationError("User ID is required"))
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		UserID:       req.ID,
		Username:     req.Username,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
