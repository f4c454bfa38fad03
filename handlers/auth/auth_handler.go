// Package auth exposes login and self-registration endpoints for clients
// and event staff.
package auth

import (
	"errors"

	"undangan.digital/configs"
	"undangan.digital/configs/configslog"
	"undangan.digital/pkg/respond"
	"undangan.digital/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	service services.IAuthService
}

func NewAuthHandler(cfg configs.App) *AuthHandler {
	return &AuthHandler{service: services.NewAuthService(cfg)}
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
}

type clientLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type staffLoginRequest struct {
	EventID  uint   `json:"event_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// Register creates a new tenant account.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	client, err := h.service.RegisterClient(c.UserContext(), services.RegisterClientInput{
		Username: req.Username,
		Password: req.Password,
		Email:    req.Email,
		Name:     req.Name,
		Slug:     req.Slug,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken), errors.Is(err, services.ErrSlugTaken),
			errors.Is(err, services.ErrAuthInvalidInput):
			return respond.BadRequest(c, err.Error())
		}
		configslog.Log.Error("Register failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.Created(c, client)
}

// Login authenticates a tenant owner and returns a bearer token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req clientLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	result, err := h.service.LoginClient(c.UserContext(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrAccountDisabled):
			return respond.Unauthorized(c, err.Error())
		}
		configslog.Log.Error("Login failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.OK(c, result)
}

// StaffLogin authenticates an event staff member.
func (h *AuthHandler) StaffLogin(c *fiber.Ctx) error {
	var req staffLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	result, err := h.service.LoginStaff(c.UserContext(), req.EventID, req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrAccountDisabled):
			return respond.Unauthorized(c, err.Error())
		}
		configslog.Log.Error("StaffLogin failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.OK(c, result)
}
