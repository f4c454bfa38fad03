package client

import (
	"errors"

	"undangan.digital/configs/configslog"
	"undangan.digital/middlewares"
	"undangan.digital/pkg/respond"
	"undangan.digital/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type ProfileHandler struct {
	service services.IClientService
}

func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{service: services.NewClientService()}
}

func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.service.GetProfile(c.UserContext(), middlewares.ClientID(c))
	if err != nil {
		if errors.Is(err, services.ErrClientNotFound) {
			return respond.NotFound(c, err.Error())
		}
		configslog.Log.Error("GetProfile failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.OK(c, profile)
}

func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	var data map[string]interface{}
	if err := c.BodyParser(&data); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	profile, err := h.service.UpdateProfile(c.UserContext(), middlewares.ClientID(c), data)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrClientNotFound):
			return respond.NotFound(c, err.Error())
		case errors.Is(err, services.ErrClientInvalidInput):
			return respond.BadRequest(c, err.Error())
		}
		configslog.Log.Error("UpdateProfile failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.OK(c, profile)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func (h *ProfileHandler) ChangePassword(c *fiber.Ctx) error {
	var req changePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	err := h.service.ChangePassword(c.UserContext(), middlewares.ClientID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrWrongPassword), errors.Is(err, services.ErrClientInvalidInput):
			return respond.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrClientNotFound):
			return respond.NotFound(c, err.Error())
		}
		configslog.Log.Error("ChangePassword failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.OK(c, fiber.Map{"changed": true})
}
