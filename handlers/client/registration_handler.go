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

type RegistrationHandler struct {
	service services.IRegistrationService
}

func NewRegistrationHandler() *RegistrationHandler {
	return &RegistrationHandler{service: services.NewRegistrationService()}
}

func (h *RegistrationHandler) GetRegistration(c *fiber.Ctx) error {
	registration, err := h.service.GetMyRegistration(c.UserContext(), middlewares.ClientID(c))
	if err != nil {
		if errors.Is(err, services.ErrRegistrationNotFound) {
			return respond.NotFound(c, err.Error())
		}
		configslog.Log.Error("GetRegistration failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.OK(c, registration)
}

func (h *RegistrationHandler) UpdateRegistration(c *fiber.Ctx) error {
	var data map[string]interface{}
	if err := c.BodyParser(&data); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	registration, err := h.service.UpdateRegistration(c.UserContext(), middlewares.ClientID(c), data)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRegistrationNotFound):
			return respond.NotFound(c, err.Error())
		case errors.Is(err, services.ErrRegistrationInvalidInput):
			return respond.BadRequest(c, err.Error())
		}
		configslog.Log.Error("UpdateRegistration failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.OK(c, registration)
}

func (h *RegistrationHandler) Publish(c *fiber.Ctx) error {
	registration, err := h.service.Publish(c.UserContext(), middlewares.ClientID(c))
	if err != nil {
		if errors.Is(err, services.ErrRegistrationNotFound) {
			return respond.NotFound(c, err.Error())
		}
		configslog.Log.Error("Publish failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.OK(c, registration)
}

func (h *RegistrationHandler) Unpublish(c *fiber.Ctx) error {
	registration, err := h.service.Unpublish(c.UserContext(), middlewares.ClientID(c))
	if err != nil {
		if errors.Is(err, services.ErrRegistrationNotFound) {
			return respond.NotFound(c, err.Error())
		}
		configslog.Log.Error("Unpublish failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.OK(c, registration)
}
