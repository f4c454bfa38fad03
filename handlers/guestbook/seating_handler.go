package guestbook

import (
	"errors"

	"undangan.digital/configs/configslog"
	"undangan.digital/middlewares"
	"undangan.digital/pkg/respond"
	"undangan.digital/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type SeatingHandler struct {
	service services.ISeatingService
}

func NewSeatingHandler() *SeatingHandler {
	return &SeatingHandler{service: services.NewSeatingService()}
}

func (h *SeatingHandler) seatingError(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, services.ErrSeatingNotFound), errors.Is(err, services.ErrGuestNotFound):
		return respond.NotFound(c, err.Error())
	case errors.Is(err, services.ErrSeatingInvalidInput), errors.Is(err, services.ErrSeatingFull),
		errors.Is(err, services.ErrSeatingTypeRejected):
		return respond.BadRequest(c, err.Error())
	}
	configslog.Log.Error(op+" failed", zap.Error(err))
	return respond.Internal(c)
}

func (h *SeatingHandler) CreateSeating(c *fiber.Ctx) error {
	var input services.CreateSeatingInput
	if err := c.BodyParser(&input); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	config, err := h.service.CreateSeating(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"), input)
	if err != nil {
		return h.seatingError(c, "CreateSeating", err)
	}
	return respond.Created(c, config)
}

func (h *SeatingHandler) CreateSeatingBatch(c *fiber.Ctx) error {
	var inputs []services.CreateSeatingInput
	if err := c.BodyParser(&inputs); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	rows, err := h.service.CreateSeatingBatch(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"), inputs)
	if err != nil {
		return h.seatingError(c, "CreateSeatingBatch", err)
	}
	return respond.Created(c, rows)
}

func (h *SeatingHandler) ListSeating(c *fiber.Ctx) error {
	rows, err := h.service.ListSeating(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"))
	if err != nil {
		return h.seatingError(c, "ListSeating", err)
	}
	return respond.OK(c, rows)
}

func (h *SeatingHandler) UpdateSeating(c *fiber.Ctx) error {
	var data map[string]interface{}
	if err := c.BodyParser(&data); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	config, err := h.service.UpdateSeating(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"), paramID(c, "seatingID"), data)
	if err != nil {
		return h.seatingError(c, "UpdateSeating", err)
	}
	return respond.OK(c, config)
}

func (h *SeatingHandler) DeleteSeating(c *fiber.Ctx) error {
	if err := h.service.DeleteSeating(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"), paramID(c, "seatingID")); err != nil {
		return h.seatingError(c, "DeleteSeating", err)
	}
	return respond.OK(c, fiber.Map{"deleted": true})
}

type assignRequest struct {
	SeatingConfigID uint `json:"seating_config_id"`
}

func (h *SeatingHandler) AssignGuest(c *fiber.Ctx) error {
	var req assignRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	guest, err := h.service.AssignGuest(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"), paramID(c, "guestID"), req.SeatingConfigID)
	if err != nil {
		return h.seatingError(c, "AssignGuest", err)
	}
	return respond.OK(c, guest)
}

func (h *SeatingHandler) UnassignGuest(c *fiber.Ctx) error {
	guest, err := h.service.UnassignGuest(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"), paramID(c, "guestID"))
	if err != nil {
		return h.seatingError(c, "UnassignGuest", err)
	}
	return respond.OK(c, guest)
}

func (h *SeatingHandler) AutoAssign(c *fiber.Ctx) error {
	result, err := h.service.AutoAssign(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"))
	if err != nil {
		return h.seatingError(c, "AutoAssign", err)
	}
	return respond.OK(c, result)
}
