// Package client is the authenticated tenant surface: events, profile,
// media and invitation content.
package client

import (
	"errors"

	"undangan.digital/configs/configslog"
	"undangan.digital/middlewares"
	"undangan.digital/pkg/queryparams"
	"undangan.digital/pkg/respond"
	"undangan.digital/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// paramID parses a positive uint route parameter, 0 when invalid.
func paramID(c *fiber.Ctx, name string) uint {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0
	}
	return uint(id)
}

func listParams(c *fiber.Ctx) queryparams.ListParams {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams(queryparams.DefaultSortBy)
	}
	params.Validate()
	return params
}

type EventHandler struct {
	service services.IEventService
}

func NewEventHandler() *EventHandler {
	return &EventHandler{service: services.NewEventService()}
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var input services.CreateEventInput
	if err := c.BodyParser(&input); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	event, err := h.service.CreateEvent(c.UserContext(), middlewares.ClientID(c), input)
	if err != nil {
		if errors.Is(err, services.ErrEventInvalidInput) {
			return respond.BadRequest(c, err.Error())
		}
		configslog.Log.Error("CreateEvent failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.Created(c, event)
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	event, err := h.service.GetEvent(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"))
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return respond.NotFound(c, err.Error())
		}
		configslog.Log.Error("GetEvent failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.OK(c, event)
}

func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	result, err := h.service.ListEvents(c.UserContext(), middlewares.ClientID(c), listParams(c))
	if err != nil {
		configslog.Log.Error("ListEvents failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.OK(c, result)
}

func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	var data map[string]interface{}
	if err := c.BodyParser(&data); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	event, err := h.service.UpdateEvent(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"), data)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEventNotFound):
			return respond.NotFound(c, err.Error())
		case errors.Is(err, services.ErrEventInvalidInput):
			return respond.BadRequest(c, err.Error())
		}
		configslog.Log.Error("UpdateEvent failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.OK(c, event)
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	err := h.service.DeleteEvent(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"))
	if err != nil {
		if errors.Is(err, services.ErrEventNotFound) {
			return respond.NotFound(c, err.Error())
		}
		configslog.Log.Error("DeleteEvent failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.OK(c, fiber.Map{"deleted": true})
}
