// Package guestbook is the client-side management surface for an event's
// guestbook: staff accounts, guest lists, guest types and seating.
package guestbook

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

type StaffHandler struct {
	service services.IStaffService
}

func NewStaffHandler() *StaffHandler {
	return &StaffHandler{service: services.NewStaffService()}
}

func (h *StaffHandler) CreateStaff(c *fiber.Ctx) error {
	var input services.CreateStaffInput
	if err := c.BodyParser(&input); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	staff, err := h.service.CreateStaff(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStaffUsernameTaken), errors.Is(err, services.ErrStaffInvalidInput):
			return respond.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrStaffNotFound):
			return respond.NotFound(c, err.Error())
		}
		configslog.Log.Error("CreateStaff failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.Created(c, staff)
}

func (h *StaffHandler) GetStaff(c *fiber.Ctx) error {
	staff, err := h.service.GetStaff(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"), paramID(c, "staffID"))
	if err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			return respond.NotFound(c, err.Error())
		}
		configslog.Log.Error("GetStaff failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.OK(c, staff)
}

func (h *StaffHandler) ListStaff(c *fiber.Ctx) error {
	result, err := h.service.ListStaff(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"), listParams(c))
	if err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			return respond.NotFound(c, err.Error())
		}
		configslog.Log.Error("ListStaff failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.OK(c, result)
}

func (h *StaffHandler) UpdateStaff(c *fiber.Ctx) error {
	var data map[string]interface{}
	if err := c.BodyParser(&data); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	staff, err := h.service.UpdateStaff(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"), paramID(c, "staffID"), data)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrStaffUsernameTaken), errors.Is(err, services.ErrStaffInvalidInput):
			return respond.BadRequest(c, err.Error())
		case errors.Is(err, services.ErrStaffNotFound):
			return respond.NotFound(c, err.Error())
		}
		configslog.Log.Error("UpdateStaff failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.OK(c, staff)
}

func (h *StaffHandler) DeleteStaff(c *fiber.Ctx) error {
	err := h.service.DeleteStaff(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"), paramID(c, "staffID"))
	if err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			return respond.NotFound(c, err.Error())
		}
		configslog.Log.Error("DeleteStaff failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.OK(c, fiber.Map{"deleted": true})
}

func (h *StaffHandler) ListStaffLogs(c *fiber.Ctx) error {
	result, err := h.service.ListStaffLogs(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"), listParams(c))
	if err != nil {
		if errors.Is(err, services.ErrStaffNotFound) {
			return respond.NotFound(c, err.Error())
		}
		configslog.Log.Error("ListStaffLogs failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.OK(c, result)
}
