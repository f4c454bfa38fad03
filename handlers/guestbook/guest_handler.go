package guestbook

import (
	"errors"
	"fmt"

	"undangan.digital/configs/configslog"
	"undangan.digital/middlewares"
	"undangan.digital/pkg/respond"
	"undangan.digital/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GuestHandler struct {
	service services.IGuestService
}

func NewGuestHandler() *GuestHandler {
	return &GuestHandler{service: services.NewGuestService()}
}

func (h *GuestHandler) guestError(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, services.ErrGuestNotFound), errors.Is(err, services.ErrGuestTypeNotFound):
		return respond.NotFound(c, err.Error())
	case errors.Is(err, services.ErrGuestInvalidInput):
		return respond.BadRequest(c, err.Error())
	}
	configslog.Log.Error(op+" failed", zap.Error(err))
	return respond.Internal(c)
}

func (h *GuestHandler) CreateGuestType(c *fiber.Ctx) error {
	var input services.CreateGuestTypeInput
	if err := c.BodyParser(&input); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	guestType, err := h.service.CreateGuestType(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"), input)
	if err != nil {
		return h.guestError(c, "CreateGuestType", err)
	}
	return respond.Created(c, guestType)
}

func (h *GuestHandler) ListGuestTypes(c *fiber.Ctx) error {
	rows, err := h.service.ListGuestTypes(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"))
	if err != nil {
		return h.guestError(c, "ListGuestTypes", err)
	}
	return respond.OK(c, rows)
}

func (h *GuestHandler) UpdateGuestType(c *fiber.Ctx) error {
	var data map[string]interface{}
	if err := c.BodyParser(&data); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	guestType, err := h.service.UpdateGuestType(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"), paramID(c, "typeID"), data)
	if err != nil {
		return h.guestError(c, "UpdateGuestType", err)
	}
	return respond.OK(c, guestType)
}

func (h *GuestHandler) DeleteGuestType(c *fiber.Ctx) error {
	if err := h.service.DeleteGuestType(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"), paramID(c, "typeID")); err != nil {
		return h.guestError(c, "DeleteGuestType", err)
	}
	return respond.OK(c, fiber.Map{"deleted": true})
}

func (h *GuestHandler) CreateGuest(c *fiber.Ctx) error {
	var input services.CreateGuestInput
	if err := c.BodyParser(&input); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	guest, err := h.service.CreateGuest(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"), input)
	if err != nil {
		return h.guestError(c, "CreateGuest", err)
	}
	return respond.Created(c, guest)
}

func (h *GuestHandler) GetGuest(c *fiber.Ctx) error {
	guest, err := h.service.GetGuest(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"), paramID(c, "guestID"))
	if err != nil {
		return h.guestError(c, "GetGuest", err)
	}
	return respond.OK(c, guest)
}

func (h *GuestHandler) ListGuests(c *fiber.Ctx) error {
	result, err := h.service.ListGuests(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"), listParams(c))
	if err != nil {
		return h.guestError(c, "ListGuests", err)
	}
	return respond.OK(c, result)
}

func (h *GuestHandler) UpdateGuest(c *fiber.Ctx) error {
	var data map[string]interface{}
	if err := c.BodyParser(&data); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	guest, err := h.service.UpdateGuest(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"), paramID(c, "guestID"), data)
	if err != nil {
		return h.guestError(c, "UpdateGuest", err)
	}
	return respond.OK(c, guest)
}

func (h *GuestHandler) DeleteGuest(c *fiber.Ctx) error {
	if err := h.service.DeleteGuest(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"), paramID(c, "guestID")); err != nil {
		return h.guestError(c, "DeleteGuest", err)
	}
	return respond.OK(c, fiber.Map{"deleted": true})
}

// GuestQRCode streams the guest's pass as a PNG.
func (h *GuestHandler) GuestQRCode(c *fiber.Ctx) error {
	png, err := h.service.GuestQRCodePNG(c.UserContext(), middlewares.ClientID(c), paramID(c, "eventID"), paramID(c, "guestID"))
	if err != nil {
		return h.guestError(c, "GuestQRCode", err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// ExportGuests streams the guest list as a CSV download.
func (h *GuestHandler) ExportGuests(c *fiber.Ctx) error {
	eventID := paramID(c, "eventID")
	data, err := h.service.ExportGuestsCSV(c.UserContext(), middlewares.ClientID(c), eventID)
	if err != nil {
		return h.guestError(c, "ExportGuests", err)
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="guests-event-%d.csv"`, eventID))
	return c.Send(data)
}
