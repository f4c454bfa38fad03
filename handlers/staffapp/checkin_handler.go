// Package staffapp is the surface used by door staff at the event: guest
// lookup, check-in, benefit redemption and live stats.
package staffapp

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

type CheckinHandler struct {
	service services.ICheckinService
}

func NewCheckinHandler() *CheckinHandler {
	return &CheckinHandler{service: services.NewCheckinService()}
}

func (h *CheckinHandler) checkinError(c *fiber.Ctx, op string, err error) error {
	switch {
	case errors.Is(err, services.ErrCheckinGuestNotFound):
		return respond.NotFound(c, err.Error())
	case errors.Is(err, services.ErrCheckinForbidden):
		return respond.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrCheckinStaffInvalid):
		return respond.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrCheckinInvalidInput):
		return respond.BadRequest(c, err.Error())
	}
	configslog.Log.Error(op+" failed", zap.Error(err))
	return respond.Internal(c)
}

func (h *CheckinHandler) CheckinByID(c *fiber.Ctx) error {
	var input services.CheckinInput
	if err := c.BodyParser(&input); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	guest, err := h.service.CheckinByID(c.UserContext(), middlewares.StaffID(c), middlewares.EventID(c), paramID(c, "guestID"), input)
	if err != nil {
		return h.checkinError(c, "CheckinByID", err)
	}
	return respond.OK(c, guest)
}

type qrCheckinRequest struct {
	QRToken          string `json:"qr_token"`
	ActualCompanions *int   `json:"actual_companions"`
	Notes            string `json:"notes"`
}

func (h *CheckinHandler) CheckinByQR(c *fiber.Ctx) error {
	var req qrCheckinRequest
	if err := c.BodyParser(&req); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	input := services.CheckinInput{ActualCompanions: req.ActualCompanions, Notes: req.Notes}
	guest, err := h.service.CheckinByQR(c.UserContext(), middlewares.StaffID(c), middlewares.EventID(c), req.QRToken, input)
	if err != nil {
		return h.checkinError(c, "CheckinByQR", err)
	}
	return respond.OK(c, guest)
}

func (h *CheckinHandler) Redeem(c *fiber.Ctx) error {
	var input services.RedeemInput
	if err := c.BodyParser(&input); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	entry, err := h.service.Redeem(c.UserContext(), middlewares.StaffID(c), middlewares.EventID(c), paramID(c, "guestID"), input)
	if err != nil {
		return h.checkinError(c, "Redeem", err)
	}
	return respond.Created(c, entry)
}

func (h *CheckinHandler) SearchGuests(c *fiber.Ctx) error {
	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams(queryparams.DefaultSortBy)
	}
	params.Validate()
	result, err := h.service.SearchGuests(c.UserContext(), middlewares.EventID(c), params)
	if err != nil {
		return h.checkinError(c, "SearchGuests", err)
	}
	return respond.OK(c, result)
}

func (h *CheckinHandler) GuestHistory(c *fiber.Ctx) error {
	rows, err := h.service.GuestHistory(c.UserContext(), middlewares.EventID(c), paramID(c, "guestID"))
	if err != nil {
		return h.checkinError(c, "GuestHistory", err)
	}
	return respond.OK(c, rows)
}

func (h *CheckinHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.service.Stats(c.UserContext(), middlewares.EventID(c))
	if err != nil {
		return h.checkinError(c, "Stats", err)
	}
	return respond.OK(c, stats)
}
