// Package public serves the unauthenticated surface: invitation pages by
// slug and on-site walk-in registration.
package public

import (
	"errors"

	"undangan.digital/configs/configslog"
	"undangan.digital/pkg/respond"
	"undangan.digital/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PublicHandler struct {
	registrations services.IRegistrationService
	guests        services.IGuestService
}

func NewPublicHandler() *PublicHandler {
	return &PublicHandler{
		registrations: services.NewRegistrationService(),
		guests:        services.NewGuestService(),
	}
}

// Invitation serves the published invitation content behind a slug.
func (h *PublicHandler) Invitation(c *fiber.Ctx) error {
	registration, err := h.registrations.PublicBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, services.ErrRegistrationNotFound) {
			return respond.NotFound(c, err.Error())
		}
		configslog.Log.Error("Invitation failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.OK(c, registration)
}

// RegisterWalkin lets a guest register themselves at the door.
func (h *PublicHandler) RegisterWalkin(c *fiber.Ctx) error {
	eventID, err := c.ParamsInt("eventID")
	if err != nil || eventID <= 0 {
		return respond.NotFound(c, "guest not found")
	}
	var input services.WalkinRegisterInput
	if err := c.BodyParser(&input); err != nil {
		return respond.BadRequest(c, "malformed request body")
	}
	guest, err := h.guests.RegisterWalkin(c.UserContext(), uint(eventID), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGuestNotFound):
			return respond.NotFound(c, err.Error())
		case errors.Is(err, services.ErrWalkinClosed), errors.Is(err, services.ErrInvitationRequired),
			errors.Is(err, services.ErrGuestInvalidInput):
			return respond.BadRequest(c, err.Error())
		}
		configslog.Log.Error("RegisterWalkin failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.Created(c, guest)
}
