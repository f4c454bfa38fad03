// Package middlewares holds the Fiber middleware that guards the API
// surface: bearer-token authentication for clients and event staff.
package middlewares

import (
	"strings"

	"undangan.digital/pkg/respond"
	"undangan.digital/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// Locals keys set by the auth middleware.
const (
	LocalClientID = "clientID"
	LocalStaffID  = "staffID"
	LocalEventID  = "eventID"
)

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// ClientAuth admits requests carrying a valid client token and stores the
// client id in locals.
func ClientAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return respond.Unauthorized(c, "missing bearer token")
		}
		claims, err := token.Parse(secret, raw)
		if err != nil || claims.Kind != token.KindClient || claims.ClientID == 0 {
			return respond.Unauthorized(c, "invalid or expired token")
		}
		c.Locals(LocalClientID, claims.ClientID)
		return c.Next()
	}
}

// StaffAuth admits requests carrying a valid staff token. The event id
// baked into the token pre-scopes every downstream query.
func StaffAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return respond.Unauthorized(c, "missing bearer token")
		}
		claims, err := token.Parse(secret, raw)
		if err != nil || claims.Kind != token.KindStaff || claims.StaffID == 0 || claims.EventID == 0 {
			return respond.Unauthorized(c, "invalid or expired token")
		}
		c.Locals(LocalStaffID, claims.StaffID)
		c.Locals(LocalEventID, claims.EventID)
		c.Locals(LocalClientID, claims.ClientID)
		return c.Next()
	}
}

// ClientID reads the authenticated client id from locals.
func ClientID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalClientID).(uint)
	return id
}

// StaffID reads the authenticated staff id from locals.
func StaffID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalStaffID).(uint)
	return id
}

// EventID reads the staff token's event scope from locals.
func EventID(c *fiber.Ctx) uint {
	id, _ := c.Locals(LocalEventID).(uint)
	return id
}
