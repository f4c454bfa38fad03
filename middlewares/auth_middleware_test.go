package middlewares

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"undangan.digital/pkg/respond"
	"undangan.digital/pkg/token"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "middleware-test-secret"

func newGuardedApp() *fiber.App {
	app := fiber.New()
	app.Get("/client", ClientAuth(secret), func(c *fiber.Ctx) error {
		return respond.OK(c, fiber.Map{"client_id": ClientID(c)})
	})
	app.Get("/staff", StaffAuth(secret), func(c *fiber.Ctx) error {
		return respond.OK(c, fiber.Map{"staff_id": StaffID(c), "event_id": EventID(c)})
	})
	return app
}

func doRequest(t *testing.T, app *fiber.App, path, authorization string) (int, respond.Envelope) {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var envelope respond.Envelope
	require.NoError(t, json.Unmarshal(body, &envelope))
	return resp.StatusCode, envelope
}

func TestClientAuth(t *testing.T) {
	app := newGuardedApp()

	status, envelope := doRequest(t, app, "/client", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.False(t, envelope.Success)
	assert.NotEmpty(t, envelope.Error)

	status, _ = doRequest(t, app, "/client", "Bearer garbage")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doRequest(t, app, "/client", "Basic dXNlcjpwYXNz")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	raw, err := token.NewClientToken(secret, 42, time.Hour)
	require.NoError(t, err)
	status, envelope = doRequest(t, app, "/client", "Bearer "+raw)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, envelope.Success)
}

func TestStaffAuthRejectsClientTokens(t *testing.T) {
	app := newGuardedApp()

	clientToken, err := token.NewClientToken(secret, 42, time.Hour)
	require.NoError(t, err)
	status, _ := doRequest(t, app, "/staff", "Bearer "+clientToken)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	staffToken, err := token.NewStaffToken(secret, 7, 3, 42, time.Hour)
	require.NoError(t, err)
	status, envelope := doRequest(t, app, "/staff", "Bearer "+staffToken)
	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, envelope.Success)

	// and the other direction: staff tokens cannot open client routes
	status, _ = doRequest(t, app, "/client", "Bearer "+staffToken)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestExpiredTokenRejected(t *testing.T) {
	app := newGuardedApp()

	raw, err := token.NewClientToken(secret, 42, -time.Minute)
	require.NoError(t, err)
	status, _ := doRequest(t, app, "/client", "Bearer "+raw)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
