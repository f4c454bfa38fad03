package routes

import (
	"undangan.digital/configs"
	"undangan.digital/handlers/public"

	"github.com/gofiber/fiber/v2"
)

func registerPublicRoutes(app *fiber.App, cfg configs.App) {
	handler := public.NewPublicHandler()

	app.Post("/events/:eventID/walkin", handler.RegisterWalkin)

	// catch-all slug route, registered after every prefixed group
	app.Get("/:slug", handler.Invitation)
}
