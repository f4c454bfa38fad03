// Package routes wires the HTTP surface: global middleware, the route
// groups, and the trailing 404 handler.
package routes

import (
	"undangan.digital/configs"
	"undangan.digital/pkg/blobstore"
	"undangan.digital/pkg/respond"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"
)

// SetupRoutes registers every route group. The public slug route is
// registered last so explicit prefixes always win.
func SetupRoutes(app *fiber.App, cfg configs.App, store blobstore.BlobStore) {
	app.Use(recoverMiddleware.New())
	app.Use(logger.New())

	registerAuthRoutes(app, cfg)
	registerClientRoutes(app, cfg, store)
	registerGuestbookRoutes(app, cfg)
	registerStaffAppRoutes(app, cfg)
	registerOrderRoutes(app, cfg)
	registerPublicRoutes(app, cfg)

	app.Use(func(c *fiber.Ctx) error {
		return respond.NotFound(c, "resource not found")
	})
}
