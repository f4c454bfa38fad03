package routes

import (
	"undangan.digital/configs"
	"undangan.digital/handlers/auth"

	"github.com/gofiber/fiber/v2"
)

func registerAuthRoutes(app *fiber.App, cfg configs.App) {
	handler := auth.NewAuthHandler(cfg)

	group := app.Group("/auth")
	group.Post("/register", handler.Register)
	group.Post("/login", handler.Login)
	group.Post("/staff/login", handler.StaffLogin)
}
