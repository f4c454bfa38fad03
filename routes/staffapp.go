package routes

import (
	"undangan.digital/configs"
	"undangan.digital/handlers/staffapp"
	"undangan.digital/middlewares"

	"github.com/gofiber/fiber/v2"
)

func registerStaffAppRoutes(app *fiber.App, cfg configs.App) {
	handler := staffapp.NewCheckinHandler()

	group := app.Group("/staff", middlewares.StaffAuth(cfg.JWTSecret))

	group.Get("/guests", handler.SearchGuests)
	group.Get("/guests/:guestID/history", handler.GuestHistory)
	group.Post("/guests/:guestID/checkin", handler.CheckinByID)
	group.Post("/checkin/qr", handler.CheckinByQR)
	group.Post("/guests/:guestID/redeem", handler.Redeem)
	group.Get("/stats", handler.Stats)
}
