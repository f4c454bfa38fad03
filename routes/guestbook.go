package routes

import (
	"undangan.digital/configs"
	"undangan.digital/handlers/guestbook"
	"undangan.digital/middlewares"

	"github.com/gofiber/fiber/v2"
)

func registerGuestbookRoutes(app *fiber.App, cfg configs.App) {
	staffHandler := guestbook.NewStaffHandler()
	guestHandler := guestbook.NewGuestHandler()
	seatingHandler := guestbook.NewSeatingHandler()

	group := app.Group("/client/events/:eventID", middlewares.ClientAuth(cfg.JWTSecret))

	group.Post("/staff", staffHandler.CreateStaff)
	group.Get("/staff", staffHandler.ListStaff)
	group.Get("/staff/:staffID", staffHandler.GetStaff)
	group.Patch("/staff/:staffID", staffHandler.UpdateStaff)
	group.Delete("/staff/:staffID", staffHandler.DeleteStaff)
	group.Get("/staff-logs", staffHandler.ListStaffLogs)

	group.Post("/guest-types", guestHandler.CreateGuestType)
	group.Get("/guest-types", guestHandler.ListGuestTypes)
	group.Patch("/guest-types/:typeID", guestHandler.UpdateGuestType)
	group.Delete("/guest-types/:typeID", guestHandler.DeleteGuestType)

	group.Post("/guests", guestHandler.CreateGuest)
	group.Get("/guests", guestHandler.ListGuests)
	group.Get("/guests/export", guestHandler.ExportGuests)
	group.Get("/guests/:guestID", guestHandler.GetGuest)
	group.Patch("/guests/:guestID", guestHandler.UpdateGuest)
	group.Delete("/guests/:guestID", guestHandler.DeleteGuest)
	group.Get("/guests/:guestID/qr", guestHandler.GuestQRCode)

	group.Post("/seating", seatingHandler.CreateSeating)
	group.Post("/seating/batch", seatingHandler.CreateSeatingBatch)
	group.Get("/seating", seatingHandler.ListSeating)
	group.Patch("/seating/:seatingID", seatingHandler.UpdateSeating)
	group.Delete("/seating/:seatingID", seatingHandler.DeleteSeating)
	group.Post("/seating/auto-assign", seatingHandler.AutoAssign)
	group.Post("/guests/:guestID/seating", seatingHandler.AssignGuest)
	group.Delete("/guests/:guestID/seating", seatingHandler.UnassignGuest)
}
