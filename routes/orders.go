package routes

import (
	"undangan.digital/configs"
	"undangan.digital/handlers/orders"
	"undangan.digital/middlewares"

	"github.com/gofiber/fiber/v2"
)

func registerOrderRoutes(app *fiber.App, cfg configs.App) {
	handler := orders.NewOrderHandler()

	// public purchase flow
	public := app.Group("/orders")
	public.Post("/", handler.CreateOrder)
	public.Get("/templates", handler.ListTemplates)
	public.Get("/check-slug", handler.CheckSlug)
	public.Post("/:orderID/payment-proof", handler.SubmitPaymentProof)

	// admin verification flow
	admin := app.Group("/admin/orders", middlewares.ClientAuth(cfg.JWTSecret))
	admin.Get("/", handler.ListOrders)
	admin.Get("/:orderID", handler.GetOrder)
	admin.Post("/:orderID/verify", handler.VerifyOrder)
	admin.Post("/:orderID/reject", handler.RejectOrder)
	admin.Post("/:orderID/cancel", handler.CancelOrder)
	admin.Post("/:orderID/expire", handler.ExpireOrder)
}
