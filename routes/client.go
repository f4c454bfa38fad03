package routes

import (
	"undangan.digital/configs"
	"undangan.digital/handlers/client"
	"undangan.digital/middlewares"
	"undangan.digital/pkg/blobstore"
	"undangan.digital/services"

	"github.com/gofiber/fiber/v2"
)

func registerClientRoutes(app *fiber.App, cfg configs.App, store blobstore.BlobStore) {
	eventHandler := client.NewEventHandler()
	profileHandler := client.NewProfileHandler()
	mediaHandler := client.NewMediaHandler(services.NewMediaService(store))
	registrationHandler := client.NewRegistrationHandler()

	group := app.Group("/client", middlewares.ClientAuth(cfg.JWTSecret))

	group.Get("/profile", profileHandler.GetProfile)
	group.Put("/profile", profileHandler.UpdateProfile)
	group.Put("/profile/password", profileHandler.ChangePassword)

	group.Post("/events", eventHandler.CreateEvent)
	group.Get("/events", eventHandler.ListEvents)
	group.Get("/events/:eventID", eventHandler.GetEvent)
	group.Patch("/events/:eventID", eventHandler.UpdateEvent)
	group.Delete("/events/:eventID", eventHandler.DeleteEvent)

	group.Get("/media", mediaHandler.ListMedia)
	group.Post("/media", mediaHandler.UploadMedia)
	group.Delete("/media/:mediaID", mediaHandler.DeleteMedia)

	group.Get("/registration", registrationHandler.GetRegistration)
	group.Patch("/registration", registrationHandler.UpdateRegistration)
	group.Post("/registration/publish", registrationHandler.Publish)
	group.Post("/registration/unpublish", registrationHandler.Unpublish)
}
