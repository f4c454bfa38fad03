package main

import (
	"undangan.digital/configs"
	"undangan.digital/configs/configsdatabase"
	"undangan.digital/configs/configslog"
	"undangan.digital/pkg/blobstore"
	"undangan.digital/routes"
	"undangan.digital/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	configs.LoadEnv()
	cfg := configs.LoadApp()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()

	store, err := blobstore.NewDiskStore(cfg.MediaDir, cfg.PublicBaseURL)
	if err != nil {
		configslog.Log.Fatal("media store init failed", zap.Error(err))
	}

	// BodyLimit leaves headroom above the per-file upload cap so multipart
	// framing never rejects an otherwise valid upload.
	app := fiber.New(fiber.Config{
		BodyLimit: services.MaxUploadBytes + 1<<20,
	})
	app.Static("/media", cfg.MediaDir)
	routes.SetupRoutes(app, cfg, store)

	configslog.SLog.Infof("listening on :%s", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		configslog.Log.Fatal("server stopped", zap.Error(err))
	}
}
