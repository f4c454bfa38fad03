package client

import (
	"errors"
	"strconv"

	"undangan.digital/configs/configslog"
	"undangan.digital/middlewares"
	"undangan.digital/models"
	"undangan.digital/pkg/respond"
	"undangan.digital/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type MediaHandler struct {
	service services.IMediaService
}

func NewMediaHandler(service services.IMediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

func (h *MediaHandler) ListMedia(c *fiber.Ctx) error {
	mediaType := models.MediaType(c.Query("type"))
	rows, err := h.service.ListMedia(c.UserContext(), middlewares.ClientID(c), mediaType)
	if err != nil {
		if errors.Is(err, services.ErrMediaInvalidInput) {
			return respond.BadRequest(c, err.Error())
		}
		configslog.Log.Error("ListMedia failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.OK(c, rows)
}

// UploadMedia accepts a multipart form with a "file" part plus a "type"
// field, and an optional "event_id".
func (h *MediaHandler) UploadMedia(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return respond.BadRequest(c, "a file part named \"file\" is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		configslog.Log.Error("UploadMedia: open failed", zap.Error(err))
		return respond.Internal(c)
	}
	defer file.Close()

	input := services.UploadMediaInput{
		MediaType: models.MediaType(c.FormValue("type")),
		FileName:  fileHeader.Filename,
		MimeType:  fileHeader.Header.Get("Content-Type"),
		SizeBytes: fileHeader.Size,
		Body:      file,
	}
	if raw := c.FormValue("event_id"); raw != "" {
		eventID, convErr := strconv.Atoi(raw)
		if convErr != nil || eventID <= 0 {
			return respond.BadRequest(c, "event_id must be a positive integer")
		}
		id := uint(eventID)
		input.EventID = &id
	}

	media, err := h.service.UploadMedia(c.UserContext(), middlewares.ClientID(c), input)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrMediaQuotaExceeded), errors.Is(err, services.ErrMediaInvalidInput):
			return respond.BadRequest(c, err.Error())
		}
		configslog.Log.Error("UploadMedia failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.Created(c, media)
}

func (h *MediaHandler) DeleteMedia(c *fiber.Ctx) error {
	err := h.service.DeleteMedia(c.UserContext(), middlewares.ClientID(c), paramID(c, "mediaID"))
	if err != nil {
		if errors.Is(err, services.ErrMediaNotFound) {
			return respond.NotFound(c, err.Error())
		}
		configslog.Log.Error("DeleteMedia failed", zap.Error(err))
		return respond.Internal(c)
	}
	return respond.OK(c, fiber.Map{"deleted": true})
}
