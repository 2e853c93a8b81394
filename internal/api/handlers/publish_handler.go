package handlers

import (
	"errors"
	"io"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"postpilot/internal/service"
)

type PublishHandler struct {
	s service.PublisherService
}

func NewPublishHandler(service service.PublisherService) *PublishHandler {
	return &PublishHandler{s: service}
}

// PublishNow publishes one item immediately. Unlike the sweep, the raw
// error message is surfaced to the caller.
func (h *PublishHandler) PublishNow(c *fiber.Ctx) error {
	userID := GetUserID(c)

	postID, _ := strconv.ParseInt(c.FormValue("post_id"), 10, 64)
	content := c.FormValue("content")

	var upload *service.MediaSource
	if form, err := c.MultipartForm(); err == nil {
		if files := form.File["media"]; len(files) > 0 {
			file, err := files[0].Open()
			if err == nil {
				data, err := io.ReadAll(file)
				file.Close()
				if err == nil {
					mimeType := files[0].Header.Get("Content-Type")
					if mimeType == "" {
						mimeType = "image/jpeg"
					}
					upload = &service.MediaSource{Data: data, MimeType: mimeType}
				}
			}
		}
	}

	remoteID, err := h.s.PublishNow(c.Context(), userID, postID, content, upload)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotConnected):
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "LinkedIn not connected. Please reconnect your account.",
			})
		case errors.Is(err, service.ErrPostNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Post not found",
			})
		case errors.Is(err, service.ErrEmptyContent):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Post content is required",
			})
		}
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":          true,
		"linkedin_post_id": remoteID,
	})
}
