package handlers

import (
	"errors"
	"log/slog"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"postpilot/internal/service"
	"postpilot/internal/transfer"
)

type PostHandler struct {
	s service.PostService
}

func NewPostHandler(service service.PostService) *PostHandler {
	return &PostHandler{s: service}
}

func (h *PostHandler) CreatePost(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var media *multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil {
		if files := form.File["media"]; len(files) > 0 {
			media = files[0]
		}
	}

	pc := transfer.PostCreation{
		Content:     c.FormValue("content"),
		Language:    c.FormValue("language"),
		Topic:       c.FormValue("topic"),
		Tone:        c.FormValue("tone"),
		TargetRole:  c.FormValue("target_role"),
		Industry:    c.FormValue("industry"),
		Status:      c.FormValue("status"),
		ScheduledAt: c.FormValue("scheduled_at"),
	}

	postID, err := h.s.CreatePost(c.Context(), userID, &pc, media)
	if err != nil {
		if errors.Is(err, service.ErrEmptyContent) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Post created successfully",
		"post_id": postID,
	})
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID := c.QueryInt("id", 0)

	if postID != 0 {
		post, err := h.s.PostInfo(c.Context(), int64(postID), userID)
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Post not found",
			})
		}

		return c.Status(fiber.StatusOK).JSON(post)
	}

	posts, err := h.s.List(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list posts",
		})
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	userID := GetUserID(c)
	postID := c.QueryInt("id", 0)

	err := h.s.Remove(c.Context(), userID, int64(postID))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Post not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove post",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *PostHandler) Stats(c *fiber.Ctx) error {
	userID := GetUserID(c)

	stats, err := h.s.Stats(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to fetch stats",
		})
	}

	return c.Status(fiber.StatusOK).JSON(stats)
}

func (h *PostHandler) ListSchedules(c *fiber.Ctx) error {
	userID := GetUserID(c)

	schedules, err := h.s.ListSchedules(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list schedules",
		})
	}

	return c.Status(fiber.StatusOK).JSON(schedules)
}
