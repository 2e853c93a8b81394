package handlers

import (
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/h2non/filetype"

	"postpilot/internal/service"
	"postpilot/internal/transfer"
	"postpilot/pkg/pdftext"
)

type AssistHandler struct {
	s service.AssistService
}

func NewAssistHandler(service service.AssistService) *AssistHandler {
	return &AssistHandler{s: service}
}

func (h *AssistHandler) GeneratePost(c *fiber.Ctx) error {
	params := new(transfer.GenerateParams)
	if err := c.BodyParser(params); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	content, err := h.s.GeneratePost(c.Context(), params)
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to generate post",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"content": content,
	})
}

func (h *AssistHandler) AnalyzeCV(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("cv")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "CV file is required",
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to read uploaded file",
		})
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to read uploaded file",
		})
	}

	kind, _ := filetype.Match(data)
	if kind.Extension != "pdf" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Only PDF files are supported",
		})
	}

	text, err := pdftext.Extract(data)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Could not extract text from the PDF",
		})
	}

	language := c.FormValue("language", "en")
	analysis, err := h.s.AnalyzeCV(c.Context(), text, language)
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to analyze CV",
		})
	}

	return c.Status(fiber.StatusOK).JSON(analysis)
}
