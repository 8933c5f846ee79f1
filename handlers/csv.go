package handlers

import (
	"bufio"

	"github.com/biosecret/go-todo/services"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// HandleExportCSV godoc
// @Summary  Export the caller's todos as CSV
// @Tags     Todo
// @Security BearerAuth
// @Produce  text/csv
// @Success  200 {file} file
// @Success  204
// @Router   /todo/csv-export/ [get]
func (h *Handler) HandleExportCSV(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}

	todos, err := h.Todos.Export(c.UserContext(), userID)
	if err != nil {
		return respondError(c, err)
	}

	c.Attachment("tasks.csv")
	c.Set(fiber.HeaderContentType, "text/csv")
	c.Status(fiber.StatusOK)

	// ghi thẳng vào response, không qua file tạm
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		if err := services.WriteCSV(w, todos); err != nil {
			h.Logger.Error("failed to write csv export", "owner_id", userID, "err", err)
			return
		}
		if err := w.Flush(); err != nil {
			h.Logger.Warn("failed to flush csv export", "owner_id", userID, "err", err)
		}
	}))
	return nil
}

// HandleImportCSV godoc
// @Summary  Import todos from a CSV file
// @Tags     Todo
// @Security BearerAuth
// @Accept   multipart/form-data
// @Param    file formData file true "CSV with title, description and completed columns"
// @Success  200 {object} models.ImportSummary
// @Failure  422 {object} models.ErrorResponse
// @Router   /todo/csv-import/ [post]
func (h *Handler) HandleImportCSV(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}

	header, err := c.FormFile("file")
	if err != nil {
		return unprocessable(c, "file is required")
	}
	file, err := header.Open()
	if err != nil {
		return err
	}
	defer file.Close()

	summary, err := h.Todos.Import(c.UserContext(), userID, file)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(summary)
}
