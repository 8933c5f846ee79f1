package handlers

import (
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/biosecret/go-todo/middleware"
	"github.com/biosecret/go-todo/services"
	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"
)

// Handler gom các dependency mà route handler cần
type Handler struct {
	DB        *sql.DB
	Todos     *services.TodoService
	Users     *services.UserService
	JWTSecret string
	TokenTTL  time.Duration
	Logger    *log.Logger
}

// respondError ánh xạ lỗi nghiệp vụ sang HTTP status. Lỗi không xác định được
// trả lại cho ErrorHandler của Fiber.
func respondError(c *fiber.Ctx, err error) error {
	var status int
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, services.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, services.ErrValidation):
		status = fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	case errors.Is(err, services.ErrNoContent):
		return c.SendStatus(fiber.StatusNoContent)
	default:
		return err
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
}

func unprocessable(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"error": msg})
}

// ErrorHandler xử lý lỗi chưa được handler nào trả lời
func ErrorHandler(logger *log.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}
		logger.Error("request failed", "method", c.Method(), "path", c.Path(), "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
	}
}

func caller(c *fiber.Ctx) (int64, error) {
	id, ok := middleware.UserID(c)
	if !ok {
		return 0, fiber.NewError(fiber.StatusUnauthorized, "not authenticated")
	}
	return id, nil
}

func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// optionalBool trả về nil khi tham số vắng mặt
func optionalBool(raw string) (*bool, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
