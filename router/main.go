package router

import (
	"github.com/biosecret/go-todo/handlers"
	"github.com/gofiber/fiber/v2"
)

// SetupRoutes đăng ký toàn bộ route. auth là identity resolver cho nhóm /todo.
func SetupRoutes(app *fiber.App, h *handlers.Handler, auth fiber.Handler) {
	app.Get("/health", h.HandleHealthCheck)
	app.Post("/login", h.LoginHandler)

	users := app.Group("/users")
	users.Post("/", h.HandleCreateUser)
	users.Get("/:id", h.HandleGetUser)

	todo := app.Group("/todo", auth)

	// csv routes phải đứng trước /:id
	todo.Get("/csv-export", h.HandleExportCSV)
	todo.Post("/csv-import", h.HandleImportCSV)

	todo.Get("/", h.HandleAllTodos)
	todo.Post("/", h.HandleCreateTodo)
	todo.Get("/:id", h.HandleGetOneTodo)
	todo.Put("/:id", h.HandleUpdateTodo)
	todo.Patch("/:id/completed", h.HandlePatchCompleted)
	todo.Delete("/:id", h.HandleDeleteTodo)
}
