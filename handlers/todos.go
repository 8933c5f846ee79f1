package handlers

import (
	"github.com/biosecret/go-todo/models"
	"github.com/biosecret/go-todo/services"
	"github.com/gofiber/fiber/v2"
)

// HandleAllTodos godoc
// @Summary  List the caller's todos
// @Tags     Todo
// @Security BearerAuth
// @Param    completed    query bool   false "filter by completed"
// @Param    search_query query string false "substring of title or description"
// @Param    order_by     query string false "id, title, description or completed"
// @Param    ascending    query bool   false "sort direction" default(true)
// @Success  200 {array} models.TodoItem
// @Router   /todo/ [get]
func (h *Handler) HandleAllTodos(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}

	completed, err := optionalBool(c.Query("completed"))
	if err != nil {
		return unprocessable(c, "completed must be a boolean")
	}
	ascending, err := optionalBool(c.Query("ascending"))
	if err != nil {
		return unprocessable(c, "ascending must be a boolean")
	}

	q := services.ListQuery{
		Completed: completed,
		Search:    c.Query("search_query"),
		OrderBy:   c.Query("order_by"),
		Descending: ascending != nil && !*ascending,
	}
	todos, err := h.Todos.List(c.UserContext(), userID, q)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(todos)
}

// HandleCreateTodo godoc
// @Summary  Create a todo
// @Tags     Todo
// @Security BearerAuth
// @Param    todo body models.TodoRequest true "Todo"
// @Success  201 {object} models.TodoItem
// @Router   /todo/ [post]
func (h *Handler) HandleCreateTodo(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}

	req := new(models.TodoRequest)
	if err := c.BodyParser(req); err != nil {
		return badRequest(c, err)
	}

	todo, err := h.Todos.Create(c.UserContext(), userID, *req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(todo)
}

// HandleGetOneTodo godoc
// @Summary  Get a todo
// @Tags     Todo
// @Security BearerAuth
// @Param    id path int true "Todo ID"
// @Success  200 {object} models.TodoItem
// @Failure  404 {object} models.ErrorResponse
// @Router   /todo/{id} [get]
func (h *Handler) HandleGetOneTodo(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	id, ok := paramID(c)
	if !ok {
		return unprocessable(c, "id must be an integer")
	}

	todo, err := h.Todos.Get(c.UserContext(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(todo)
}

// HandleUpdateTodo godoc
// @Summary  Replace a todo
// @Tags     Todo
// @Security BearerAuth
// @Param    id   path int                true "Todo ID"
// @Param    todo body models.TodoRequest true "Todo"
// @Success  202 {object} models.TodoItem
// @Failure  404 {object} models.ErrorResponse
// @Router   /todo/{id} [put]
func (h *Handler) HandleUpdateTodo(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	id, ok := paramID(c)
	if !ok {
		return unprocessable(c, "id must be an integer")
	}

	req := new(models.TodoRequest)
	if err := c.BodyParser(req); err != nil {
		return badRequest(c, err)
	}

	todo, err := h.Todos.Update(c.UserContext(), userID, id, *req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(todo)
}

// HandlePatchCompleted godoc
// @Summary  Set the completed flag
// @Tags     Todo
// @Security BearerAuth
// @Param    id        path  int  true "Todo ID"
// @Param    completed query bool true "new value"
// @Success  202 {object} models.TodoItem
// @Failure  404 {object} models.ErrorResponse
// @Router   /todo/{id}/completed/ [patch]
func (h *Handler) HandlePatchCompleted(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	id, ok := paramID(c)
	if !ok {
		return unprocessable(c, "id must be an integer")
	}

	// query string trước, body sau
	completed, err := optionalBool(c.Query("completed"))
	if err != nil {
		return unprocessable(c, "completed must be a boolean")
	}
	if completed == nil && len(c.Body()) > 0 {
		body := new(models.CompletedRequest)
		if err := c.BodyParser(body); err != nil {
			return badRequest(c, err)
		}
		completed = body.Completed
	}
	if completed == nil {
		return unprocessable(c, "completed is required")
	}

	todo, err := h.Todos.PatchCompleted(c.UserContext(), userID, id, *completed)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(todo)
}

// HandleDeleteTodo godoc
// @Summary  Delete a todo
// @Tags     Todo
// @Security BearerAuth
// @Param    id path int true "Todo ID"
// @Success  204
// @Failure  404 {object} models.ErrorResponse
// @Router   /todo/{id} [delete]
func (h *Handler) HandleDeleteTodo(c *fiber.Ctx) error {
	userID, err := caller(c)
	if err != nil {
		return err
	}
	id, ok := paramID(c)
	if !ok {
		return unprocessable(c, "id must be an integer")
	}

	if err := h.Todos.Delete(c.UserContext(), userID, id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
