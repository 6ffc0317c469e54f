package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskline/todo-api/internal/api/middleware"
	"github.com/taskline/todo-api/internal/app/command"
	"github.com/taskline/todo-api/internal/app/query"
	"github.com/taskline/todo-api/internal/core/domain"
	"github.com/taskline/todo-api/internal/dispatch"
)

// TodoListHandler exposes todo list CRUD plus CSV export. Every operation is
// a pipeline dispatch; the handler only translates HTTP in and out.
type TodoListHandler struct {
	dispatcher *dispatch.Dispatcher
}

func NewTodoListHandler(d *dispatch.Dispatcher) *TodoListHandler {
	return &TodoListHandler{dispatcher: d}
}

type createdResponse struct {
	ID string `json:"id"`
}

// List returns all todo lists.
//
// @Summary      Get all todo lists
// @Tags         lists
// @Produce      json
// @Success      200  {array}  domain.TodoList
// @Security     BearerAuth
// @Router       /lists [get]
func (h *TodoListHandler) List(c echo.Context) error {
	lists, err := dispatch.Send[[]domain.TodoList](c.Request().Context(), h.dispatcher, query.GetTodoLists{})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, lists)
}

// Create adds a new todo list.
//
// @Summary      Create a todo list
// @Tags         lists
// @Accept       json
// @Produce      json
// @Param        body  body      command.CreateTodoList  true  "List details"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /lists [post]
func (h *TodoListHandler) Create(c echo.Context) error {
	var cmd command.CreateTodoList
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	id, err := dispatch.Send[string](c.Request().Context(), h.dispatcher, cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

// Update renames or recolours a todo list.
//
// @Summary      Update a todo list
// @Tags         lists
// @Accept       json
// @Param        id    path      string                  true  "List id"
// @Param        body  body      command.UpdateTodoList  true  "List details"
// @Success      204
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /lists/{id} [put]
func (h *TodoListHandler) Update(c echo.Context) error {
	var cmd command.UpdateTodoList
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	cmd.ID = c.Param("id")

	if _, err := dispatch.Send[struct{}](c.Request().Context(), h.dispatcher, cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes a todo list and its items.
//
// @Summary      Delete a todo list
// @Tags         lists
// @Param        id  path  string  true  "List id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /lists/{id} [delete]
func (h *TodoListHandler) Delete(c echo.Context) error {
	cmd := command.DeleteTodoList{ID: c.Param("id")}
	if _, err := dispatch.Send[struct{}](c.Request().Context(), h.dispatcher, cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Purge deletes every todo list. Restricted to administrators; the handler
// passes the caller's id explicitly so the policy check runs against the
// store, not the token snapshot.
//
// @Summary      Purge all todo lists
// @Tags         lists
// @Success      204
// @Failure      403  {object}  map[string]string
// @Security     BearerAuth
// @Router       /lists [delete]
func (h *TodoListHandler) Purge(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	cmd := command.PurgeTodoLists{CallerID: p.UserID}
	if _, err := dispatch.Send[struct{}](c.Request().Context(), h.dispatcher, cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Export streams a list's items as CSV.
//
// @Summary      Export a todo list as CSV
// @Tags         lists
// @Produce      text/csv
// @Param        id  path  string  true  "List id"
// @Success      200  {string}  string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /lists/{id}/export [get]
func (h *TodoListHandler) Export(c echo.Context) error {
	q := query.ExportTodos{ListID: c.Param("id")}
	file, err := dispatch.Send[query.ExportedFile](c.Request().Context(), h.dispatcher, q)
	if err != nil {
		return err
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+file.FileName+`"`)
	return c.Blob(http.StatusOK, "text/csv", file.Content)
}
