package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/taskline/todo-api/internal/app/command"
	"github.com/taskline/todo-api/internal/app/query"
	"github.com/taskline/todo-api/internal/core/domain"
	"github.com/taskline/todo-api/internal/dispatch"
)

const (
	defaultPageNumber = 1
	defaultPageSize   = 10
)

// TodoItemHandler exposes todo item CRUD and the paginated items view.
type TodoItemHandler struct {
	dispatcher *dispatch.Dispatcher
}

func NewTodoItemHandler(d *dispatch.Dispatcher) *TodoItemHandler {
	return &TodoItemHandler{dispatcher: d}
}

// ListPage returns one page of a list's items.
//
// @Summary      Get todo items with pagination
// @Tags         items
// @Produce      json
// @Param        id    path   string  true   "List id"
// @Param        page  query  int     false  "Page number (1-based)"
// @Param        size  query  int     false  "Page size"
// @Success      200  {object}  query.PaginatedList[domain.TodoItem]
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /lists/{id}/items [get]
func (h *TodoItemHandler) ListPage(c echo.Context) error {
	q := query.GetTodoItemsWithPagination{
		ListID:     c.Param("id"),
		PageNumber: queryInt(c, "page", defaultPageNumber),
		PageSize:   queryInt(c, "size", defaultPageSize),
	}

	page, err := dispatch.Send[query.PaginatedList[domain.TodoItem]](c.Request().Context(), h.dispatcher, q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Create adds an item to a list.
//
// @Summary      Create a todo item
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id    path      string                  true  "List id"
// @Param        body  body      command.CreateTodoItem  true  "Item details"
// @Success      201   {object}  createdResponse
// @Failure      400   {object}  map[string]string
// @Security     BearerAuth
// @Router       /lists/{id}/items [post]
func (h *TodoItemHandler) Create(c echo.Context) error {
	var cmd command.CreateTodoItem
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	cmd.ListID = c.Param("id")

	id, err := dispatch.Send[string](c.Request().Context(), h.dispatcher, cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, createdResponse{ID: id})
}

// Update rewrites an item's title, note, priority, and done flag.
//
// @Summary      Update a todo item
// @Tags         items
// @Accept       json
// @Param        id    path      string                  true  "Item id"
// @Param        body  body      command.UpdateTodoItem  true  "Item details"
// @Success      204
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Security     BearerAuth
// @Router       /items/{id} [put]
func (h *TodoItemHandler) Update(c echo.Context) error {
	var cmd command.UpdateTodoItem
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	cmd.ID = c.Param("id")

	if _, err := dispatch.Send[struct{}](c.Request().Context(), h.dispatcher, cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Delete removes an item.
//
// @Summary      Delete a todo item
// @Tags         items
// @Param        id  path  string  true  "Item id"
// @Success      204
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /items/{id} [delete]
func (h *TodoItemHandler) Delete(c echo.Context) error {
	cmd := command.DeleteTodoItem{ID: c.Param("id")}
	if _, err := dispatch.Send[struct{}](c.Request().Context(), h.dispatcher, cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// queryInt parses an integer query parameter with a fallback.
func queryInt(c echo.Context, name string, fallback int) int {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
