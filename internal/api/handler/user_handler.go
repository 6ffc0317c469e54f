package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/taskline/todo-api/internal/api/middleware"
	"github.com/taskline/todo-api/internal/app/command"
	"github.com/taskline/todo-api/internal/dispatch"
)

// UserHandler exposes administrative account operations.
type UserHandler struct {
	dispatcher *dispatch.Dispatcher
}

func NewUserHandler(d *dispatch.Dispatcher) *UserHandler {
	return &UserHandler{dispatcher: d}
}

// Delete removes a user account. The caller's identity travels explicitly
// on the command; the handler's policy check runs against live store roles.
//
// @Summary      Delete a user
// @Tags         users
// @Param        id  path  string  true  "User id"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Security     BearerAuth
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	cmd := command.DeleteUser{UserID: c.Param("id"), CallerID: p.UserID}
	if _, err := dispatch.Send[struct{}](c.Request().Context(), h.dispatcher, cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
