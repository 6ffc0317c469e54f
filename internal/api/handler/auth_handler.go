package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskline/todo-api/internal/api/metrics"
	"github.com/taskline/todo-api/internal/app/command"
	"github.com/taskline/todo-api/internal/core/ports"
	"github.com/taskline/todo-api/internal/dispatch"
)

// AuthHandler exposes registration and login over HTTP. Both operations are
// plain pipeline dispatches; the only extra concern here is the redis-backed
// login throttle, which sits in front of the dispatch.
type AuthHandler struct {
	dispatcher *dispatch.Dispatcher
	throttle   ports.LoginThrottle
	log        zerolog.Logger
}

func NewAuthHandler(d *dispatch.Dispatcher, throttle ports.LoginThrottle, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{dispatcher: d, throttle: throttle, log: log}
}

type registerResponse struct {
	ID string `json:"id"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      command.Register  true  "Registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var cmd command.Register
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	id, err := dispatch.Send[string](c.Request().Context(), h.dispatcher, cmd)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusCreated, registerResponse{ID: id})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      command.Login  true  "Login credentials"
// @Success      200   {object}  ports.LoginResult
// @Failure      400   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var cmd command.Login
	if err := c.Bind(&cmd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	ctx := c.Request().Context()

	blocked, err := h.throttle.Blocked(ctx, cmd.Email)
	if err != nil {
		// A broken throttle must not lock everyone out.
		h.log.Warn().Err(err).Msg("login throttle unavailable")
	} else if blocked {
		metrics.LoginsTotal.WithLabelValues("throttled").Inc()
		return echo.NewHTTPError(http.StatusTooManyRequests, "too many failed login attempts")
	}

	result, err := dispatch.Send[ports.LoginResult](ctx, h.dispatcher, cmd)
	if err != nil {
		var ve *dispatch.ValidationError
		if errors.As(err, &ve) && ve.HasField(command.AuthenticationField) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			if terr := h.throttle.RecordFailure(ctx, cmd.Email); terr != nil {
				h.log.Warn().Err(terr).Msg("failed to record login failure")
			}
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	if err := h.throttle.Reset(ctx, cmd.Email); err != nil {
		h.log.Warn().Err(err).Msg("failed to reset login throttle")
	}

	return c.JSON(http.StatusOK, result)
}
