package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/taskline/todo-api/docs"
	"github.com/taskline/todo-api/internal/api/handler"
	"github.com/taskline/todo-api/internal/api/middleware"
	"github.com/taskline/todo-api/internal/core/domain"
	"github.com/taskline/todo-api/internal/core/identity"
	"github.com/taskline/todo-api/internal/core/ports"
	"github.com/taskline/todo-api/internal/dispatch"
)

// RouterConfig carries the wired components the HTTP layer exposes.
type RouterConfig struct {
	DB         *mongo.Database
	Redis      *redis.Client
	Issuer     *identity.Issuer
	Dispatcher *dispatch.Dispatcher
	Throttle   ports.LoginThrottle
	Log        zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("todo"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(cfg.Dispatcher, cfg.Throttle, cfg.Log)
	listHandler := handler.NewTodoListHandler(cfg.Dispatcher)
	itemHandler := handler.NewTodoItemHandler(cfg.Dispatcher)
	userHandler := handler.NewUserHandler(cfg.Dispatcher)

	authMiddleware := middleware.Auth(cfg.Issuer)
	adminOnly := middleware.RequireRole(domain.RoleAdministrator)

	// --- Auth routes (public) ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Todo routes (authenticated) ---
	lists := e.Group("/lists", authMiddleware)
	lists.GET("", listHandler.List)
	lists.POST("", listHandler.Create)
	lists.PUT("/:id", listHandler.Update)
	lists.DELETE("/:id", listHandler.Delete)
	lists.GET("/:id/export", listHandler.Export)
	lists.GET("/:id/items", itemHandler.ListPage)
	lists.POST("/:id/items", itemHandler.Create)

	items := e.Group("/items", authMiddleware)
	items.PUT("/:id", itemHandler.Update)
	items.DELETE("/:id", itemHandler.Delete)

	// --- Admin routes (token role gate first, live policy check inside) ---
	e.DELETE("/lists", listHandler.Purge, authMiddleware, adminOnly)
	e.DELETE("/users/:id", userHandler.Delete, authMiddleware, adminOnly)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(cfg.DB, cfg.Redis)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
