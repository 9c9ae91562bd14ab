package http

import (
	"context"
	stdhttp "net/http"

	"gamevault/internal/audit"
	"gamevault/internal/auth"
	"gamevault/internal/config"
	"gamevault/internal/http/handler"
	"gamevault/internal/http/middleware"
	"gamevault/internal/repository"
	"gamevault/pkg/metrics"
	"gamevault/pkg/password"
	"gamevault/pkg/rbac"
	"gamevault/pkg/rbac/presets"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	jsonKeyStatus    = "status"
	jsonKeyService   = "service"
	jsonKeyMessage   = "message"
	serviceName      = "gamevault"
	statusOK         = "ok"
	statusDegraded   = "degraded"
	requestBodyLimit = "1M"
	msgSubmitLogin   = "submit credentials as JSON to POST /login"
)

type ServerDependencies struct {
	Config   *config.Config
	Store    repository.Store
	Sessions *auth.Manager
	Checker  *rbac.Checker
	Hasher   *password.Hasher
	Audit    *audit.Logger
}

type Server struct {
	echo *echo.Echo
	deps *ServerDependencies
}

func NewServer(deps *ServerDependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.HTTPErrorHandler = CustomHTTPErrorHandler

	e.Server.ReadTimeout = deps.Config.Server.ReadTimeout
	e.Server.WriteTimeout = deps.Config.Server.WriteTimeout

	// Request ID first so every log line can carry it.
	e.Use(middleware.RequestID())
	e.Use(middleware.SecurityHeaders())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit(requestBodyLimit))
	e.Use(metrics.Middleware())

	// Session resolution runs before rate limiting so authenticated
	// traffic is keyed per user rather than per IP.
	e.Use(auth.LoadSession(deps.Sessions, deps.Config.Session.CookieName))

	globalRateLimiter := middleware.NewGlobalRateLimiter()
	e.Use(globalRateLimiter.Middleware())

	strictRateLimiter := middleware.NewStrictRateLimiter()

	authHandler := handler.NewAuthHandler(deps.Store.Users(), deps.Sessions, deps.Config.Session, deps.Audit)
	gameHandler := handler.NewGameHandler(deps.Store.Games(), deps.Audit, deps.Config.App.PageSize)
	consoleHandler := handler.NewConsoleHandler(deps.Store.Consoles(), deps.Audit, deps.Config.App.PageSize)
	userHandler := handler.NewUserHandler(deps.Store.Users(), deps.Sessions, deps.Hasher, deps.Checker, deps.Audit)

	requireView := auth.RequirePermission(deps.Checker, presets.PermissionView, deps.Audit)
	requireCreate := auth.RequirePermission(deps.Checker, presets.PermissionCreate, deps.Audit)
	requireEdit := auth.RequirePermission(deps.Checker, presets.PermissionEdit, deps.Audit)
	requireDelete := auth.RequirePermission(deps.Checker, presets.PermissionDelete, deps.Audit)
	requireManageUsers := auth.RequirePermission(deps.Checker, presets.PermissionManageUsers, deps.Audit)

	// Landing targets for the browser redirects issued on login and on
	// anonymous access to a gated route.
	e.GET("/", serviceIndex, requireView)
	e.GET("/login", loginPrompt)

	e.POST("/login", authHandler.Login, strictRateLimiter.Middleware())
	e.POST("/logout", authHandler.Logout)
	e.GET("/me", authHandler.Me, requireView)
	e.GET("/health", healthCheck(deps.Store))
	metrics.RegisterRoute(e)

	games := e.Group("/games")
	games.GET("", gameHandler.List, requireView)
	games.GET("/:id", gameHandler.Get, requireView)
	games.POST("", gameHandler.Create, requireCreate)
	games.PUT("/:id", gameHandler.Update, requireEdit)
	games.DELETE("/:id", gameHandler.Delete, requireDelete)

	consoles := e.Group("/consoles")
	consoles.GET("", consoleHandler.List, requireView)
	consoles.GET("/:id", consoleHandler.Get, requireView)
	consoles.POST("", consoleHandler.Create, requireCreate)
	consoles.PUT("/:id", consoleHandler.Update, requireEdit)
	consoles.DELETE("/:id", consoleHandler.Delete, requireDelete)

	users := e.Group("/users", requireManageUsers)
	users.GET("", userHandler.List)
	users.GET("/:id", userHandler.Get)
	users.POST("", userHandler.Create)
	users.PUT("/:id/role", userHandler.UpdateRole)
	users.DELETE("/:id", userHandler.Delete)

	return &Server{
		echo: e,
		deps: deps,
	}
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Echo exposes the underlying router for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// serviceIndex is where a successful browser login lands. The service speaks
// JSON; there is no HTML frontend.
func serviceIndex(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyService: serviceName,
		jsonKeyStatus:  statusOK,
	})
}

// loginPrompt is the redirect target for anonymous browser requests.
func loginPrompt(c echo.Context) error {
	return c.JSON(stdhttp.StatusOK, map[string]string{
		jsonKeyService: serviceName,
		jsonKeyMessage: msgSubmitLogin,
	})
}

func healthCheck(store repository.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		if err := store.Ping(c.Request().Context()); err != nil {
			return c.JSON(stdhttp.StatusServiceUnavailable, map[string]string{
				jsonKeyStatus: statusDegraded,
			})
		}
		return c.JSON(stdhttp.StatusOK, map[string]string{
			jsonKeyStatus: statusOK,
		})
	}
}
