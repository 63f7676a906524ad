package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/99minutos/account-service/internal/api/handler"
	"github.com/99minutos/account-service/internal/api/middleware"
	"github.com/99minutos/account-service/internal/core/domain"
	"github.com/99minutos/account-service/internal/core/ports"
	_ "github.com/99minutos/account-service/internal/infrastructure/docs"
	"github.com/99minutos/account-service/internal/infrastructure/http/handlers"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Log      zerolog.Logger
	Gate     middleware.Authenticator
	Auth     ports.AuthService
	Accounts ports.AccountService
	Posts    ports.PostService
	TokenTTL time.Duration
	// Ready lists the dependencies checked by the readiness probe.
	Ready map[string]handlers.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.BodyLimit("1M"))
	e.Use(middleware.Metrics())
	e.Use(requestLogger(d.Log))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth, d.TokenTTL)
	accountHandler := handler.NewAccountHandler(d.Accounts)
	postHandler := handler.NewPostHandler(d.Posts)
	adminHandler := handler.NewAdminHandler(d.Accounts, d.Posts)
	authn := middleware.Auth(d.Gate)

	// --- Public routes ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)
	e.GET("/post/get/:postId", postHandler.Get)

	// --- Account routes ---
	e.GET("/user/details", accountHandler.Details, authn)
	e.PUT("/user_update", accountHandler.Replace, authn)
	e.PATCH("/user_update", accountHandler.Patch, authn)
	e.DELETE("/user_delete", authHandler.DeleteAccount, authn)

	// --- Post routes ---
	e.POST("/posts/add", postHandler.Create, authn)
	e.PUT("/posts/update/:postId", postHandler.Update, authn)
	e.DELETE("/post/delete/singlepost/:postId", postHandler.Delete, authn)
	e.DELETE("/posts/delete_all", postHandler.DeleteAll, authn)
	e.GET("/users/posts", postHandler.List, authn)

	// --- Admin routes ---
	admin := e.Group("/admin", authn, middleware.RequireRole(domain.RoleAdmin))
	admin.DELETE("/user_delete", adminHandler.Deactivate)
	admin.PUT("/user_undo_delete", adminHandler.Restore)
	admin.DELETE("/users/:userId", adminHandler.Purge)
	admin.GET("/posts", adminHandler.ListPosts)
	admin.GET("/users/:userId/posts", adminHandler.ListUserPosts)
	admin.PUT("/users/:userId/posts/:postId", adminHandler.UpdateUserPost)
	admin.DELETE("/users/:userId/posts/:postId", adminHandler.DeleteUserPost)

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Ready)

	e.GET("/health", healthHandler.Liveness)            // liveness
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: mongodb and redis

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger writes one structured access log line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= 500 {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
