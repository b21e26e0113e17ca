// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"campus/config"
	"campus/internal/delivery/api/middleware"
	"campus/internal/delivery/api/response"
	"campus/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler       *handler.AuthHandler
	SessionHandler    *handler.SessionHandler
	DocumentHandler   *handler.DocumentHandler
	SessionMiddleware *middleware.SessionMiddleware
	Config            *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler       *handler.AuthHandler
	sessionHandler    *handler.SessionHandler
	documentHandler   *handler.DocumentHandler
	sessionMiddleware *middleware.SessionMiddleware
	config            *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:       params.AuthHandler,
		sessionHandler:    params.SessionHandler,
		documentHandler:   params.DocumentHandler,
		sessionMiddleware: params.SessionMiddleware,
		config:            params.Config,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Legacy auth routes keep their historical error bodies
	e.POST("/login", r.authHandler.Login, middleware.ErrorFormat(response.FormatPlainText))
	e.POST("/register", r.authHandler.Register, middleware.ErrorFormat(response.FormatLegacyJSON))

	// Session introspection
	e.GET("/me", r.sessionHandler.Me, r.sessionMiddleware.Authenticate)

	if r.config.Storage != nil && r.config.Storage.ServeDocuments {
		e.GET("/documents/*", r.documentHandler.Get)
	}
}
