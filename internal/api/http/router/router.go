// Package router wires the auth handlers into a fiber application. The
// transport layer stays thin: dispatch by path, a request log line, and a
// static fallback for everything that is not an auth operation.
package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/chiefbiiko/lauth/internal/api/http/handler"
	"github.com/chiefbiiko/lauth/internal/logger"
	"github.com/chiefbiiko/lauth/internal/model"
)

// Router registers the HTTP surface of the service.
type Router struct {
	auth      *handler.Auth
	store     model.UserStore
	staticDir string
	logger    *logger.Logger
}

// New creates a new Router. staticDir may be empty to disable the static
// fallback.
func New(auth *handler.Auth, store model.UserStore, staticDir string, logger *logger.Logger) *Router {
	return &Router{
		auth:      auth,
		store:     store,
		staticDir: staticDir,
		logger:    logger,
	}
}

// Register builds the fiber application with all routes and middleware.
func (r *Router) Register() *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(r.logRequests)

	app.Post("/signup", r.auth.SignUp)
	app.Post("/signin", r.auth.SignIn)
	app.Post("/refresh", r.auth.Refresh)
	app.Get("/ping", r.ping)

	if r.staticDir != "" {
		app.Static("/", r.staticDir)
	}

	return app
}

func (r *Router) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	r.logger.Info("http request",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start).String(),
	)

	return err
}

func (r *Router) ping(c *fiber.Ctx) error {
	if err := r.store.Ping(c.UserContext()); err != nil {
		r.logger.Error("store ping failed", "error", err.Error())
		return c.SendStatus(fiber.StatusServiceUnavailable)
	}
	return c.SendString("pong")
}
