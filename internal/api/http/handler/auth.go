package handler

import (
	"context"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/chiefbiiko/lauth/internal/logger"
	"github.com/chiefbiiko/lauth/internal/model"
)

// AuthService defines the pipelines the HTTP layer dispatches into.
type AuthService interface {
	SignUp(ctx context.Context, doc map[string]any) error
	SignIn(ctx context.Context, email, password string) (model.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error)
}

// Auth handles the HTTP endpoints for authentication. Every unanticipated
// failure goes through the injected reporter before the generic server
// error is written.
type Auth struct {
	service  AuthService
	reporter model.Reporter
	logger   *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(service AuthService, reporter model.Reporter, logger *logger.Logger) *Auth {
	return &Auth{
		service:  service,
		reporter: reporter,
		logger:   logger,
	}
}

// SignUp registers a new account from a JSON document. Success is a bare
// 201; the response never echoes any part of the stored record.
func (h *Auth) SignUp(c *fiber.Ctx) error {
	h.logger.Debug("Auth handler: processing signup request")

	var doc map[string]any
	if err := c.BodyParser(&doc); err != nil {
		// An unparsable body is treated as an internal fault, not a
		// validation failure, and reported as such.
		return h.crashed(c, err)
	}
	if doc == nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	if err := h.service.SignUp(c.UserContext(), doc); err != nil {
		h.logger.Error("Auth handler: signup failed", "error", err.Error())
		return h.respondError(c, err)
	}

	h.logger.Info("Auth handler: signup completed")

	return c.SendStatus(fiber.StatusCreated)
}

// SignIn authenticates Basic credentials and responds with a token pair.
func (h *Auth) SignIn(c *fiber.Ctx) error {
	h.logger.Debug("Auth handler: processing signin request")

	payload, ok := authPayload(c.Get(fiber.HeaderAuthorization), "basic")
	if !ok {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	email, password, ok := strings.Cut(string(decoded), ":")
	if !ok {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	pair, err := h.service.SignIn(c.UserContext(), email, password)
	if err != nil {
		h.logger.Error("Auth handler: signin failed", "error", err.Error())
		return h.respondError(c, err)
	}

	h.logger.Info("Auth handler: signin completed")

	return c.JSON(pair)
}

// Refresh exchanges a Bearer refresh token for a new token pair.
func (h *Auth) Refresh(c *fiber.Ctx) error {
	h.logger.Debug("Auth handler: processing refresh request")

	token, ok := authPayload(c.Get(fiber.HeaderAuthorization), "bearer")
	if !ok {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	pair, err := h.service.Refresh(c.UserContext(), token)
	if err != nil {
		h.logger.Error("Auth handler: refresh failed", "error", err.Error())
		return h.respondError(c, err)
	}

	h.logger.Info("Auth handler: refresh completed")

	return c.JSON(pair)
}

// respondError maps pipeline errors onto the shared failure taxonomy.
// Status codes carry no detail beyond themselves; nothing internal leaks
// to the caller.
func (h *Auth) respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		return c.SendStatus(fiber.StatusBadRequest)
	case errors.Is(err, model.ErrInvalidCredentials), errors.Is(err, model.ErrTokenInvalid):
		return c.SendStatus(fiber.StatusUnauthorized)
	case errors.Is(err, model.ErrWrongTokenType):
		return c.SendStatus(fiber.StatusForbidden)
	case errors.Is(err, model.ErrEmailTaken):
		return c.SendStatus(fiber.StatusConflict)
	default:
		return h.crashed(c, err)
	}
}

func (h *Auth) crashed(c *fiber.Ctx, err error) error {
	h.reporter.Report(c.UserContext(), err)
	return c.SendStatus(fiber.StatusInternalServerError)
}

// authPayload splits an Authorization header value and checks the scheme,
// case-insensitively.
func authPayload(header, scheme string) (string, bool) {
	kind, payload, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(kind, scheme) || payload == "" {
		return "", false
	}
	return payload, true
}
