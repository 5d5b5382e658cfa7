package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/chiefbiiko/lauth/internal/logger"
	"github.com/chiefbiiko/lauth/internal/model"
	"github.com/chiefbiiko/lauth/internal/secret"
	"github.com/chiefbiiko/lauth/internal/validate"
)

// Auth implements the sign-up, sign-in and refresh pipelines over an
// injected user store and token codec. It holds no mutable state across
// requests; all methods are safe for concurrent use.
type Auth struct {
	users  model.UserStore
	codec  model.TokenCodec
	role   string
	logger *logger.Logger

	decoySalt   []byte
	decoyDigest []byte
}

// NewAuth creates the auth service. role is the fixed tag stamped onto
// every account registered through this deployment; callers never choose
// their own.
func NewAuth(users model.UserStore, codec model.TokenCodec, role string, logger *logger.Logger) (*Auth, error) {
	// Fixed decoy credentials give the unknown-email path the same hashing
	// and comparison work as a wrong password, so the two failures stay
	// timing-aligned.
	decoySalt, err := secret.NewSalt()
	if err != nil {
		return nil, fmt.Errorf("failed to generate decoy salt: %w", err)
	}
	decoyDigest, err := secret.Hash(uuid.NewString(), decoySalt)
	if err != nil {
		return nil, fmt.Errorf("failed to hash decoy credentials: %w", err)
	}

	return &Auth{
		users:       users,
		codec:       codec,
		role:        role,
		logger:      logger,
		decoySalt:   decoySalt,
		decoyDigest: decoyDigest,
	}, nil
}

// SignUp registers a new account from a parsed request document. Fields
// other than email and password pass through into the stored record's
// attributes. Returns model.ErrInvalidInput or model.ErrEmailTaken for the
// client-answerable failures.
func (a *Auth) SignUp(ctx context.Context, doc map[string]any) error {
	email, _ := doc["email"].(string)
	password, _ := doc["password"].(string)

	if !validate.Email(email) || !validate.Password(password) {
		return model.ErrInvalidInput
	}

	a.logger.Debug("Auth service: starting user registration", "email", email)

	taken, err := a.users.EmailExists(ctx, email)
	if err != nil {
		a.logger.Error("Auth service: failed to check email existence",
			"email", email,
			"error", err.Error())
		return fmt.Errorf("failed to check email existence: %w", err)
	}
	if taken {
		a.logger.Info("Auth service: email already taken", "email", email)
		return model.ErrEmailTaken
	}

	salt, err := secret.NewSalt()
	if err != nil {
		return fmt.Errorf("failed to generate salt: %w", err)
	}

	digest, err := secret.Hash(password, salt)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	attrs := make(map[string]any, len(doc))
	for k, v := range doc {
		if k == "email" || k == "password" {
			continue
		}
		attrs[k] = v
	}

	user := model.UserPrivate{
		User: model.User{
			ID:    uuid.New(),
			Role:  a.role,
			Email: email,
			Attrs: attrs,
		},
		PasswordDigest: digest,
		Salt:           salt,
		CreatedAt:      time.Now(),
	}

	// Create is an atomic claim: a concurrent registration for the same
	// email loses the race store-side and surfaces as ErrEmailTaken here.
	if err := a.users.Create(ctx, user); err != nil {
		if errors.Is(err, model.ErrEmailTaken) {
			return model.ErrEmailTaken
		}
		a.logger.Error("Auth service: failed to create user",
			"email", email,
			"error", err.Error())
		return fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered", "email", email, "id", user.ID)

	return nil
}

// SignIn authenticates email/password and issues a fresh token pair.
// Unknown email and wrong password are the same failure, by status and by
// work performed.
func (a *Auth) SignIn(ctx context.Context, email, password string) (model.TokenPair, error) {
	if !validate.Email(email) || !validate.Password(password) {
		return model.TokenPair{}, model.ErrInvalidInput
	}

	a.logger.Debug("Auth service: starting sign-in", "email", email)

	user, err := a.users.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		if digest, hashErr := secret.Hash(password, a.decoySalt); hashErr == nil {
			secret.Equal(digest, a.decoyDigest)
		}
		return model.TokenPair{}, model.ErrInvalidCredentials
	}
	if err != nil {
		a.logger.Error("Auth service: failed to read user by email",
			"email", email,
			"error", err.Error())
		return model.TokenPair{}, fmt.Errorf("failed to read user by email: %w", err)
	}

	digest, err := secret.Hash(password, user.Salt)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to hash password: %w", err)
	}

	if !secret.Equal(digest, user.PasswordDigest) {
		a.logger.Info("Auth service: credential mismatch", "email", email)
		return model.TokenPair{}, model.ErrInvalidCredentials
	}

	pair, err := a.issuePair(user.ID, user.Role)
	if err != nil {
		return model.TokenPair{}, err
	}

	a.logger.Info("Auth service: sign-in completed", "email", email, "id", user.ID)

	return pair, nil
}

// Refresh validates a refresh token and mints a replacement pair. The
// subject's role is re-read from the store; the role embedded in the old
// token is never trusted for re-issuance.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	claims, err := a.codec.Verify(refreshToken)
	if err != nil {
		return model.TokenPair{}, model.ErrTokenInvalid
	}

	if claims.Subtype != model.SubtypeRefresh {
		a.logger.Info("Auth service: wrong token subtype presented for refresh",
			"subtype", claims.Subtype,
			"id", claims.UserID)
		return model.TokenPair{}, model.ErrWrongTokenType
	}

	a.logger.Debug("Auth service: starting token refresh", "id", claims.UserID)

	user, err := a.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, model.ErrNotFound) {
		// A token whose subject no longer exists is as good as forged.
		return model.TokenPair{}, model.ErrTokenInvalid
	}
	if err != nil {
		a.logger.Error("Auth service: failed to read user by id",
			"id", claims.UserID,
			"error", err.Error())
		return model.TokenPair{}, fmt.Errorf("failed to read user by id: %w", err)
	}

	pair, err := a.issuePair(user.ID, user.Role)
	if err != nil {
		return model.TokenPair{}, err
	}

	a.logger.Info("Auth service: token refresh completed", "id", user.ID)

	return pair, nil
}

func (a *Auth) issuePair(userID uuid.UUID, role string) (model.TokenPair, error) {
	access, err := a.codec.Issue(model.SubtypeAccess, userID, role, 0)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, err := a.codec.Issue(model.SubtypeRefresh, userID, role, 0)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	return model.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
