package token

import (
	"crypto/ed25519"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/chiefbiiko/lauth/internal/model"
)

// Default token lifetimes, overridable via Config or per Issue call.
const (
	DefaultAccessTTL  = time.Hour
	DefaultRefreshTTL = 2 * time.Hour
)

// Claims carries the typed token payload on top of the registered claims.
type Claims struct {
	jwt.RegisteredClaims
	Subtype string `json:"subtype"`
	Role    string `json:"role"`
}

// Config groups codec construction parameters. The audiences name the two
// intended verifiers: resource endpoints for access tokens, the auth
// service itself for refresh tokens. Resource endpoints are expected to
// enforce the audience, which keeps refresh tokens unusable against them.
type Config struct {
	PrivateKey       ed25519.PrivateKey
	PublicKey        ed25519.PublicKey
	KeyID            string
	OwnAudience      string
	ResourceAudience string
	AccessTTL        time.Duration
	RefreshTTL       time.Duration
}

// Codec issues and verifies ed25519-signed tokens using a single
// long-lived keypair. Access and refresh tokens differ in audience and
// subtype, never in shape.
type Codec struct {
	cfg Config
}

var _ model.TokenCodec = (*Codec)(nil)

// NewCodec creates a codec from cfg, filling in default TTLs.
func NewCodec(cfg Config) *Codec {
	if cfg.AccessTTL == 0 {
		cfg.AccessTTL = DefaultAccessTTL
	}
	if cfg.RefreshTTL == 0 {
		cfg.RefreshTTL = DefaultRefreshTTL
	}
	return &Codec{cfg: cfg}
}

// Issue signs a token of the given subtype for the subject. A positive ttl
// overrides the configured default. Every token carries a fresh jti, so
// two issuances within the same second still differ.
func (c *Codec) Issue(subtype string, userID uuid.UUID, role string, ttl time.Duration) (string, error) {
	aud := c.cfg.ResourceAudience
	if subtype == model.SubtypeRefresh {
		aud = c.cfg.OwnAudience
	}

	if ttl <= 0 {
		ttl = c.cfg.AccessTTL
		if subtype == model.SubtypeRefresh {
			ttl = c.cfg.RefreshTTL
		}
	}

	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodEdDSA, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{aud},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Subtype: subtype,
		Role:    role,
	})
	t.Header["kid"] = c.cfg.KeyID

	signed, err := t.SignedString(c.cfg.PrivateKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", subtype, err)
	}

	return signed, nil
}

// Verify validates signature and expiry and returns the typed payload.
// Any failure on an untrusted token maps to model.ErrTokenInvalid; Verify
// never panics on malformed input. Subtype enforcement is left to the
// caller so a wrong-class token stays distinguishable from a forgery.
func (c *Codec) Verify(tokenString string) (model.TokenClaims, error) {
	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return c.cfg.PublicKey, nil
	})
	if err != nil || !t.Valid {
		return model.TokenClaims{}, model.ErrTokenInvalid
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return model.TokenClaims{}, model.ErrTokenInvalid
	}

	return model.TokenClaims{
		Subtype: claims.Subtype,
		UserID:  userID,
		Role:    claims.Role,
	}, nil
}
