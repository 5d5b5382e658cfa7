package model

import (
	"time"

	"github.com/google/uuid"
)

// Token subtypes. Access tokens are meant for resource endpoints, refresh
// tokens only for this service. The two are never interchangeable, however
// similar their shape.
const (
	SubtypeAccess  = "access"
	SubtypeRefresh = "refresh"
)

// TokenCodec issues and verifies signed, typed, time-bounded tokens.
// A non-positive ttl on Issue selects the codec's default for the subtype.
// Verify fails on any forged, malformed, mis-keyed or expired token; it
// does not enforce the subtype, so callers can tell a wrong-class token
// apart from an invalid one.
type TokenCodec interface {
	Issue(subtype string, userID uuid.UUID, role string, ttl time.Duration) (string, error)
	Verify(token string) (TokenClaims, error)
}

// TokenClaims is the verified payload of a token.
type TokenClaims struct {
	Subtype string
	UserID  uuid.UUID
	Role    string
}

// TokenPair is the response body of a successful sign-in or refresh.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
