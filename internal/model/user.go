package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users. Create writes the
// primary record and the email-uniqueness index as one atomic claim and
// reports ErrEmailTaken on a lost race.
type UserStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (UserPrivate, error)
	GetByID(ctx context.Context, id uuid.UUID) (UserPrivate, error)
	Create(ctx context.Context, user UserPrivate) error
	Ping(ctx context.Context) error
}

// User is the public projection of an account. Attrs holds whatever extra
// fields were submitted at registration.
type User struct {
	ID    uuid.UUID      `json:"id"`
	Role  string         `json:"role"`
	Email string         `json:"email"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

// UserPrivate extends User with authentication material. The digest and
// salt never cross the store/hasher boundary: no token payload or response
// body carries them. The salt is generated once at registration and never
// rotated for the life of the account.
type UserPrivate struct {
	User
	PasswordDigest []byte
	Salt           []byte
	CreatedAt      time.Time
}
