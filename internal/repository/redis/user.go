// Package redis persists users in Redis: one JSON record per user keyed by
// id, plus a secondary uniqueness index keyed by email pointing at the id.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/chiefbiiko/lauth/internal/model"
)

const (
	userKeyPrefix  = "lauth:user"
	emailKeyPrefix = "lauth:email"
)

var _ model.UserStore = (*UserRepository)(nil)

type UserRepository struct {
	client *redis.Client
}

func NewUserRepository(client *redis.Client) *UserRepository {
	return &UserRepository{client: client}
}

func userKey(id uuid.UUID) string {
	return userKeyPrefix + ":" + id.String()
}

func emailKey(email string) string {
	return emailKeyPrefix + ":" + email
}

type userRecord struct {
	ID             uuid.UUID      `json:"id"`
	Role           string         `json:"role"`
	Email          string         `json:"email"`
	Attrs          map[string]any `json:"attrs,omitempty"`
	PasswordDigest []byte         `json:"passwordDigest"`
	Salt           []byte         `json:"salt"`
	CreatedAt      time.Time      `json:"createdAt"`
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	n, err := r.client.Exists(ctx, emailKey(email)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check email index: %w", err)
	}
	return n > 0, nil
}

// Create claims the email index with SETNX before writing the record, so
// concurrent registrations for the same email cannot both win. If the
// record write fails the claim is rolled back rather than left orphaned.
func (r *UserRepository) Create(ctx context.Context, user model.UserPrivate) error {
	encoded, err := json.Marshal(userRecord{
		ID:             user.ID,
		Role:           user.Role,
		Email:          user.Email,
		Attrs:          user.Attrs,
		PasswordDigest: user.PasswordDigest,
		Salt:           user.Salt,
		CreatedAt:      user.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to encode user record: %w", err)
	}

	claimed, err := r.client.SetNX(ctx, emailKey(user.Email), user.ID.String(), 0).Result()
	if err != nil {
		return fmt.Errorf("failed to claim email index: %w", err)
	}
	if !claimed {
		return model.ErrEmailTaken
	}

	if err := r.client.Set(ctx, userKey(user.ID), encoded, 0).Err(); err != nil {
		r.client.Del(ctx, emailKey(user.Email))
		return fmt.Errorf("failed to store user record: %w", err)
	}

	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.UserPrivate, error) {
	idValue, err := r.client.Get(ctx, emailKey(email)).Result()
	if errors.Is(err, redis.Nil) {
		return model.UserPrivate{}, model.ErrNotFound
	}
	if err != nil {
		return model.UserPrivate{}, fmt.Errorf("failed to read email index: %w", err)
	}

	id, err := uuid.Parse(idValue)
	if err != nil {
		return model.UserPrivate{}, fmt.Errorf("failed to parse indexed user id: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.UserPrivate, error) {
	raw, err := r.client.Get(ctx, userKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.UserPrivate{}, model.ErrNotFound
	}
	if err != nil {
		return model.UserPrivate{}, fmt.Errorf("failed to read user record: %w", err)
	}

	var record userRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return model.UserPrivate{}, fmt.Errorf("failed to decode user record: %w", err)
	}

	return model.UserPrivate{
		User: model.User{
			ID:    record.ID,
			Role:  record.Role,
			Email: record.Email,
			Attrs: record.Attrs,
		},
		PasswordDigest: record.PasswordDigest,
		Salt:           record.Salt,
		CreatedAt:      record.CreatedAt,
	}, nil
}

func (r *UserRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
