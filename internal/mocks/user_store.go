package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/chiefbiiko/lauth/internal/model"
)

// UserStore is a testify mock of model.UserStore.
type UserStore struct {
	mock.Mock
}

func (m *UserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.UserPrivate, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.UserPrivate), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.UserPrivate, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.UserPrivate), args.Error(1)
}

func (m *UserStore) Create(ctx context.Context, user model.UserPrivate) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
