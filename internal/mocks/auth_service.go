package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/chiefbiiko/lauth/internal/model"
)

// AuthService is a testify mock of the HTTP layer's AuthService.
type AuthService struct {
	mock.Mock
}

func (m *AuthService) SignUp(ctx context.Context, doc map[string]any) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *AuthService) SignIn(ctx context.Context, email, password string) (model.TokenPair, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.TokenPair), args.Error(1)
}

func (m *AuthService) Refresh(ctx context.Context, refreshToken string) (model.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(model.TokenPair), args.Error(1)
}
