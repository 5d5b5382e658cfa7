package mocks

import (
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/chiefbiiko/lauth/internal/model"
)

// TokenCodec is a testify mock of model.TokenCodec.
type TokenCodec struct {
	mock.Mock
}

func (m *TokenCodec) Issue(subtype string, userID uuid.UUID, role string, ttl time.Duration) (string, error) {
	args := m.Called(subtype, userID, role, ttl)
	return args.String(0), args.Error(1)
}

func (m *TokenCodec) Verify(token string) (model.TokenClaims, error) {
	args := m.Called(token)
	return args.Get(0).(model.TokenClaims), args.Error(1)
}
