package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Reporter is a testify mock of model.Reporter.
type Reporter struct {
	mock.Mock
}

func (m *Reporter) Report(ctx context.Context, err error) {
	m.Called(ctx, err)
}
