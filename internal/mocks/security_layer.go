package mocks

import (
	"net"

	"github.com/stretchr/testify/mock"
)

// SecurityLayer is a testify mock of model.SecurityLayer.
type SecurityLayer struct {
	mock.Mock
}

func (m *SecurityLayer) Listen(protocol, addr string) (net.Listener, error) {
	args := m.Called(protocol, addr)
	if ln := args.Get(0); ln != nil {
		return ln.(net.Listener), args.Error(1)
	}
	return nil, args.Error(1)
}
