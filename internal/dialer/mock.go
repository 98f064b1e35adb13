package dialer

import (
	"context"
	"errors"

	"github.com/frankli0324/go-rawget/internal/model"
)

// MockConnection is a Connection backed by caller supplied closures.
// A nil closure succeeds; a nil ReadStartFn yields a handle that is
// immediately at EOF.
type MockConnection struct {
	WriteFn     func(data []byte) error
	ReadStartFn func() (*ReadHandle, error)
	ReadStopFn  func(h *ReadHandle) error
	CloseFn     func() error
}

func (m *MockConnection) Write(data []byte) error {
	if m.WriteFn == nil {
		return nil
	}
	return m.WriteFn(data)
}

func (m *MockConnection) ReadStart() (*ReadHandle, error) {
	if m.ReadStartFn == nil {
		return CannedReadHandle(), nil
	}
	return m.ReadStartFn()
}

func (m *MockConnection) ReadStop(h *ReadHandle) error {
	if m.ReadStopFn == nil {
		return nil
	}
	return m.ReadStopFn(h)
}

func (m *MockConnection) Close() error {
	if m.CloseFn == nil {
		return nil
	}
	return m.CloseFn()
}

// MockConnectionFactory is a ConnectionFactory backed by ConnectFn.
type MockConnectionFactory struct {
	ConnectFn func(ctx context.Context, addr model.Address, port uint16) (Connection, error)
}

func (f *MockConnectionFactory) Connect(ctx context.Context, addr model.Address, port uint16) (Connection, error) {
	if f.ConnectFn == nil {
		return nil, &ConnectError{Addr: addr, Port: port, Err: errors.New("mock: no ConnectFn")}
	}
	return f.ConnectFn(ctx, addr, port)
}
