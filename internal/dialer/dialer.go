package dialer

import (
	"context"
	"errors"
	"fmt"

	"github.com/frankli0324/go-rawget/internal/model"
)

// Connection is a single duplex byte stream. It mirrors the parts of a
// TCP socket a request needs, so that requests can be driven against
// in-process doubles as well as the real network.
type Connection interface {
	// Write sends data, failing with a *TransportError.
	Write(data []byte) error
	// ReadStart begins delivering received chunks through the returned handle.
	ReadStart() (*ReadHandle, error)
	// ReadStop ends delivery for h. It must be called exactly once for
	// every handle ReadStart returned.
	ReadStop(h *ReadHandle) error
	// Close releases the underlying stream.
	Close() error
}

// ConnectionFactory establishes connections. *Runtime is the real
// implementation, *MockConnectionFactory the test double.
type ConnectionFactory interface {
	Connect(ctx context.Context, addr model.Address, port uint16) (Connection, error)
}

// EOF is the name of the TransportError that ends a stream cleanly.
const EOF = "EOF"

// TransportError is a failure reported by the transport, identified by
// a short name such as "EOF" or "ECONNRESET".
type TransportError struct {
	Name    string
	Message string
}

func (e *TransportError) Error() string {
	if e.Message == "" {
		return e.Name
	}
	return e.Name + ": " + e.Message
}

// IsEOF reports whether err is the end-of-stream TransportError.
func IsEOF(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Name == EOF
}

type ConnectError struct {
	Addr model.Address
	Port uint16
	Err  error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("connect %s:%d: %v", e.Addr, e.Port, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

type ReadResult struct {
	Data []byte
	Err  error
}

// ReadHandle is the live subscription returned by Connection.ReadStart.
// Chunks and the terminal error arrive in transport order.
type ReadHandle struct {
	c <-chan ReadResult

	// owner-private state, set by the Connection that created the handle
	stop func() error
}

func NewReadHandle(c <-chan ReadResult) *ReadHandle {
	return &ReadHandle{c: c}
}

// CannedReadHandle returns a handle that yields results and then EOF.
func CannedReadHandle(results ...ReadResult) *ReadHandle {
	c := make(chan ReadResult, len(results))
	for _, r := range results {
		c <- r
	}
	close(c)
	return NewReadHandle(c)
}

// Recv blocks until the next chunk or terminal error. A drained handle
// reports EOF.
func (h *ReadHandle) Recv() ([]byte, error) {
	r, ok := <-h.c
	if !ok {
		return nil, &TransportError{Name: EOF}
	}
	return r.Data, r.Err
}
