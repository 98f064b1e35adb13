package dialer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankli0324/go-rawget/internal/dialer"
	"github.com/frankli0324/go-rawget/internal/model"
)

func TestMockConnectionDefaults(t *testing.T) {
	var c dialer.Connection = &dialer.MockConnection{}
	assert.NoError(t, c.Write([]byte("x")))
	h, err := c.ReadStart()
	require.NoError(t, err)
	_, err = h.Recv()
	assert.True(t, dialer.IsEOF(err))
	assert.NoError(t, c.ReadStop(h))
	assert.NoError(t, c.Close())
}

func TestMockConnectionFactory(t *testing.T) {
	var f dialer.ConnectionFactory = &dialer.MockConnectionFactory{}
	_, err := f.Connect(context.Background(), localhost, 80)
	var ce *dialer.ConnectError
	assert.True(t, errors.As(err, &ce))

	want := &dialer.MockConnection{}
	f = &dialer.MockConnectionFactory{
		ConnectFn: func(ctx context.Context, addr model.Address, port uint16) (dialer.Connection, error) {
			assert.Equal(t, localhost, addr)
			assert.Equal(t, uint16(80), port)
			return want, nil
		},
	}
	got, err := f.Connect(context.Background(), localhost, 80)
	require.NoError(t, err)
	assert.Same(t, want, got)
}

func TestCannedReadHandle(t *testing.T) {
	reset := &dialer.TransportError{Name: "ECONNRESET", Message: "reset"}
	h := dialer.CannedReadHandle(
		dialer.ReadResult{Data: []byte("a")},
		dialer.ReadResult{Err: reset},
	)
	data, err := h.Recv()
	assert.NoError(t, err)
	assert.Equal(t, []byte("a"), data)

	_, err = h.Recv()
	assert.Same(t, reset, err)
	assert.False(t, dialer.IsEOF(err))
	assert.EqualError(t, err, "ECONNRESET: reset")

	_, err = h.Recv()
	assert.True(t, dialer.IsEOF(err))
}
