package request_test

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/netip"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/net/nettest"

	"github.com/frankli0324/go-rawget/internal/dialer"
	"github.com/frankli0324/go-rawget/internal/model"
	"github.com/frankli0324/go-rawget/internal/request"
)

const response = "HTTP/1.0 200 OK\r\nContent-Type: text/plain\r\n\r\nhello from the loopback server\n"

// serveOnce accepts a single connection, hands the request bytes to got
// and replies with resp before closing.
func serveOnce(t *testing.T, ln net.Listener, reqLen int, resp string) <-chan []byte {
	t.Helper()
	got := make(chan []byte, 1)
	go func() {
		defer close(got)
		c, err := ln.Accept()
		if err != nil {
			return
		}
		defer c.Close()
		buf := make([]byte, reqLen)
		if _, err := io.ReadFull(c, buf); err != nil {
			return
		}
		got <- buf
		io.WriteString(c, resp)
	}()
	return got
}

// loopbackFactory connects wherever the driver asks, but to ln's port
func loopbackFactory(rt *dialer.Runtime, ln net.Listener, ports chan<- uint16) dialer.ConnectionFactory {
	port := uint16(ln.Addr().(*net.TCPAddr).Port)
	return &dialer.MockConnectionFactory{
		ConnectFn: func(ctx context.Context, addr model.Address, p uint16) (dialer.Connection, error) {
			ports <- p
			return rt.Connect(ctx, addr, port)
		},
	}
}

func TestLoopbackRequest(t *testing.T) {
	ln, err := nettest.NewLocalListener("tcp4")
	require.NoError(t, err)
	defer ln.Close()

	uri := model.URI{Host: "loopback.test", Path: "/greeting"}
	wantReq := "GET /greeting HTTP/1.0\r\nHost: loopback.test\r\n\r\n"
	got := serveOnce(t, ln, len(wantReq), response)

	rt := dialer.NewRuntime(zaptest.NewLogger(t))
	rt.SocketConfig.ReadBufferSize = 8 // force several chunks
	ports := make(chan uint16, 1)
	resolve := dialer.StaticResolver(map[string][]model.Address{
		uri.Host: {model.AddressV4(netip.MustParseAddr("127.0.0.1"))},
	})

	req := request.New(resolve, loopbackFactory(rt, ln, ports), uri, request.WithLogger(rt.Logger))
	events := request.Sequence(context.Background(), req)

	assert.Equal(t, uint16(request.Port), <-ports)
	assert.Equal(t, wantReq, string(<-got))

	var body bytes.Buffer
	for _, ev := range events {
		require.Equal(t, model.EventPayload, ev.Kind, "unexpected %s", ev)
		assert.LessOrEqual(t, len(ev.Payload), 8)
		body.Write(ev.Payload)
	}
	assert.Greater(t, len(events), 1)
	assert.Equal(t, response, body.String())
}

func TestLoopbackRefused(t *testing.T) {
	ln, err := nettest.NewLocalListener("tcp4")
	require.NoError(t, err)
	ports := make(chan uint16, 1)
	rt := dialer.NewRuntime(zaptest.NewLogger(t))
	factory := loopbackFactory(rt, ln, ports)
	ln.Close() // nothing listens on the port any more

	resolve := dialer.StaticResolver(map[string][]model.Address{
		"refused.test": {model.AddressV4(netip.MustParseAddr("127.0.0.1"))},
	})
	req := request.New(resolve, factory, model.URI{Host: "refused.test", Path: "/"})
	assert.Equal(t, []model.RequestEvent{model.ErrorEvent(model.ErrConnect)},
		request.Sequence(context.Background(), req))
}

func TestUnresolvableHost(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	rt := dialer.NewRuntime(zaptest.NewLogger(t))
	req := request.OnRuntime(rt, model.URI{Host: "example.com_not_real", Path: "/"})
	assert.Equal(t, []model.RequestEvent{model.ErrorEvent(model.ErrDNSResolution)}, request.Sequence(ctx, req))
}

// the following talk to the internet

func requireNetwork(t *testing.T) {
	if os.Getenv("RAWGET_NETWORK_TESTS") != "1" {
		t.Skip("set RAWGET_NETWORK_TESTS=1 to run tests that reach the internet")
	}
}

func TestConnectError(t *testing.T) {
	requireNetwork(t)
	// the first octet of a class A address cannot be 0
	rt := dialer.NewRuntime(zaptest.NewLogger(t))
	req := request.OnRuntime(rt, model.URI{Host: "0.42.42.42", Path: "/"})
	assert.Equal(t, []model.RequestEvent{model.ErrorEvent(model.ErrConnect)},
		request.Sequence(context.Background(), req))
}

func TestConnectSuccess(t *testing.T) {
	requireNetwork(t)
	rt := dialer.NewRuntime(zaptest.NewLogger(t))
	req := request.OnRuntime(rt, model.URI{Host: "example.com", Path: "/"})
	for _, ev := range request.Sequence(context.Background(), req) {
		assert.False(t, ev.IsError(), "unexpected %s", ev)
	}
}
