package dialer

import (
	"github.com/frankli0324/go-rawget/internal/dialer"
	"github.com/frankli0324/go-rawget/internal/model"
)

// Connection is the duplex byte stream a request is written to and read
// from. Requests only ever talk to a Connection, never to a socket, so
// any implementation may be swapped in, for example a *[MockConnection]
// in tests.
type Connection = dialer.Connection

// ConnectionFactory opens Connections. Like [Runtime], a factory MUST NOT
// hold per-request state: one factory may serve any number of requests.
type ConnectionFactory = dialer.ConnectionFactory

// Runtime is the default implementation of both [Resolver] (through its
// Resolve method) and [ConnectionFactory], backed by the host's DNS and
// TCP stack. It holds the connection related configs like [ResolveConfig]
// and [SocketConfig].
type Runtime = dialer.Runtime

type SocketConfig = dialer.SocketConfig

// we need a dedicated resolver config for one scenario:
//
//	to customize the DNS server used for resolving hostname
//
// the standard library didn't provide a intuitive way of
// setting DNS server addresses since it only follows the
// system configuration (e.g. /etc/resolv.conf), leaving us only
// one option of using [net.Resolver.Dial] hook with a Go Resolver.
type ResolveConfig = dialer.ResolveConfig

type Resolver = dialer.Resolver

type (
	ReadHandle     = dialer.ReadHandle
	ReadResult     = dialer.ReadResult
	TransportError = dialer.TransportError
	ConnectError   = dialer.ConnectError

	MockConnection        = dialer.MockConnection
	MockConnectionFactory = dialer.MockConnectionFactory
)

const (
	EOF = dialer.EOF

	V4 = model.V4
	V6 = model.V6

	DefaultDialTimeout = dialer.DefaultDialTimeout
)

var (
	NewRuntime       = dialer.NewRuntime
	StaticResolver   = dialer.StaticResolver
	NewReadHandle    = dialer.NewReadHandle
	CannedReadHandle = dialer.CannedReadHandle
	IsEOF            = dialer.IsEOF
)
