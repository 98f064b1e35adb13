package dialer

import (
	"time"

	"go.uber.org/zap"
)

// DefaultDialTimeout bounds Connect when Runtime.DialTimeout is zero.
const DefaultDialTimeout = 2 * time.Second

// DefaultReadBufferSize is the largest chunk a single read delivers.
const DefaultReadBufferSize = 4096

// SocketConfig holds options applied to every socket before it connects.
type SocketConfig struct {
	NoDelay        bool // TCP_NODELAY
	RecvBuffer     int  // SO_RCVBUF in bytes, 0 keeps the system default
	ReadBufferSize int  // bytes per chunk, 0 uses DefaultReadBufferSize
}

func (c *SocketConfig) Clone() *SocketConfig {
	if c == nil {
		return nil
	}
	cc := *c
	return &cc
}

// Runtime is the explicitly constructed I/O environment requests run on.
// It resolves names and opens TCP connections, so it is both the real
// Resolver (via Resolve) and the real ConnectionFactory.
//
// A Runtime holds configuration only, no connection state, and may be
// shared by any number of requests.
type Runtime struct {
	ResolveConfig *ResolveConfig
	SocketConfig  *SocketConfig
	DialTimeout   time.Duration
	Logger        *zap.Logger
}

func NewRuntime(logger *zap.Logger) *Runtime {
	return &Runtime{
		ResolveConfig: &ResolveConfig{},
		SocketConfig:  &SocketConfig{NoDelay: true},
		DialTimeout:   DefaultDialTimeout,
		Logger:        logger,
	}
}

func (rt *Runtime) Clone() *Runtime {
	return &Runtime{
		ResolveConfig: rt.ResolveConfig.Clone(),
		SocketConfig:  rt.SocketConfig.Clone(),
		DialTimeout:   rt.DialTimeout,
		Logger:        rt.Logger,
	}
}

func (rt *Runtime) logger() *zap.Logger {
	if rt.Logger == nil {
		return zap.NewNop()
	}
	return rt.Logger
}

func (rt *Runtime) readBufferSize() int {
	if rt.SocketConfig == nil || rt.SocketConfig.ReadBufferSize <= 0 {
		return DefaultReadBufferSize
	}
	return rt.SocketConfig.ReadBufferSize
}

func (rt *Runtime) dialTimeout() time.Duration {
	if rt.DialTimeout <= 0 {
		return DefaultDialTimeout
	}
	return rt.DialTimeout
}
