package dialer

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"strconv"
	"sync"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/frankli0324/go-rawget/internal/model"
)

var zeroDialer net.Dialer

// aLongTimeAgo is a deadline that unblocks pending reads immediately
var aLongTimeAgo = time.Unix(1, 0)

// Connect implements ConnectionFactory over a real TCP socket.
func (rt *Runtime) Connect(ctx context.Context, addr model.Address, port uint16) (Connection, error) {
	network := "tcp4"
	if addr.Family == model.V6 {
		network = "tcp6"
	}
	d := net.Dialer{
		Timeout: rt.dialTimeout(),
		Control: rt.SocketConfig.control,
	}
	hp := net.JoinHostPort(addr.IP.String(), strconv.Itoa(int(port)))
	c, err := d.DialContext(ctx, network, hp)
	if err != nil {
		rt.logger().Debug("connect failed", zap.String("addr", hp), zap.Error(err))
		return nil, &ConnectError{Addr: addr, Port: port, Err: err}
	}
	rt.logger().Debug("connected", zap.String("addr", hp))
	return &tcpConn{conn: c, bufSize: rt.readBufferSize()}, nil
}

type tcpConn struct {
	conn    net.Conn
	bufSize int

	mu     sync.Mutex
	active *ReadHandle
}

func (c *tcpConn) Write(data []byte) error {
	if _, err := c.conn.Write(data); err != nil {
		return transportError(err)
	}
	return nil
}

func (c *tcpConn) ReadStart() (*ReadHandle, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.active != nil {
		return nil, &TransportError{Name: "EALREADY", Message: "read already started"}
	}
	ch := make(chan ReadResult)
	stop, done := make(chan struct{}), make(chan struct{})
	go c.readLoop(ch, stop, done)

	h := NewReadHandle(ch)
	h.stop = func() error {
		close(stop)
		// unblock a pending Read, the loop then observes stop
		err := c.conn.SetReadDeadline(aLongTimeAgo)
		<-done
		c.conn.SetReadDeadline(time.Time{})
		if err != nil && !errors.Is(err, net.ErrClosed) {
			return transportError(err)
		}
		return nil
	}
	c.active = h
	return h, nil
}

func (c *tcpConn) readLoop(ch chan<- ReadResult, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		buf := make([]byte, c.bufSize)
		n, err := c.conn.Read(buf)
		if n > 0 {
			select {
			case ch <- ReadResult{Data: buf[:n]}:
			case <-stop:
				return
			}
		}
		if err != nil {
			select {
			case ch <- ReadResult{Err: transportError(err)}:
			case <-stop:
			}
			return
		}
	}
}

func (c *tcpConn) ReadStop(h *ReadHandle) error {
	c.mu.Lock()
	if h == nil || h != c.active {
		c.mu.Unlock()
		return &TransportError{Name: "EINVAL", Message: "read handle is not active"}
	}
	c.active = nil
	c.mu.Unlock()
	return h.stop()
}

func (c *tcpConn) Close() error {
	c.mu.Lock()
	h := c.active
	c.active = nil
	c.mu.Unlock()
	if h != nil {
		h.stop()
	}
	return c.conn.Close()
}

func transportError(err error) *TransportError {
	if errors.Is(err, io.EOF) {
		return &TransportError{Name: EOF}
	}
	name := "UNKNOWN"
	var errno syscall.Errno
	switch {
	case errors.As(err, &errno):
		if n := errnoName(errno); n != "" {
			name = n
		}
	case errors.Is(err, os.ErrDeadlineExceeded):
		name = "ETIMEDOUT"
	case errors.Is(err, net.ErrClosed):
		name = "ECANCELED"
	}
	return &TransportError{Name: name, Message: err.Error()}
}
