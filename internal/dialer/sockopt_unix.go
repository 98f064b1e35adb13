//go:build darwin || linux
// +build darwin linux

package dialer

import (
	"syscall"

	"golang.org/x/sys/unix"
)

func (c *SocketConfig) control(network, address string, raw syscall.RawConn) error {
	if c == nil {
		return nil
	}
	var serr error
	if err := raw.Control(func(fd uintptr) {
		if c.NoDelay {
			if serr = unix.SetsockoptInt(int(fd), unix.IPPROTO_TCP, unix.TCP_NODELAY, 1); serr != nil {
				return
			}
		}
		if c.RecvBuffer > 0 {
			serr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_RCVBUF, c.RecvBuffer)
		}
	}); err != nil {
		return err
	}
	return serr
}

func errnoName(errno syscall.Errno) string {
	return unix.ErrnoName(errno)
}
