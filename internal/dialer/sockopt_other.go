//go:build !darwin && !linux
// +build !darwin,!linux

package dialer

import "syscall"

// socket options are only applied on darwin and linux
func (c *SocketConfig) control(network, address string, raw syscall.RawConn) error {
	return nil
}

func errnoName(errno syscall.Errno) string {
	return ""
}
