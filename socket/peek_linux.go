//go:build linux

package socket

import (
	"syscall"

	"golang.org/x/sys/unix"
)

// init installs the Linux MSG_PEEK backend: a single non-blocking recvfrom
// with MSG_PEEK|MSG_DONTWAIT, which inspects the socket's receive buffer
// without consuming it and without the deadline-based fallback's extra
// syscalls to arm/disarm a read deadline. Grounded on eventloop/poller_linux.go's
// raw-fd-via-SyscallConn idiom.
func init() {
	peekFD = func(c syscall.Conn) (b byte, hasByte bool, eof bool, ok bool) {
		raw, err := c.SyscallConn()
		if err != nil {
			return 0, false, false, false
		}
		var buf [1]byte
		var n int
		var recvErr error
		ctlErr := raw.Read(func(fd uintptr) bool {
			n, _, recvErr = unix.Recvfrom(int(fd), buf[:], unix.MSG_PEEK|unix.MSG_DONTWAIT)
			return true
		})
		if ctlErr != nil {
			return 0, false, false, false
		}
		switch recvErr {
		case nil:
			if n == 0 {
				return 0, false, true, true
			}
			return buf[0], true, false, true
		case unix.EAGAIN, unix.EWOULDBLOCK:
			return 0, false, false, true
		default:
			return 0, false, false, false
		}
	}
}
