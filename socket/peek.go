package socket

import "syscall"

// peekFD attempts a true non-blocking MSG_PEEK read on platforms with a
// registered backend (see peek_linux.go, grounded on x/sys/unix and
// eventloop/poller_linux.go's raw-fd idiom). ok=false means unsupported on
// this platform/conn; the caller falls back to the portable
// deadline-based peek in Socket.peek.
var peekFD = func(c syscall.Conn) (b byte, hasByte bool, eof bool, ok bool) {
	return 0, false, false, false
}
