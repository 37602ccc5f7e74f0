package channel

import "time"

// EventChannel is a Channel with no payload: readiness alone is the signal.
type EventChannel interface {
	Channel
}

// MessageChannel carries discrete values of type T.
type MessageChannel[T any] interface {
	Channel
	// Read attempts to take one value. ok is false if none is available
	// right now (including when the channel is closed with nothing queued).
	Read() (value T, ok bool)
}

// StreamChannel carries an undifferentiated byte stream, like a socket.
type StreamChannel interface {
	Channel
	// Read copies up to len(dst) bytes into dst, returning the count read.
	// Returns (0, nil) if nothing is currently available and the stream
	// isn't closed; io.EOF once closed with nothing left to read.
	Read(dst []byte) (int, error)
	// BufferSize returns the chunk size used by ReadAll-style helpers.
	BufferSize() int
	// SetBufferSize changes it. Default is 16384, per the original's
	// StreamChannel::default_buffer.
	SetBufferSize(n int)
}

const defaultStreamBufferSize = 16384

// streamBuffer is embedded by StreamChannel implementations to provide the
// BufferSize/SetBufferSize pair without repeating the field everywhere.
type streamBuffer struct {
	n int
}

func (s *streamBuffer) BufferSize() int {
	if s.n <= 0 {
		return defaultStreamBufferSize
	}
	return s.n
}

func (s *streamBuffer) SetBufferSize(n int) {
	if n <= 0 {
		n = defaultStreamBufferSize
	}
	s.n = n
}

// ReadAll drains sc until it closes, using its configured buffer size,
// mirroring StreamChannel::read_all (wait up to one second per chunk).
func ReadAll(sc StreamChannel) []byte {
	var out []byte
	buf := make([]byte, sc.BufferSize())
	for {
		if !sc.WaitFor(time.Second) {
			continue
		}
		if sc.IsClosed() {
			return out
		}
		n, _ := sc.Read(buf)
		if n > 0 {
			out = append(out, buf[:n]...)
		}
	}
}
