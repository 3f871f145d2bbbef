package module

import (
	"errors"
	"fmt"
)

var (
	// ErrNoTransport is returned when a module is constructed without a
	// transport.
	ErrNoTransport = errors.New("no transport configured")

	// ErrClosed is returned when a command is sent after Close.
	ErrClosed = errors.New("module closed")

	// ErrTimeout is returned when the module does not raise its data-ready
	// line within the configured bound.
	//
	// This usually means the module is hung or not powered. The channel is
	// left in an unknown phase; callers should re-initialize.
	ErrTimeout = errors.New("timed out waiting for module")
)

// ProtocolError reports that the module did not answer with the bytes the
// protocol requires, e.g. a missing idle prompt after reset.
type ProtocolError struct {
	Want string
	Got  []byte
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("module protocol error: expected %q, got %q", e.Want, e.Got)
}
