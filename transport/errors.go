package transport

import "errors"

var (
	// ErrBridge is returned when the serial bridge answers a request with
	// something other than the expected acknowledgement.
	ErrBridge = errors.New("serial bridge protocol error")

	// ErrNoDevice is returned when a Dialer is missing the device name it
	// needs to open.
	ErrNoDevice = errors.New("no device configured")

	// ErrReadCount is returned when Read is asked for a count the link
	// cannot carry in one request.
	ErrReadCount = errors.New("invalid read count")
)
