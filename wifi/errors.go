package wifi

import "errors"

var (
	// ErrJoinFailed is returned when the module could not associate with the
	// access point.
	ErrJoinFailed = errors.New("join failed")
	// ErrMalformedStatus is returned when a connected status reply lacks the
	// address fields.
	ErrMalformedStatus = errors.New("malformed status reply")
	// ErrResolve is returned when a DNS lookup does not yield an address.
	ErrResolve = errors.New("could not resolve host")
)
