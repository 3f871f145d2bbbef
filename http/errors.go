package http

import "errors"

var (
	// ErrBadContentLength is returned when the response header has no usable
	// Content-Length.
	ErrBadContentLength = errors.New("missing or malformed Content-Length")
	// ErrBodyUnsupported is returned for requests carrying a body.
	ErrBodyUnsupported = errors.New("request bodies are not supported")
	// ErrUnsupportedScheme is returned by Transport for anything but http.
	ErrUnsupportedScheme = errors.New("unsupported scheme")
	// ErrIncompleteBody is returned when the transaction ends before the
	// declared body length arrived.
	ErrIncompleteBody = errors.New("incomplete response body")
	// ErrNotAssociated is returned by Transport when the module has no
	// network. Client.Do reports the same condition as an empty body.
	ErrNotAssociated = errors.New("module is not associated")
)
