package tcp

import "errors"

var (
	// ErrSendRejected is returned when the module refuses an S3 payload.
	ErrSendRejected = errors.New("module rejected send")
	// ErrPayloadTooLarge is returned for payloads the module cannot take in
	// one S3 command.
	ErrPayloadTooLarge = errors.New("payload too large")
)
