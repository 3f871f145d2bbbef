// Package transport provides the hardware side of the ISM43362 link: a
// chip-select gated, 16-bit word SPI exchange plus the data-ready and reset
// lines.
package transport

import (
	"context"
	"time"
)

//go:generate mockgen -source=transport.go -destination=mock_transport.go -package=transport

// Minimum waits required by the module between line transitions.
const (
	// ResetHold is how long the reset line is held asserted.
	ResetHold = 10 * time.Millisecond
	// BootTime is how long the module needs after reset release before it
	// presents its prompt.
	BootTime = 500 * time.Millisecond
	// ChipSelectSettle follows every chip-select transition.
	ChipSelectSettle = time.Millisecond
)

// Transport represents an established link to an ISM43362 module.
//
// The module moves data in 16-bit words. Exchange is full duplex: while the
// host shifts a word out, the module shifts one back. Read clocks out count
// bytes while sending fill on MOSI. None of the methods are safe for
// concurrent use; a single owner drives the link.
type Transport interface {
	// Reset pulses the reset line and waits for the module to boot.
	Reset() error
	// Select drives chip-select active (low).
	Select() error
	// Deselect drives chip-select inactive (high).
	Deselect() error
	// DataReady reports the level of the data-ready line.
	DataReady() (bool, error)
	// Exchange sends one word and returns the word received at the same time.
	Exchange(word [2]byte) ([2]byte, error)
	// Read clocks in count bytes while transmitting fill.
	Read(count int, fill byte) ([]byte, error)
	// Close releases the underlying device.
	Close() error
}

// Dialer opens a Transport to the module.
//
// Dialer abstracts how the link is created (spidev with GPIO lines, a serial
// bridge, or an emulator) and is only used during construction.
type Dialer interface {
	Dial(ctx context.Context) (Transport, error)
}

// pulseReset drives the reset sequence shared by the hardware transports.
func pulseReset(assert, release func() error) error {
	if err := assert(); err != nil {
		return err
	}
	time.Sleep(ResetHold)
	if err := release(); err != nil {
		return err
	}
	time.Sleep(BootTime)
	return nil
}
