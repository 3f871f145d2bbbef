// Package emulator implements an ISM43362 in memory, on the wire side of
// transport.Transport: swapped 16-bit words, idle padding, prompts and the
// data-ready phases of a command exchange.
package emulator

import (
	"context"
	"strings"
	"sync"

	"github.com/LassiHeikkila/ISM43362/transport"
)

const (
	idleByte     = 0x15
	bootPrompt   = "\r\n> "
	promptSuffix = "\r\nOK\r\n> "
)

// Handler answers one command. The returned text is framed by the device
// with a leading line terminator and the trailing status prompt.
type Handler func(cmd string) string

type phase int

const (
	phaseIdle phase = iota
	phaseReceiving
	phaseReplying
)

// Device is a transport.Transport backed by a Handler.
type Device struct {
	mu       sync.Mutex
	handler  Handler
	phase    phase
	selected bool
	cmd      []byte
	pending  []byte
	received []string
	stalled  bool
	booted   bool
	closed   bool

	// BootReply replaces the prompt presented after reset.
	BootReply string
}

var _ transport.Transport = (*Device)(nil)

// New returns a powered-off device; Reset boots it.
func New(h Handler) *Device {
	return &Device{handler: h, BootReply: bootPrompt}
}

// Dialer hands out a freshly powered Device for every Dial.
type Dialer struct {
	Handler Handler
}

var _ transport.Dialer = Dialer{}

func (d Dialer) Dial(ctx context.Context) (transport.Transport, error) {
	return New(d.Handler), nil
}

// Stall freezes the data-ready line low, as a hung module would.
func (d *Device) Stall(stalled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stalled = stalled
}

// Received returns the commands decoded so far, terminators removed.
func (d *Device) Received() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.received...)
}

// Closed reports whether Close was called.
func (d *Device) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}

func (d *Device) Reset() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.booted = true
	d.cmd = nil
	d.phase = phaseReplying
	d.pending = encode(d.BootReply)
	return nil
}

func (d *Device) Select() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selected = true
	return nil
}

func (d *Device) Deselect() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.selected = false
	switch d.phase {
	case phaseReceiving:
		cmd := stripTerminator(string(d.cmd))
		d.cmd = nil
		d.received = append(d.received, cmd)
		reply := ""
		if d.handler != nil {
			reply = d.handler(cmd)
		}
		d.pending = encode("\r\n" + reply + promptSuffix)
		d.phase = phaseReplying
	case phaseReplying:
		if len(d.pending) == 0 {
			d.phase = phaseIdle
		}
	}
	return nil
}

func (d *Device) DataReady() (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stalled || !d.booted {
		return false, nil
	}
	switch d.phase {
	case phaseIdle:
		return true, nil
	case phaseReplying:
		return len(d.pending) > 0, nil
	default:
		return false, nil
	}
}

func (d *Device) Exchange(word [2]byte) ([2]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.selected && d.booted {
		d.phase = phaseReceiving
		d.cmd = append(d.cmd, word[1], word[0])
	}
	return [2]byte{idleByte, idleByte}, nil
}

func (d *Device) Read(count int, fill byte) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if count <= 0 {
		return nil, transport.ErrReadCount
	}
	out := make([]byte, count)
	n := copy(out, d.pending)
	d.pending = d.pending[n:]
	for i := n; i < count; i++ {
		out[i] = idleByte
	}
	return out, nil
}

func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// encode lays text out the way the module shifts it: one leading idle
// word, byte pairs swapped, odd tail padded with an idle byte.
func encode(text string) []byte {
	b := []byte(text)
	if len(b)%2 != 0 {
		b = append(b, idleByte)
	}
	out := make([]byte, 0, len(b)+2)
	out = append(out, idleByte, idleByte)
	for i := 0; i < len(b); i += 2 {
		out = append(out, b[i+1], b[i])
	}
	return out
}

// stripTerminator removes the padding the host appended to the command.
func stripTerminator(cmd string) string {
	if strings.HasSuffix(cmd, "\r\n") {
		return strings.TrimSuffix(cmd, "\r\n")
	}
	return strings.TrimSuffix(cmd, "\r")
}
