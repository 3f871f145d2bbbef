package module

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/LassiHeikkila/ISM43362/transport"
)

type ism43362 struct {
	mu        sync.Mutex
	transport transport.Transport
	settings  Settings
	log       logr.Logger
	closed    bool
}

// NewISM43362 resets the module behind t and returns a ready to use Module.
//
// The module must answer the reset with its bare prompt; anything else is
// reported as a *ProtocolError and the transport is left open for the
// caller to close.
func NewISM43362(ctx context.Context, t transport.Transport, settings Settings) (Module, error) {
	if t == nil {
		return nil, ErrNoTransport
	}
	settings.setDefaults()
	m := &ism43362{
		transport: t,
		settings:  settings,
		log:       settings.Logger.WithName("ism43362"),
	}
	if err := m.init(ctx); err != nil {
		return nil, fmt.Errorf("initialize module: %w", err)
	}
	return m, nil
}

// Open dials the transport and initializes the module on it. The transport
// is closed again if initialization fails.
func Open(ctx context.Context, d transport.Dialer, settings Settings) (Module, error) {
	if d == nil {
		return nil, ErrNoTransport
	}
	t, err := d.Dial(ctx)
	if err != nil {
		return nil, err
	}
	m, err := NewISM43362(ctx, t, settings)
	if err != nil {
		if t != nil {
			t.Close()
		}
		return nil, err
	}
	return m, nil
}

func (m *ism43362) init(ctx context.Context) error {
	m.log.V(1).Info("Resetting module")
	if err := m.transport.Reset(); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	if err := m.transport.Select(); err != nil {
		return fmt.Errorf("select: %w", err)
	}
	data, err := m.drain(ctx)
	if err != nil {
		return err
	}
	data = trimIdle(data)
	if string(data) != bootPrompt {
		return &ProtocolError{Want: bootPrompt, Got: data}
	}
	m.log.V(1).Info("Module ready")
	return nil
}

// SendCommand sends cmd and returns the cleaned reply.
func (m *ism43362) SendCommand(ctx context.Context, cmd string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return "", ErrClosed
	}

	m.log.V(1).Info("Sending command", "cmd", redact(cmd))
	resp, err := m.roundTrip(ctx, padCommand(cmd))
	if err != nil {
		return "", fmt.Errorf("command %q: %w", redact(cmd), err)
	}
	m.log.V(1).Info("Got response", "cmd", redact(cmd), "resp", string(resp))
	return string(resp), nil
}

func (m *ism43362) roundTrip(ctx context.Context, payload []byte) ([]byte, error) {
	if err := m.handshake(); err != nil {
		return nil, err
	}
	// whatever the module clocks out while we transmit is not part of the reply
	for i := 0; i+1 < len(payload); i += 2 {
		if _, err := m.transport.Exchange(swap([2]byte{payload[i], payload[i+1]})); err != nil {
			return nil, fmt.Errorf("exchange word %d: %w", i/2, err)
		}
	}

	if err := m.handshake(); err != nil {
		return nil, err
	}
	if err := m.waitDataReady(ctx); err != nil {
		return nil, err
	}
	data, err := m.drain(ctx)
	if err != nil {
		return nil, err
	}

	if err := m.transport.Deselect(); err != nil {
		return nil, fmt.Errorf("deselect: %w", err)
	}
	// the module raises data-ready again once it is back to idle
	if err := m.waitDataReady(ctx); err != nil {
		return nil, err
	}
	return cleanResponse(data), nil
}

// handshake toggles chip-select, which the module needs before every phase.
func (m *ism43362) handshake() error {
	if err := m.transport.Deselect(); err != nil {
		return fmt.Errorf("deselect: %w", err)
	}
	if err := m.transport.Select(); err != nil {
		return fmt.Errorf("select: %w", err)
	}
	return nil
}

// waitDataReady polls the data-ready line until it is high, the context is
// done or ReadyTimeout elapses. A negative ReadyTimeout waits forever.
func (m *ism43362) waitDataReady(ctx context.Context) error {
	clock := m.settings.Clock
	deadline := clock.Now().Add(m.settings.ReadyTimeout)
	for {
		ready, err := m.transport.DataReady()
		if err != nil {
			return fmt.Errorf("sample data ready: %w", err)
		}
		if ready {
			return nil
		}
		if err := m.expired(ctx, deadline); err != nil {
			return err
		}
		clock.Sleep(m.settings.PollInterval)
	}
}

// drain reads words while data-ready is high, dropping idle words and
// restoring byte order.
func (m *ism43362) drain(ctx context.Context) ([]byte, error) {
	deadline := m.settings.Clock.Now().Add(m.settings.ReadyTimeout)
	var data []byte
	for {
		ready, err := m.transport.DataReady()
		if err != nil {
			return nil, fmt.Errorf("sample data ready: %w", err)
		}
		if !ready {
			return data, nil
		}
		b, err := m.transport.Read(2, fillByte)
		if err != nil {
			return nil, fmt.Errorf("read word: %w", err)
		}
		if len(b) != 2 {
			return nil, fmt.Errorf("read word: got %d bytes", len(b))
		}
		if w := [2]byte{b[0], b[1]}; w != idleWord {
			w = swap(w)
			data = append(data, w[:]...)
		}
		if err := m.expired(ctx, deadline); err != nil {
			return nil, err
		}
	}
}

func (m *ism43362) expired(ctx context.Context, deadline time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.settings.ReadyTimeout >= 0 && !m.settings.Clock.Now().Before(deadline) {
		return fmt.Errorf("%w: data ready not settled within %s", ErrTimeout, m.settings.ReadyTimeout)
	}
	return nil
}

// Close releases the transport. Further commands fail with ErrClosed.
func (m *ism43362) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}
	m.closed = true
	return m.transport.Close()
}

// passphrasePrefix starts the command that carries the WiFi passphrase.
const passphrasePrefix = "C2="

// redact hides the passphrase from traces.
func redact(cmd string) string {
	if strings.HasPrefix(cmd, passphrasePrefix) {
		return passphrasePrefix + "<redacted>"
	}
	return cmd
}
