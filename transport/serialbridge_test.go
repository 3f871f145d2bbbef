package transport

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
)

// scriptedPort records everything written and replays canned reply bytes.
type scriptedPort struct {
	written bytes.Buffer
	replies *bytes.Reader
	closed  bool
}

func newScriptedPort(replies ...byte) *scriptedPort {
	return &scriptedPort{replies: bytes.NewReader(replies)}
}

func (p *scriptedPort) Write(b []byte) (int, error) { return p.written.Write(b) }
func (p *scriptedPort) Read(b []byte) (int, error)  { return p.replies.Read(b) }
func (p *scriptedPort) Close() error {
	p.closed = true
	return nil
}

func TestSerialBridgeRequests(t *testing.T) {
	tests := map[string]struct {
		replies   []byte
		run       func(b *SerialBridge) (any, error)
		wantWrite []byte
		want      any
	}{
		"select": {
			replies:   []byte{bridgeAck},
			run:       func(b *SerialBridge) (any, error) { return nil, b.Select() },
			wantWrite: []byte{opSelect},
		},
		"deselect": {
			replies:   []byte{bridgeAck},
			run:       func(b *SerialBridge) (any, error) { return nil, b.Deselect() },
			wantWrite: []byte{opDeselect},
		},
		"data ready high": {
			replies:   []byte{0x01},
			run:       func(b *SerialBridge) (any, error) { return b.DataReady() },
			wantWrite: []byte{opDataReady},
			want:      true,
		},
		"data ready low": {
			replies:   []byte{0x00},
			run:       func(b *SerialBridge) (any, error) { return b.DataReady() },
			wantWrite: []byte{opDataReady},
			want:      false,
		},
		"exchange": {
			replies:   []byte{0x15, 0x15},
			run:       func(b *SerialBridge) (any, error) { return b.Exchange([2]byte{'?', 'I'}) },
			wantWrite: []byte{opExchange, '?', 'I'},
			want:      [2]byte{0x15, 0x15},
		},
		"read": {
			replies: []byte{'\n', '\r'},
			run: func(b *SerialBridge) (any, error) {
				got, err := b.Read(2, 0x0A)
				return string(got), err
			},
			wantWrite: []byte{opRead, 2, 0x0A},
			want:      "\n\r",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			port := newScriptedPort(tc.replies...)
			got, err := tc.run(NewSerialBridge(port))
			if err != nil {
				t.Fatal("Unexpected error:", err)
			}
			if !bytes.Equal(port.written.Bytes(), tc.wantWrite) {
				t.Fatalf(`Wrote % x, wanted % x`, port.written.Bytes(), tc.wantWrite)
			}
			if got != tc.want {
				t.Fatalf(`Got %v, wanted %v`, got, tc.want)
			}
		})
	}
}

func TestSerialBridgeReset(t *testing.T) {
	port := newScriptedPort(bridgeAck, bridgeAck)
	if err := NewSerialBridge(port).Reset(); err != nil {
		t.Fatal("Unexpected error:", err)
	}
	if want := []byte{opResetAssert, opResetRelease}; !bytes.Equal(port.written.Bytes(), want) {
		t.Fatalf(`Wrote % x, wanted % x`, port.written.Bytes(), want)
	}
}

func TestSerialBridgeErrors(t *testing.T) {
	t.Run("bad ack", func(t *testing.T) {
		err := NewSerialBridge(newScriptedPort(0x15)).Select()
		if !errors.Is(err, ErrBridge) {
			t.Fatalf("Expected ErrBridge, got %v", err)
		}
	})
	t.Run("bad data ready level", func(t *testing.T) {
		_, err := NewSerialBridge(newScriptedPort(0x7f)).DataReady()
		if !errors.Is(err, ErrBridge) {
			t.Fatalf("Expected ErrBridge, got %v", err)
		}
	})
	t.Run("short reply", func(t *testing.T) {
		_, err := NewSerialBridge(newScriptedPort(0x15)).Exchange([2]byte{'A', 'B'})
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Fatalf("Expected io.ErrUnexpectedEOF, got %v", err)
		}
	})
	t.Run("read count out of range", func(t *testing.T) {
		port := newScriptedPort()
		_, err := NewSerialBridge(port).Read(256, 0x0A)
		if !errors.Is(err, ErrReadCount) {
			t.Fatalf("Expected ErrReadCount, got %v", err)
		}
		if port.written.Len() != 0 {
			t.Fatal("Nothing should be written for a rejected read")
		}
	})
}

func TestSerialBridgeDialer(t *testing.T) {
	t.Run("empty port name", func(t *testing.T) {
		tr, err := SerialBridgeDialer{}.Dial(context.Background())
		if !errors.Is(err, ErrNoDevice) {
			t.Fatalf("Expected ErrNoDevice, got %v", err)
		}
		if tr != nil {
			t.Fatal("Expected nil transport")
		}
	})
	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := SerialBridgeDialer{PortName: "/dev/nonexistent"}.Dial(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Expected context.Canceled, got %v", err)
		}
	})
	t.Run("nonexistent port", func(t *testing.T) {
		_, err := SerialBridgeDialer{PortName: "/dev/nonexistent-ism43362"}.Dial(context.Background())
		if err == nil {
			t.Fatal("Expected error for nonexistent port")
		}
	})
}

func TestSPIDevDialerRequiresPins(t *testing.T) {
	_, err := SPIDevDialer{Port: "SPI0.0"}.Dial(context.Background())
	if !errors.Is(err, ErrNoDevice) {
		t.Fatalf("Expected ErrNoDevice, got %v", err)
	}
}
