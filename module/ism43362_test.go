package module_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-logr/logr/testr"
	"go.uber.org/mock/gomock"

	"github.com/LassiHeikkila/ISM43362/emulator"
	"github.com/LassiHeikkila/ISM43362/module"
	"github.com/LassiHeikkila/ISM43362/transport"
)

// fakeClock only moves forward when slept on.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time        { return c.now }
func (c *fakeClock) Sleep(d time.Duration) { c.now = c.now.Add(d) }

func newEmulated(t *testing.T, h emulator.Handler) (module.Module, *emulator.Device) {
	t.Helper()
	dev := emulator.New(h)
	m, err := module.NewISM43362(context.Background(), dev, module.Settings{
		ReadyTimeout: time.Second,
		Clock:        &fakeClock{},
		Logger:       testr.New(t),
	})
	if err != nil {
		t.Fatal("Unexpected error from NewISM43362:", err)
	}
	return m, dev
}

func TestSendCommand(t *testing.T) {
	tests := map[string]struct {
		cmd   string
		reply string
		want  string
	}{
		"firmware": {
			cmd:   "I?",
			reply: "C3.5.2.5.STM",
			want:  "C3.5.2.5.STM",
		},
		"odd length command": {
			cmd:   "C1=abc",
			reply: "",
			want:  "",
		},
		"even length command": {
			cmd:   "C1=abcd",
			reply: "",
			want:  "",
		},
		"odd length reply": {
			cmd:   "Z5",
			reply: "C4:7F:51:04:6F:0E",
			want:  "C4:7F:51:04:6F:0E",
		},
		"reply starting with terminator keeps the second one": {
			cmd:   "R0",
			reply: "\r\nbody",
			want:  "\r\nbody",
		},
		"multi line reply": {
			cmd:   "C0",
			reply: "[JOIN   ] Test,192.168.1.23,0,0",
			want:  "[JOIN   ] Test,192.168.1.23,0,0",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m, dev := newEmulated(t, func(cmd string) string {
				if cmd != tc.cmd {
					t.Errorf(`Module got %q, wanted %q`, cmd, tc.cmd)
				}
				return tc.reply
			})
			defer m.Close()

			got, err := m.SendCommand(context.Background(), tc.cmd)
			if err != nil {
				t.Fatal("Unexpected error:", err)
			}
			if got != tc.want {
				t.Fatalf(`Got %q, wanted %q`, got, tc.want)
			}
			if received := dev.Received(); len(received) != 1 || received[0] != tc.cmd {
				t.Fatalf(`Module received %q`, received)
			}
		})
	}
}

func TestSendCommandSequence(t *testing.T) {
	n := 0
	m, dev := newEmulated(t, func(cmd string) string {
		n++
		return cmd
	})
	defer m.Close()

	for _, cmd := range []string{"I?", "Z5", "C?", "D0=example.com"} {
		got, err := m.SendCommand(context.Background(), cmd)
		if err != nil {
			t.Fatalf("Command %q: %v", cmd, err)
		}
		if got != cmd {
			t.Fatalf(`Got %q, wanted echo %q`, got, cmd)
		}
	}
	if n != 4 || len(dev.Received()) != 4 {
		t.Fatalf("Expected 4 commands, handler saw %d, device saw %d", n, len(dev.Received()))
	}
}

func TestInitFailure(t *testing.T) {
	dev := emulator.New(nil)
	dev.BootReply = "\r\nERROR\r\n"
	m, err := module.NewISM43362(context.Background(), dev, module.Settings{Clock: &fakeClock{}})
	if m != nil {
		t.Fatal("Expected nil module on init failure")
	}
	var perr *module.ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("Expected *ProtocolError, got %v", err)
	}
	if string(perr.Got) != "\r\nERROR\r\n" {
		t.Fatalf("ProtocolError carries %q", perr.Got)
	}
}

func TestNoTransport(t *testing.T) {
	if _, err := module.NewISM43362(context.Background(), nil, module.Settings{}); !errors.Is(err, module.ErrNoTransport) {
		t.Fatalf("Expected ErrNoTransport, got %v", err)
	}
	if _, err := module.Open(context.Background(), nil, module.Settings{}); !errors.Is(err, module.ErrNoTransport) {
		t.Fatalf("Expected ErrNoTransport from Open, got %v", err)
	}
}

func TestStalledModuleTimesOut(t *testing.T) {
	clock := &fakeClock{}
	dev := emulator.New(func(string) string { return "" })
	m, err := module.NewISM43362(context.Background(), dev, module.Settings{
		ReadyTimeout: 50 * time.Millisecond,
		PollInterval: time.Millisecond,
		Clock:        clock,
	})
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}
	dev.Stall(true)

	start := clock.Now()
	_, err = m.SendCommand(context.Background(), "C0")
	if !errors.Is(err, module.ErrTimeout) {
		t.Fatalf("Expected ErrTimeout, got %v", err)
	}
	if waited := clock.Now().Sub(start); waited < 50*time.Millisecond {
		t.Fatalf("Gave up after %s", waited)
	}
}

func TestCanceledContext(t *testing.T) {
	dev := emulator.New(func(string) string { return "" })
	m, err := module.NewISM43362(context.Background(), dev, module.Settings{Clock: &fakeClock{}})
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}
	dev.Stall(true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := m.SendCommand(ctx, "I?"); !errors.Is(err, context.Canceled) {
		t.Fatalf("Expected context.Canceled, got %v", err)
	}
}

func TestClose(t *testing.T) {
	m, dev := newEmulated(t, nil)
	if err := m.Close(); err != nil {
		t.Fatal("Unexpected error from Close:", err)
	}
	if !dev.Closed() {
		t.Fatal("Transport was not closed")
	}
	if err := m.Close(); !errors.Is(err, module.ErrClosed) {
		t.Fatalf("Expected ErrClosed on second Close, got %v", err)
	}
	if _, err := m.SendCommand(context.Background(), "I?"); !errors.Is(err, module.ErrClosed) {
		t.Fatalf("Expected ErrClosed, got %v", err)
	}
}

// wireWords returns the words the module shifts out for text, as read by the
// host before swapping.
func wireWords(text string) [][]byte {
	var words [][]byte
	for i := 0; i < len(text); i += 2 {
		words = append(words, []byte{text[i+1], text[i]})
	}
	return words
}

func TestWireChoreography(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := transport.NewMockTransport(ctrl)
	clock := module.NewMockClock(ctrl)

	now := time.Unix(0, 0)
	clock.EXPECT().Now().Return(now).AnyTimes()

	idle := []byte{0x15, 0x15}
	var calls []any

	// reset and boot prompt
	calls = append(calls,
		tr.EXPECT().Reset().Return(nil),
		tr.EXPECT().Select().Return(nil),
	)
	for _, w := range append([][]byte{idle}, wireWords("\r\n> ")...) {
		calls = append(calls,
			tr.EXPECT().DataReady().Return(true, nil),
			tr.EXPECT().Read(2, byte(0x0A)).Return(w, nil),
		)
	}
	calls = append(calls, tr.EXPECT().DataReady().Return(false, nil))

	// "I?" goes out as "?I" then "\n\r"
	calls = append(calls,
		tr.EXPECT().Deselect().Return(nil),
		tr.EXPECT().Select().Return(nil),
		tr.EXPECT().Exchange([2]byte{'?', 'I'}).Return([2]byte{0x15, 0x15}, nil),
		tr.EXPECT().Exchange([2]byte{'\n', '\r'}).Return([2]byte{0x15, 0x15}, nil),
		tr.EXPECT().Deselect().Return(nil),
		tr.EXPECT().Select().Return(nil),
		tr.EXPECT().DataReady().Return(false, nil),
		clock.EXPECT().Sleep(gomock.Any()),
		tr.EXPECT().DataReady().Return(true, nil),
	)
	for _, w := range append([][]byte{idle, idle}, wireWords("\r\nV1\r\nOK\r\n> ")...) {
		calls = append(calls,
			tr.EXPECT().DataReady().Return(true, nil),
			tr.EXPECT().Read(2, byte(0x0A)).Return(w, nil),
		)
	}
	calls = append(calls,
		tr.EXPECT().DataReady().Return(false, nil),
		tr.EXPECT().Deselect().Return(nil),
		tr.EXPECT().DataReady().Return(true, nil),
	)
	gomock.InOrder(calls...)

	m, err := module.NewISM43362(context.Background(), tr, module.Settings{Clock: clock})
	if err != nil {
		t.Fatal("Unexpected error from NewISM43362:", err)
	}
	got, err := m.SendCommand(context.Background(), "I?")
	if err != nil {
		t.Fatal("Unexpected error:", err)
	}
	if got != "V1" {
		t.Fatalf(`Got %q, wanted "V1"`, got)
	}
}

func TestTransportErrorsPropagate(t *testing.T) {
	ctrl := gomock.NewController(t)
	tr := transport.NewMockTransport(ctrl)
	resetErr := errors.New("reset line stuck")
	tr.EXPECT().Reset().Return(resetErr)

	_, err := module.NewISM43362(context.Background(), tr, module.Settings{})
	if !errors.Is(err, resetErr) {
		t.Fatalf("Expected reset error, got %v", err)
	}
}

func TestOpenClosesTransportOnInitFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	dialer := transport.NewMockDialer(ctrl)
	dev := emulator.New(nil)
	dev.BootReply = "garbage!"
	dialer.EXPECT().Dial(gomock.Any()).Return(dev, nil)

	_, err := module.Open(context.Background(), dialer, module.Settings{Clock: &fakeClock{}})
	var perr *module.ProtocolError
	if !errors.As(err, &perr) {
		t.Fatalf("Expected *ProtocolError, got %v", err)
	}
	if !dev.Closed() {
		t.Fatal("Transport left open after failed init")
	}
}
