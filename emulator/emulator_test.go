package emulator

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := map[string]struct {
		text string
		want string
	}{
		"empty": {
			text: "",
			want: "\x15\x15",
		},
		"even": {
			text: "\r\n> ",
			want: "\x15\x15\n\r >",
		},
		"odd padded with idle": {
			text: "abc",
			want: "\x15\x15ba\x15c",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if got := string(encode(tc.text)); got != tc.want {
				t.Fatalf(`Got %q, wanted %q`, got, tc.want)
			}
		})
	}
}

func TestStripTerminator(t *testing.T) {
	for in, want := range map[string]string{
		"I?\r\n":     "I?",
		"C1=abc\r":   "C1=abc",
		"S3=2\rhi\r": "S3=2\rhi",
		"Z5":         "Z5",
	} {
		if got := stripTerminator(in); got != want {
			t.Fatalf(`stripTerminator(%q) = %q, wanted %q`, in, got, want)
		}
	}
}

func TestDevicePhases(t *testing.T) {
	d := New(func(cmd string) string { return "echo " + cmd })

	if ready, _ := d.DataReady(); ready {
		t.Fatal("Data ready before boot")
	}
	d.Reset()
	if ready, _ := d.DataReady(); !ready {
		t.Fatal("Boot prompt not announced")
	}
	b, _ := d.Read(len(encode(bootPrompt)), 0x0A)
	if string(b) != string(encode(bootPrompt)) {
		t.Fatalf("Got boot frame %q", b)
	}
	if ready, _ := d.DataReady(); ready {
		t.Fatal("Data ready after boot prompt was drained")
	}

	d.Deselect()
	d.Select()
	d.Exchange([2]byte{'?', 'I'})
	d.Exchange([2]byte{'\n', '\r'})
	if ready, _ := d.DataReady(); ready {
		t.Fatal("Data ready while receiving")
	}
	d.Deselect()
	if got := d.Received(); len(got) != 1 || got[0] != "I?" {
		t.Fatalf("Received %q", got)
	}

	d.Stall(true)
	if ready, _ := d.DataReady(); ready {
		t.Fatal("Stalled device reports data ready")
	}
	d.Stall(false)

	want := encode("\r\necho I?" + promptSuffix)
	b, _ = d.Read(len(want)+2, 0x0A)
	if string(b) != string(want)+"\x15\x15" {
		t.Fatalf("Got reply frame %q", b)
	}
	d.Deselect()
	if ready, _ := d.DataReady(); !ready {
		t.Fatal("Idle device does not report data ready")
	}
}

func TestScenarioTCP(t *testing.T) {
	s := NewScenario()
	s.NotReadyReads = 1
	s.Web = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "pong")
	})

	for _, cmd := range []string{"C1=Test", "C2=Pass", "C0", "P1=0", "P3=93.184.216.34", "P4=80", "P6=1", "R1=20"} {
		if reply := s.Handle(cmd); strings.HasPrefix(reply, "ERROR") || strings.Contains(reply, "Failed") {
			t.Fatalf("%s: %q", cmd, reply)
		}
	}
	if reply := s.Handle("R0"); reply != "-1" {
		t.Fatalf("R0 before send: %q", reply)
	}
	req := "GET /ping HTTP/1.0\r\nHost: example.com\r\n\r\n"
	if reply := s.Handle("S3=" + strconv.Itoa(len(req)) + "\r" + req); reply != "" {
		t.Fatalf("S3: %q", reply)
	}

	var got strings.Builder
	for i := 0; i < 100; i++ {
		reply := s.Handle("R0")
		if reply == "-1" {
			if strings.HasSuffix(got.String(), "pong") {
				break
			}
			continue
		}
		if len(reply) > 20 {
			t.Fatalf("Chunk of %d bytes exceeds read size", len(reply))
		}
		got.WriteString(reply)
	}
	if !strings.HasPrefix(got.String(), "HTTP/1.0 200 OK\r\n") || !strings.Contains(got.String(), "Content-Length: 4\r\n") {
		t.Fatalf("Unexpected response %q", got.String())
	}

	s.Handle("P6=0")
	if reply := s.Handle("R0"); !strings.HasPrefix(reply, "ERROR") {
		t.Fatalf("R0 after stop: %q", reply)
	}
}
