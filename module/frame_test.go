package module

import (
	"strings"
	"testing"
)

func TestPadCommand(t *testing.T) {
	for n := 0; n < 12; n++ {
		cmd := strings.Repeat("C", n)
		padded := padCommand(cmd)
		if len(padded)%2 != 0 {
			t.Fatalf(`padCommand(%q) has odd length %d`, cmd, len(padded))
		}
		wantPad := "\r\n"
		if n%2 != 0 {
			wantPad = "\r"
		}
		if string(padded) != cmd+wantPad {
			t.Fatalf(`padCommand(%q) = %q, wanted %q`, cmd, padded, cmd+wantPad)
		}
	}
}

func TestSwap(t *testing.T) {
	if got := swap([2]byte{'I', '?'}); got != [2]byte{'?', 'I'} {
		t.Fatalf("Got %q", got)
	}
	if got := swap(swap([2]byte{0x01, 0x02})); got != [2]byte{0x01, 0x02} {
		t.Fatalf("Swap is not an involution: %v", got)
	}
}

func TestCleanResponse(t *testing.T) {
	tests := map[string]struct {
		input string
		want  string
	}{
		"empty": {
			input: "",
			want:  "",
		},
		"only idle bytes": {
			input: "\x15\x15\x15\x15",
			want:  "",
		},
		"firmware reply": {
			input: "\r\nC3.5.2.5.STM\r\nOK\r\n> ",
			want:  "C3.5.2.5.STM",
		},
		"odd length reply with idle tail": {
			input: "\r\nABC\r\nOK\r\n> \x15",
			want:  "ABC",
		},
		"leading terminator stripped once": {
			input: "\r\n\r\nbody",
			want:  "\r\nbody",
		},
		"reversed terminator untouched": {
			input: "\n\rbody",
			want:  "\n\rbody",
		},
		"lone carriage return untouched": {
			input: "\rbody",
			want:  "\rbody",
		},
		"partial prompt untouched": {
			input: "data\r\nOK\r\n>",
			want:  "data\r\nOK\r\n>",
		},
		"prompt without OK untouched": {
			input: "data\r\n> ",
			want:  "data\r\n> ",
		},
		"empty reply": {
			input: "\r\n\r\nOK\r\n> ",
			want:  "",
		},
		"prompt consumed by leading terminator": {
			input: "\r\nOK\r\n> ",
			want:  "OK\r\n> ",
		},
		"idle bytes inside payload kept": {
			input: "a\x15b",
			want:  "a\x15b",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := string(cleanResponse([]byte(tc.input)))
			if got != tc.want {
				t.Fatalf(`Got %q, wanted %q`, got, tc.want)
			}
		})
	}
}

func TestRedact(t *testing.T) {
	if got := redact("C2=secret"); strings.Contains(got, "secret") {
		t.Fatalf("Passphrase leaked: %q", got)
	}
	if got := redact("C1=MyNet"); got != "C1=MyNet" {
		t.Fatalf("Got %q", got)
	}
}
