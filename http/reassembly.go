package http

import (
	"fmt"
	"strconv"
	"strings"
)

const headerEnd = "\r\n\r\n"

const contentLengthHeader = "Content-Length"

// reassembly accumulates R0 chunks into one response.
type reassembly struct {
	text strings.Builder
	// boundary is the offset of the blank line ending the header, -1 until
	// found.
	boundary      int
	contentLength int
}

func newReassembly() *reassembly {
	return &reassembly{boundary: -1}
}

// add appends a chunk. Once the header is complete the Content-Length is
// taken from it; chunks after that only count towards the body.
func (r *reassembly) add(chunk string) error {
	r.text.WriteString(chunk)
	if r.boundary >= 0 {
		return nil
	}
	i := strings.Index(r.text.String(), headerEnd)
	if i < 0 {
		return nil
	}
	n, err := contentLength(r.text.String()[:i])
	if err != nil {
		return err
	}
	r.boundary = i
	r.contentLength = n
	return nil
}

func (r *reassembly) headerComplete() bool {
	return r.boundary >= 0
}

// received is the number of body bytes so far.
func (r *reassembly) received() int {
	if r.boundary < 0 {
		return 0
	}
	return r.text.Len() - (r.boundary + len(headerEnd))
}

func (r *reassembly) complete() bool {
	return r.headerComplete() && r.received() >= r.contentLength
}

// body is everything after the header, including any bytes beyond the
// declared length.
func (r *reassembly) body() string {
	if r.boundary < 0 {
		return ""
	}
	return r.text.String()[r.boundary+len(headerEnd):]
}

func (r *reassembly) String() string {
	return r.text.String()
}

// headerValue returns the trimmed value of the first header line called
// name, matched case-insensitively. The status line is skipped.
func headerValue(header, name string) (string, bool) {
	lines := strings.Split(header, "\r\n")
	for _, line := range lines[1:] {
		key, value, ok := strings.Cut(line, ":")
		if ok && strings.EqualFold(strings.TrimSpace(key), name) {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}

func contentLength(header string) (int, error) {
	v, ok := headerValue(header, contentLengthHeader)
	if !ok {
		return 0, fmt.Errorf("%w: header not present", ErrBadContentLength)
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadContentLength, v)
	}
	return n, nil
}
