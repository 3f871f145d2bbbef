package http

import (
	"bufio"
	"fmt"
	nethttp "net/http"
	"strconv"
	"strings"
)

// Transport implements net/http RoundTripper for http:// URLs on top of a
// Client, so the module can back a regular *net/http.Client.
type Transport struct {
	Client *Client
}

// NewTransport returns a Transport using c.
func NewTransport(c *Client) *Transport {
	return &Transport{Client: c}
}

// RoundTrip executes a http request and returns the response
func (t *Transport) RoundTrip(req *nethttp.Request) (*nethttp.Response, error) {
	switch req.URL.Scheme {
	case "http":
		return t.roundTrip(req)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnsupportedScheme, req.URL.Scheme)
	}
}

func (t *Transport) roundTrip(req *nethttp.Request) (*nethttp.Response, error) {
	if req.Body != nil && req.Body != nethttp.NoBody {
		req.Body.Close()
		if req.ContentLength != 0 {
			return nil, ErrBodyUnsupported
		}
	}

	port := 0
	if p := req.URL.Port(); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("bad port %q: %w", p, err)
		}
		port = n
	}

	r, err := t.Client.transact(req.Context(), Request{
		Host:   req.URL.Hostname(),
		Port:   port,
		Method: req.Method,
		Path:   req.URL.RequestURI(),
	})
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, ErrNotAssociated
	}

	resp, err := nethttp.ReadResponse(bufio.NewReader(strings.NewReader(r.String())), req)
	if err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	return resp, nil
}
