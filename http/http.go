// Package http runs plain HTTP/1.0 transactions over the ISM43362 client
// socket: one request per connection, response reassembled from repeated R0
// polls and delimited by Content-Length.
package http

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/LassiHeikkila/ISM43362/module"
	"github.com/LassiHeikkila/ISM43362/tcp"
	"github.com/LassiHeikkila/ISM43362/wifi"
)

// PublicIPHost answers GET /ip with the caller's public address.
const PublicIPHost = "ifconfig.io"

// Settings is a struct used to configure the Client.
// DefaultHost is used for requests that do not name one.
// ReadTimeout is passed to the module for each read (R2) unless the request
// sets its own.
// TransactionTimeout bounds a whole request, a negative value disables it.
// MaxIdleReads caps consecutive "-1" polls, zero means no cap.
type Settings struct {
	DefaultHost        string
	Port               int
	ReadSize           int
	ReadTimeout        time.Duration
	TransactionTimeout time.Duration
	MaxIdleReads       int
	Logger             logr.Logger
}

func (s *Settings) setDefaults() {
	if s.DefaultHost == "" {
		s.DefaultHost = PublicIPHost
	}
	if s.Port == 0 {
		s.Port = 80
	}
	if s.ReadSize <= 0 || s.ReadSize > tcp.MaxPayload {
		s.ReadSize = tcp.MaxPayload
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 5 * time.Second
	}
	if s.TransactionTimeout == 0 {
		s.TransactionTimeout = 60 * time.Second
	}
	if s.Logger.GetSink() == nil {
		s.Logger = logr.Discard()
	}
}

// Request describes one transaction. Zero fields take the Client defaults:
// DefaultHost, the configured port, GET, "/" and the configured read
// timeout.
type Request struct {
	Host    string
	Port    int
	Method  string
	Path    string
	Body    []byte
	Timeout time.Duration
}

// raw renders the request line and headers sent with S3.
func (r Request) raw() string {
	return fmt.Sprintf("%s %s HTTP/1.0\r\nHost: %s\r\nConnection: close\r\n\r\n", r.Method, r.Path, r.Host)
}

// Client wraps the module, implementing HTTP on top of its TCP commands.
type Client struct {
	wifi     *wifi.Client
	tcp      *tcp.Client
	settings Settings
	log      logr.Logger
}

// NewClient returns a ready to use Client for a working Module.
func NewClient(m module.Module, settings Settings) *Client {
	settings.setDefaults()
	return &Client{
		wifi:     wifi.NewClient(m, settings.Logger),
		tcp:      tcp.NewClient(m, settings.Logger),
		settings: settings,
		log:      settings.Logger.WithName("http"),
	}
}

func (c *Client) fill(req Request) Request {
	if req.Host == "" {
		req.Host = c.settings.DefaultHost
	}
	if req.Port == 0 {
		req.Port = c.settings.Port
	}
	if req.Method == "" {
		req.Method = "GET"
	}
	if req.Path == "" {
		req.Path = "/"
	}
	if req.Timeout == 0 {
		req.Timeout = c.settings.ReadTimeout
	}
	return req
}

// Do runs req and returns the response body. When the module is not
// associated Do returns an empty body and no error without touching the
// socket.
func (c *Client) Do(ctx context.Context, req Request) (string, error) {
	r, err := c.transact(ctx, req)
	if err != nil || r == nil {
		return "", err
	}
	return r.body(), nil
}

// Get is Do for a GET of path on host.
func (c *Client) Get(ctx context.Context, host, path string) (string, error) {
	return c.Do(ctx, Request{Host: host, Path: path})
}

// PublicIP asks ifconfig.io for the address the module is seen from.
func (c *Client) PublicIP(ctx context.Context) (string, error) {
	body, err := c.Get(ctx, PublicIPHost, "/ip")
	return strings.TrimSpace(body), err
}

// transact returns a nil reassembly when the module is not associated.
func (c *Client) transact(ctx context.Context, req Request) (r *reassembly, err error) {
	if len(req.Body) > 0 {
		return nil, ErrBodyUnsupported
	}
	req = c.fill(req)
	log := c.log.WithValues("host", req.Host, "port", req.Port, "method", req.Method, "path", req.Path)

	connected, err := c.wifi.IsConnected(ctx)
	if err != nil {
		return nil, err
	}
	if !connected {
		log.Info("Not associated, skipping request")
		return nil, nil
	}

	if c.settings.TransactionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.settings.TransactionTimeout)
		defer cancel()
	}

	raw := req.raw()
	ip, err := c.wifi.Resolve(ctx, req.Host)
	if err != nil {
		return nil, err
	}
	log.V(1).Info("Resolved", "ip", ip.String())

	// the socket is closed even when the transaction failed or timed out
	defer func() {
		if stopErr := c.tcp.Stop(context.WithoutCancel(ctx)); stopErr != nil {
			log.Error(stopErr, "Failed to stop client socket")
			if err == nil {
				r, err = nil, stopErr
			}
		}
	}()

	if err := c.tcp.SetProtocol(ctx, tcp.TCP); err != nil {
		return nil, err
	}
	if err := c.tcp.SetRemoteIP(ctx, ip); err != nil {
		return nil, err
	}
	if err := c.tcp.SetRemotePort(ctx, req.Port); err != nil {
		return nil, err
	}
	if err := c.tcp.Start(ctx); err != nil {
		return nil, err
	}
	if err := c.tcp.Send(ctx, []byte(raw)); err != nil {
		return nil, err
	}
	if err := c.tcp.SetReadSize(ctx, c.settings.ReadSize); err != nil {
		return nil, err
	}
	if err := c.tcp.SetReadTimeout(ctx, req.Timeout); err != nil {
		return nil, err
	}

	r = newReassembly()
	if err := c.receive(ctx, r); err != nil {
		if r.headerComplete() {
			return nil, fmt.Errorf("%w: %d of %d bytes: %w", ErrIncompleteBody, r.received(), r.contentLength, err)
		}
		return nil, fmt.Errorf("waiting for response header: %w", err)
	}
	log.V(1).Info("Response complete", "bytes", r.received())
	return r, nil
}

var errTooManyIdleReads = errors.New("too many consecutive empty reads")

// receive polls R0 until the header and the declared body have arrived.
func (c *Client) receive(ctx context.Context, r *reassembly) error {
	idle := 0
	for reads := 1; !r.complete(); reads++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		data, ready, err := c.tcp.Read(ctx)
		if err != nil {
			return err
		}
		if !ready {
			idle++
			if c.settings.MaxIdleReads > 0 && idle >= c.settings.MaxIdleReads {
				return fmt.Errorf("%w: %w", module.ErrTimeout, errTooManyIdleReads)
			}
			continue
		}
		idle = 0
		if err := r.add(data); err != nil {
			return err
		}
		c.log.V(2).Info("Reassembling", "read", reads, "header", r.headerComplete(), "body", r.received())
	}
	return nil
}
