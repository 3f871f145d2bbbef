// Package tcp drives the single client socket of the ISM43362.
//
// The module keeps the socket parameters as state: protocol, remote address
// and port are configured first, then the client is started. Data is sent
// with S3 and polled with R0, which answers "-1" while nothing has arrived.
package tcp

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-logr/logr"

	"github.com/LassiHeikkila/ISM43362/module"
)

const (
	cmdProtocol    = "P1="
	cmdRemoteIP    = "P3="
	cmdRemotePort  = "P4="
	cmdClient      = "P6="
	cmdSend        = "S3="
	cmdReadSize    = "R1="
	cmdReadTimeout = "R2="
	cmdRead        = "R0"
)

// MaxPayload is the most the module accepts in one send or returns from one
// read.
const MaxPayload = 1460

// notReady starts the R0 reply when no data is waiting.
const notReady = "-1"

// Client issues the socket commands through a Module.
type Client struct {
	module module.Module
	log    logr.Logger
}

// NewClient returns a Client using m. A zero logger discards output.
func NewClient(m module.Module, log logr.Logger) *Client {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Client{module: m, log: log.WithName("tcp")}
}

func (c *Client) command(ctx context.Context, cmd string) error {
	_, err := c.module.SendCommand(ctx, cmd)
	return err
}

func (c *Client) SetProtocol(ctx context.Context, p Protocol) error {
	return c.command(ctx, cmdProtocol+strconv.Itoa(int(p)))
}

func (c *Client) SetRemoteIP(ctx context.Context, ip net.IP) error {
	return c.command(ctx, cmdRemoteIP+ip.String())
}

func (c *Client) SetRemotePort(ctx context.Context, port int) error {
	return c.command(ctx, cmdRemotePort+strconv.Itoa(port))
}

// Start connects the client socket to the configured remote.
func (c *Client) Start(ctx context.Context) error {
	return c.command(ctx, cmdClient+"1")
}

// Stop closes the client socket.
func (c *Client) Stop(ctx context.Context) error {
	return c.command(ctx, cmdClient+"0")
}

// Send writes data to the socket in a single S3 command.
func (c *Client) Send(ctx context.Context, data []byte) error {
	if len(data) > MaxPayload {
		return fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(data))
	}
	reply, err := c.module.SendCommand(ctx, cmdSend+strconv.Itoa(len(data))+"\r"+string(data))
	if err != nil {
		return err
	}
	if strings.Contains(reply, "ERROR") {
		return fmt.Errorf("%w: %s", ErrSendRejected, reply)
	}
	c.log.V(2).Info("Sent", "bytes", len(data))
	return nil
}

// SetReadSize sets how many bytes one Read may return at most.
func (c *Client) SetReadSize(ctx context.Context, n int) error {
	return c.command(ctx, cmdReadSize+strconv.Itoa(n))
}

// SetReadTimeout sets how long the module waits for data on each Read.
func (c *Client) SetReadTimeout(ctx context.Context, d time.Duration) error {
	return c.command(ctx, cmdReadTimeout+strconv.FormatInt(d.Milliseconds(), 10))
}

// Read polls the socket once. ready is false when the module had nothing to
// hand out yet; the caller is expected to poll again.
func (c *Client) Read(ctx context.Context) (data string, ready bool, err error) {
	reply, err := c.module.SendCommand(ctx, cmdRead)
	if err != nil {
		return "", false, err
	}
	if strings.HasPrefix(reply, notReady) {
		return "", false, nil
	}
	c.log.V(2).Info("Read", "bytes", len(reply))
	return reply, true, nil
}
