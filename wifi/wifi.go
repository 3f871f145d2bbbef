// Package wifi implements the station side of the ISM43362 command set:
// identification, access point configuration, association, connection
// status and DNS lookups.
package wifi

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-logr/logr"

	"github.com/LassiHeikkila/ISM43362/module"
)

const (
	cmdFirmware   = "I?"
	cmdMAC        = "Z5"
	cmdSSID       = "C1="
	cmdPassphrase = "C2="
	cmdSecurity   = "C3="
	cmdDHCP       = "C4="
	cmdJoin       = "C0"
	cmdStatus     = "C?"
	cmdLookup     = "D0="
)

// joinTag precedes the association result in the C0 reply. The result
// starts one character after the tag.
const joinTag = "[JOIN   ]"

const joinFailed = "Failed"

// AssociationConfig is what the module needs to join an access point.
type AssociationConfig struct {
	SSID       string
	Passphrase string
	Security   Security
	DHCP       bool
}

// Client issues WiFi commands through a Module.
type Client struct {
	module module.Module
	log    logr.Logger
}

// NewClient returns a Client using m. A zero logger discards output.
func NewClient(m module.Module, log logr.Logger) *Client {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Client{module: m, log: log.WithName("wifi")}
}

// FirmwareVersion returns the firmware identification string.
func (c *Client) FirmwareVersion(ctx context.Context) (string, error) {
	return c.module.SendCommand(ctx, cmdFirmware)
}

// MACAddress returns the station MAC address as reported by the module.
func (c *Client) MACAddress(ctx context.Context) (string, error) {
	return c.module.SendCommand(ctx, cmdMAC)
}

func (c *Client) SetSSID(ctx context.Context, ssid string) error {
	_, err := c.module.SendCommand(ctx, cmdSSID+ssid)
	return err
}

func (c *Client) SetPassphrase(ctx context.Context, passphrase string) error {
	_, err := c.module.SendCommand(ctx, cmdPassphrase+passphrase)
	return err
}

// SetSecurity sets the security mode. Modes the module does not know are
// sent as Open.
func (c *Client) SetSecurity(ctx context.Context, mode Security) error {
	if !mode.Valid() {
		c.log.Info("Unknown security mode, using Open", "mode", int(mode))
		mode = Open
	}
	_, err := c.module.SendCommand(ctx, cmdSecurity+strconv.Itoa(int(mode)))
	return err
}

func (c *Client) SetDHCP(ctx context.Context, enabled bool) error {
	v := "0"
	if enabled {
		v = "1"
	}
	_, err := c.module.SendCommand(ctx, cmdDHCP+v)
	return err
}

// Join asks the module to associate with the configured access point and
// returns the text of its join report, e.g. "Test,192.168.1.23,0,0".
func (c *Client) Join(ctx context.Context) (string, error) {
	reply, err := c.module.SendCommand(ctx, cmdJoin)
	if err != nil {
		return "", err
	}
	result, ok := joinResult(reply)
	if !ok {
		return "", fmt.Errorf("%w: no join report in %q", ErrJoinFailed, reply)
	}
	if result == joinFailed {
		return "", ErrJoinFailed
	}
	c.log.V(1).Info("Joined access point", "result", result)
	return result, nil
}

// joinResult extracts the text following the last join tag up to the end of
// its line.
func joinResult(reply string) (string, bool) {
	start := strings.LastIndex(reply, joinTag)
	if start < 0 {
		return "", false
	}
	rest := reply[start+len(joinTag):]
	// a single separator follows the tag
	if len(rest) > 0 {
		rest = rest[1:]
	}
	if end := strings.Index(rest, "\r\n"); end >= 0 {
		rest = rest[:end]
	}
	return rest, true
}

// Associate configures the access point parameters and joins.
func (c *Client) Associate(ctx context.Context, cfg AssociationConfig) (string, error) {
	if err := c.SetSSID(ctx, cfg.SSID); err != nil {
		return "", err
	}
	if err := c.SetPassphrase(ctx, cfg.Passphrase); err != nil {
		return "", err
	}
	if err := c.SetSecurity(ctx, cfg.Security); err != nil {
		return "", err
	}
	if err := c.SetDHCP(ctx, cfg.DHCP); err != nil {
		return "", err
	}
	result, err := c.Join(ctx)
	if err != nil {
		return "", fmt.Errorf("associate with %q: %w", cfg.SSID, err)
	}
	return result, nil
}

// Status returns the raw C? reply.
func (c *Client) Status(ctx context.Context) (string, error) {
	return c.module.SendCommand(ctx, cmdStatus)
}

// Snapshot queries the status once and decodes it.
func (c *Client) Snapshot(ctx context.Context) (ConnectionStatus, error) {
	reply, err := c.Status(ctx)
	if err != nil {
		return ConnectionStatus{}, err
	}
	return ParseStatus(reply)
}

func (c *Client) IsConnected(ctx context.Context) (bool, error) {
	st, err := c.Snapshot(ctx)
	return st.Connected, err
}

func (c *Client) IP(ctx context.Context) (string, error) {
	return c.address(ctx, func(st ConnectionStatus) string { return st.IP })
}

func (c *Client) Netmask(ctx context.Context) (string, error) {
	return c.address(ctx, func(st ConnectionStatus) string { return st.Netmask })
}

func (c *Client) Gateway(ctx context.Context) (string, error) {
	return c.address(ctx, func(st ConnectionStatus) string { return st.Gateway })
}

func (c *Client) DNS1(ctx context.Context) (string, error) {
	return c.address(ctx, func(st ConnectionStatus) string { return st.DNS1 })
}

func (c *Client) DNS2(ctx context.Context) (string, error) {
	return c.address(ctx, func(st ConnectionStatus) string { return st.DNS2 })
}

// address re-queries the status for every call.
func (c *Client) address(ctx context.Context, pick func(ConnectionStatus) string) (string, error) {
	st, err := c.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	return pick(st), nil
}

// LookupHost returns the module's D0 reply for host. Lookup failures are
// reported in-band by the module, so the text is not necessarily an address.
func (c *Client) LookupHost(ctx context.Context, host string) (string, error) {
	return c.module.SendCommand(ctx, cmdLookup+host)
}

// Resolve looks host up and requires the reply to be an IP address.
func (c *Client) Resolve(ctx context.Context, host string) (net.IP, error) {
	reply, err := c.LookupHost(ctx, host)
	if err != nil {
		return nil, err
	}
	ip := net.ParseIP(strings.TrimSpace(reply))
	if ip == nil {
		return nil, fmt.Errorf("%w %q: module replied %q", ErrResolve, host, reply)
	}
	return ip, nil
}
