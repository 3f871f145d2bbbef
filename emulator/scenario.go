package emulator

import (
	"bufio"
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// Network is the access point the scenario lets a module join.
type Network struct {
	SSID       string
	Passphrase string
	IP         string
	Netmask    string
	Gateway    string
	DNS1       string
	DNS2       string
}

// Scenario is a Handler with enough module state to associate, resolve
// names and run one TCP client connection against an http.Handler.
type Scenario struct {
	Firmware string
	MAC      string
	Network  Network
	// Hosts maps names to the addresses D0 answers with.
	Hosts map[string]string
	// Web serves every HTTP request sent over the TCP client.
	Web http.Handler
	// NotReadyReads is how many "-1" replies precede each chunk.
	NotReadyReads int

	mu          sync.Mutex
	ssid        string
	passphrase  string
	security    string
	dhcp        string
	joined      bool
	protocol    string
	remoteIP    string
	remotePort  string
	client      bool
	readSize    int
	readTimeout string
	outbound    []byte
	notReady    int
}

// NewScenario returns a scenario with a home network, a couple of resolvable
// hosts and no web handler.
func NewScenario() *Scenario {
	return &Scenario{
		Firmware: "C3.5.2.5.STM",
		MAC:      "C4:7F:51:04:6F:0E",
		Network: Network{
			SSID:       "Test",
			Passphrase: "Pass",
			IP:         "192.168.1.23",
			Netmask:    "255.255.255.0",
			Gateway:    "192.168.1.1",
			DNS1:       "192.168.1.1",
			DNS2:       "8.8.8.8",
		},
		Hosts: map[string]string{
			"ifconfig.io": "104.21.54.91",
			"example.com": "93.184.216.34",
		},
		readSize: 1460,
	}
}

// Handle implements Handler.
func (s *Scenario) Handle(cmd string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	name, arg, _ := strings.Cut(cmd, "=")
	switch name {
	case "I?":
		return s.Firmware
	case "Z5":
		return s.MAC
	case "C1":
		s.ssid = arg
	case "C2":
		s.passphrase = arg
	case "C3":
		s.security = arg
	case "C4":
		s.dhcp = arg
	case "C0":
		return s.join()
	case "C?":
		return s.status()
	case "D0":
		if ip, ok := s.Hosts[arg]; ok && s.joined {
			return ip
		}
		return "ERROR: DNS lookup failed"
	case "P1":
		s.protocol = arg
	case "P3":
		s.remoteIP = arg
	case "P4":
		s.remotePort = arg
	case "P6":
		return s.setClient(arg == "1")
	case "S3":
		return s.send(arg)
	case "R1":
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			return "ERROR: bad read size"
		}
		s.readSize = n
	case "R2":
		s.readTimeout = arg
	case "R0":
		return s.read()
	default:
		return "ERROR: unknown command " + name
	}
	return ""
}

func (s *Scenario) join() string {
	s.joined = s.ssid == s.Network.SSID && s.passphrase == s.Network.Passphrase
	if !s.joined {
		return "[JOIN   ] Failed\r\nERROR"
	}
	return fmt.Sprintf("[JOIN   ] %s,%s,0,0", s.ssid, s.Network.IP)
}

func (s *Scenario) status() string {
	ip, mask, gw, dns1, dns2, state := "0.0.0.0", "0.0.0.0", "0.0.0.0", "0.0.0.0", "0.0.0.0", "0"
	if s.joined {
		n := s.Network
		ip, mask, gw, dns1, dns2, state = n.IP, n.Netmask, n.Gateway, n.DNS1, n.DNS2, "1"
	}
	return strings.Join([]string{
		s.ssid, s.passphrase, s.security, s.dhcp, "0",
		ip, mask, gw, dns1, dns2,
		"3", "1", "0", "CA", state,
	}, ",")
}

func (s *Scenario) setClient(on bool) string {
	if on && (!s.joined || s.remoteIP == "" || s.remotePort == "") {
		return "ERROR: client not configured"
	}
	s.client = on
	if !on {
		s.outbound = nil
	}
	return ""
}

// send handles "S3=<len>\r<data>".
func (s *Scenario) send(arg string) string {
	lenText, data, ok := strings.Cut(arg, "\r")
	n, err := strconv.Atoi(lenText)
	if !ok || err != nil || n != len(data) {
		return "ERROR: bad send length"
	}
	if !s.client {
		return "ERROR: client not started"
	}
	if s.Web != nil {
		s.outbound = append(s.outbound, s.serve(data)...)
	}
	s.notReady = s.NotReadyReads
	return ""
}

func (s *Scenario) serve(raw string) []byte {
	req, err := http.ReadRequest(bufio.NewReader(strings.NewReader(raw)))
	if err != nil {
		return []byte("HTTP/1.0 400 Bad Request\r\nContent-Length: 0\r\n\r\n")
	}
	rec := httptest.NewRecorder()
	s.Web.ServeHTTP(rec, req)

	body := rec.Body.Bytes()
	var b bytes.Buffer
	fmt.Fprintf(&b, "HTTP/1.0 %d %s\r\n", rec.Code, http.StatusText(rec.Code))
	h := rec.Header().Clone()
	h.Set("Content-Length", strconv.Itoa(len(body)))
	h.Set("Connection", "close")
	h.Write(&b)
	b.WriteString("\r\n")
	b.Write(body)
	return b.Bytes()
}

func (s *Scenario) read() string {
	if !s.client {
		return "ERROR: client not started"
	}
	if len(s.outbound) == 0 {
		return "-1"
	}
	if s.notReady > 0 {
		s.notReady--
		return "-1"
	}
	n := s.readSize
	if n > len(s.outbound) {
		n = len(s.outbound)
	}
	chunk := string(s.outbound[:n])
	s.outbound = s.outbound[n:]
	s.notReady = s.NotReadyReads
	return chunk
}
