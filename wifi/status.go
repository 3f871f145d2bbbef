package wifi

import (
	"fmt"
	"strings"
)

// Positions in the comma separated C? reply.
const (
	fieldIP = 5 + iota
	fieldNetmask
	fieldGateway
	fieldDNS1
	fieldDNS2
)

// Unassigned is reported for every address while the module is not
// connected.
const Unassigned = "0.0.0.0"

const connectedFlag = "1"

// ConnectionStatus is one decoded C? reply, fixed at the time of the query.
// The Client address getters re-query the module instead.
type ConnectionStatus struct {
	Raw       string
	Connected bool
	IP        string
	Netmask   string
	Gateway   string
	DNS1      string
	DNS2      string
}

// ParseStatus decodes a C? reply. The last field is the connection flag;
// unless it is "1" every address is Unassigned.
func ParseStatus(reply string) (ConnectionStatus, error) {
	fields := strings.Split(reply, ",")
	st := ConnectionStatus{
		Raw:       reply,
		Connected: fields[len(fields)-1] == connectedFlag,
		IP:        Unassigned,
		Netmask:   Unassigned,
		Gateway:   Unassigned,
		DNS1:      Unassigned,
		DNS2:      Unassigned,
	}
	if !st.Connected {
		return st, nil
	}
	// the flag itself must come after the address fields
	if len(fields) <= fieldDNS2+1 {
		return ConnectionStatus{Raw: reply}, fmt.Errorf("%w: %d fields in %q", ErrMalformedStatus, len(fields), reply)
	}
	st.IP = fields[fieldIP]
	st.Netmask = fields[fieldNetmask]
	st.Gateway = fields[fieldGateway]
	st.DNS1 = fields[fieldDNS1]
	st.DNS2 = fields[fieldDNS2]
	return st, nil
}
