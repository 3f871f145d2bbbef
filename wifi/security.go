package wifi

import "strconv"

// Security is the access point security mode understood by C3.
type Security int

// Modes as numbered by the module firmware.
const (
	Open Security = iota
	WEP
	WPA
	WPA2AES
	WPA2Mixed
)

var securityNames = [...]string{
	Open:      "Open",
	WEP:       "WEP",
	WPA:       "WPA",
	WPA2AES:   "WPA2-AES",
	WPA2Mixed: "WPA2-Mixed",
}

// ParseSecurity looks up a mode by its exact, case-sensitive name.
func ParseSecurity(name string) (Security, bool) {
	for mode, n := range securityNames {
		if n == name {
			return Security(mode), true
		}
	}
	return Open, false
}

// Valid reports whether the module knows the mode.
func (s Security) Valid() bool {
	return s >= Open && s <= WPA2Mixed
}

func (s Security) String() string {
	if !s.Valid() {
		return "Security(" + strconv.Itoa(int(s)) + ")"
	}
	return securityNames[s]
}
