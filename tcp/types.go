package tcp

// Protocol selects the transport protocol of the module's socket (P1).
type Protocol int8

const (
	TCP Protocol = iota
	UDP
)
