package module

import "bytes"

const (
	// idleByte is what the module shifts out when it has nothing to say.
	idleByte = 0x15
	// fillByte is clocked out on MOSI while reading.
	fillByte = 0x0A

	lineTerminator = "\r\n"
	// promptSuffix ends every completed command reply.
	promptSuffix = "\r\nOK\r\n> "
	// bootPrompt is the whole output of a freshly reset module.
	bootPrompt = "\r\n> "
)

var idleWord = [2]byte{idleByte, idleByte}

// padCommand terminates cmd so that its length is a whole number of words.
func padCommand(cmd string) []byte {
	if len(cmd)%2 == 0 {
		return []byte(cmd + "\r\n")
	}
	return []byte(cmd + "\r")
}

// swap exchanges the two bytes of a word. The transport moves 16-bit words
// most significant byte first while the text is laid out low byte first.
func swap(w [2]byte) [2]byte {
	return [2]byte{w[1], w[0]}
}

// trimIdle drops trailing idle bytes left over from an odd-length reply.
func trimIdle(b []byte) []byte {
	for len(b) > 0 && b[len(b)-1] == idleByte {
		b = b[:len(b)-1]
	}
	return b
}

// cleanResponse strips framing from a drained reply: trailing idle bytes,
// one leading line terminator and the trailing status prompt.
func cleanResponse(raw []byte) []byte {
	b := trimIdle(raw)
	b = bytes.TrimPrefix(b, []byte(lineTerminator))
	b = bytes.TrimSuffix(b, []byte(promptSuffix))
	return b
}
