package pttrace

import (
	"fmt"
	"strings"
)

// ParseError reports that no packet kind valid in State could be matched
// against the next bytes of the stream. It is terminal: the [Parser] that
// returned it should not be pulled again.
type ParseError struct {
	// State is the parser state at the time of failure.
	State State
	// Bytes is a binary dump of the next few unconsumed bytes, for
	// diagnostics. It is truncated to the dump window configured on the
	// [Parser] (see [WithErrorDumpBytes]).
	Bytes string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("pttrace: in state %s, failed to match any packet: %s", e.State, e.Bytes)
}

// dumpBits renders up to max bytes of data as comma-separated 8-bit binary
// strings, appending "..." if data holds more than max bytes.
func dumpBits(data []byte, max int) string {
	n := len(data)
	truncated := false
	if n > max {
		n = max
		truncated = true
	}
	parts := make([]string, n)
	for i := 0; i < n; i++ {
		parts[i] = fmt.Sprintf("%08b", data[i])
	}
	s := strings.Join(parts, ", ")
	if truncated {
		s += ", ..."
	}
	return s
}
