package pttrace

import "io"

const defaultErrDumpBytes = 8

// Option configures a [Parser] at construction time.
type Option func(*Parser)

// WithErrorDumpBytes sets how many of the next unconsumed bytes a
// [ParseError] dumps for diagnostics. The default is 8.
func WithErrorDumpBytes(n int) Option {
	return func(p *Parser) {
		p.errDumpBytes = n
	}
}

// Parser pulls packets one at a time from a byte slice of Intel Processor
// Trace data. It is single-threaded and holds no internal buffering beyond
// the slice it was constructed with: callers needing concurrent decoding of
// multiple traces should run one Parser per trace, each from its own
// goroutine.
type Parser struct {
	cur          cursor
	state        State
	prevTIP      uint64
	errDumpBytes int
}

// New constructs a Parser over data, starting in [StateInit].
func New(data []byte, opts ...Option) *Parser {
	p := &Parser{
		cur:          newCursor(data),
		state:        StateInit,
		errDumpBytes: defaultErrDumpBytes,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Next parses and returns the next packet in the stream. It returns io.EOF
// once the stream is exhausted with no partial packet pending. Any other
// error is a *[ParseError]: none of the packet kinds valid in the parser's
// current state matched the next bytes, and the Parser must not be pulled
// again.
func (p *Parser) Next() (Packet, error) {
	if p.cur.bitsLeft() == 0 {
		return Packet{}, io.EOF
	}

	for _, kind := range p.state.validKinds() {
		pkt, next, ok := attempt(kind, p.cur, p.prevTIP)
		if !ok {
			continue
		}
		p.cur = next
		if ip, ipOK, err := pkt.TargetIP(); ipOK && err == nil {
			p.prevTIP = ip
		}
		p.state = p.state.transition(pkt.Kind)
		return pkt, nil
	}

	return Packet{}, &ParseError{
		State: p.state,
		Bytes: dumpBits(p.cur.rest(), p.errDumpBytes),
	}
}
