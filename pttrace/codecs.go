package pttrace

// Each decode function below is a pure, side-effect-free codec: it either
// consumes its packet's entire framed length and returns the advanced
// cursor with ok=true, or leaves the caller's cursor untouched (ok=false).
// None of them mutate the cursor passed in — cursor is a value type, so a
// partial match has nothing to roll back.

const (
	opcodeTIP    = 0x0d
	opcodeTIPPGE = 0x11
	opcodeTIPPGD = 0x01
	opcodeFUP    = 0x1d
)

var (
	magicPSB     = []byte{0x02, 0x82, 0x02, 0x82, 0x02, 0x82, 0x02, 0x82, 0x02, 0x82, 0x02, 0x82, 0x02, 0x82, 0x02, 0x82}
	magicPSBEND  = []byte{0x02, 0x23}
	magicCBR     = []byte{0x02, 0x03}
	magicPAD     = []byte{0x00}
	magicMODE    = []byte{0x99}
	magicLongTNT = []byte{0x02, 0xa3}
)

// attempt dispatches kind to its codec. This is a closed, static switch
// rather than a table of function values: the kind set is fixed and
// dispatch should not go through reflection or dynamic lookup.
func attempt(kind Kind, c cursor, prevTIP uint64) (Packet, cursor, bool) {
	switch kind {
	case KindPSB:
		return decodePSB(c)
	case KindPSBEND:
		return decodePSBEND(c)
	case KindCBR:
		return decodeCBR(c)
	case KindPAD:
		return decodePAD(c)
	case KindMODE:
		return decodeMODE(c)
	case KindShortTNT:
		return decodeShortTNT(c)
	case KindLongTNT:
		return decodeLongTNT(c)
	case KindCYC:
		return decodeCYC(c)
	case KindTIP:
		return decodeTIPFamily(KindTIP, opcodeTIP, c, prevTIP)
	case KindTIPPGE:
		return decodeTIPFamily(KindTIPPGE, opcodeTIPPGE, c, prevTIP)
	case KindTIPPGD:
		return decodeTIPFamily(KindTIPPGD, opcodeTIPPGD, c, prevTIP)
	case KindFUP:
		return decodeTIPFamily(KindFUP, opcodeFUP, c, prevTIP)
	default:
		return Packet{}, cursor{}, false
	}
}

func decodePSB(c cursor) (Packet, cursor, bool) {
	next, ok := c.expectBytes(magicPSB)
	if !ok {
		return Packet{}, cursor{}, false
	}
	return Packet{Kind: KindPSB}, next, true
}

func decodePSBEND(c cursor) (Packet, cursor, bool) {
	next, ok := c.expectBytes(magicPSBEND)
	if !ok {
		return Packet{}, cursor{}, false
	}
	return Packet{Kind: KindPSBEND}, next, true
}

func decodeCBR(c cursor) (Packet, cursor, bool) {
	next, ok := c.expectBytes(magicCBR)
	if !ok {
		return Packet{}, cursor{}, false
	}
	// Unused 2-byte payload (bus ratio and reserved byte); framed but not
	// interpreted.
	_, next, ok = next.readBits(16)
	if !ok {
		return Packet{}, cursor{}, false
	}
	return Packet{Kind: KindCBR}, next, true
}

func decodePAD(c cursor) (Packet, cursor, bool) {
	next, ok := c.expectBytes(magicPAD)
	if !ok {
		return Packet{}, cursor{}, false
	}
	return Packet{Kind: KindPAD}, next, true
}

func decodeMODE(c cursor) (Packet, cursor, bool) {
	next, ok := c.expectBytes(magicMODE)
	if !ok {
		return Packet{}, cursor{}, false
	}
	// Mode sub-kind byte: framed but not interpreted (see package docs).
	_, next, ok = next.readBits(8)
	if !ok {
		return Packet{}, cursor{}, false
	}
	return Packet{Kind: KindMODE}, next, true
}

// decodeShortTNT parses the single-byte short Taken/Not-Taken packet:
// 7 bits of branch decisions plus a stop bit, followed by a fixed 0 bit.
// If the 7 bits are 0000001 (stop bit immediately, no branches), this is
// actually the start of a LongTNT packet (0x02 0xa3 ...) and must be
// reported as a mismatch rather than consumed. If they are all zero there
// is no stop bit at all: the byte is 0x00, a PAD packet.
func decodeShortTNT(c cursor) (Packet, cursor, bool) {
	branches, next, ok := c.readBits(7)
	if !ok {
		return Packet{}, cursor{}, false
	}
	if branches == 0b0000001 || branches == 0 {
		return Packet{}, cursor{}, false
	}
	stopBit, next, ok := next.readBits(1)
	if !ok || stopBit != 0 {
		return Packet{}, cursor{}, false
	}
	return Packet{Kind: KindShortTNT}, next, true
}

func decodeLongTNT(c cursor) (Packet, cursor, bool) {
	next, ok := c.expectBytes(magicLongTNT)
	if !ok {
		return Packet{}, cursor{}, false
	}
	// Up to 47 branch decisions plus a stop bit, framed but not decoded.
	_, next, ok = next.readBits(48)
	if !ok {
		return Packet{}, cursor{}, false
	}
	return Packet{Kind: KindLongTNT}, next, true
}

// decodeCYC parses a cycle-count packet: a 5-bit count, a 1-bit extension
// flag, a fixed 2-bit 0b11 tag, and — when the extension flag is set — one
// or more extension bytes, continuing while each byte's low bit is 1.
func decodeCYC(c cursor) (Packet, cursor, bool) {
	_, next, ok := c.readBits(5)
	if !ok {
		return Packet{}, cursor{}, false
	}
	exp, next, ok := next.readBits(1)
	if !ok {
		return Packet{}, cursor{}, false
	}
	tag, next, ok := next.readBits(2)
	if !ok || tag != 0b11 {
		return Packet{}, cursor{}, false
	}
	if exp == 1 {
		for {
			var b byte
			b, next, ok = next.readByte()
			if !ok {
				return Packet{}, cursor{}, false
			}
			if b&0x01 != 0x01 {
				break
			}
		}
	}
	return Packet{Kind: KindCYC}, next, true
}

// decodeTIPFamily parses TIP, TIP.PGE, TIP.PGD, and FUP, which all share
// the same framing: a 3-bit IPBytes field, a 5-bit opcode, and a
// variable-width TargetIP chosen by IPBytes.
func decodeTIPFamily(kind Kind, opcode uint64, c cursor, prevTIP uint64) (Packet, cursor, bool) {
	ipbVal, next, ok := c.readBits(3)
	if !ok {
		return Packet{}, cursor{}, false
	}
	op, next, ok := next.readBits(5)
	if !ok || op != opcode {
		return Packet{}, cursor{}, false
	}
	ipb := ipBytes(ipbVal)
	raw, next, ok := decodeTargetIPField(ipb, next)
	if !ok {
		return Packet{}, cursor{}, false
	}
	pkt := Packet{
		Kind:       kind,
		hasIPField: true,
		ipBytes:    ipb,
		rawIP:      raw,
		prevTIP:    prevTIP,
	}
	return pkt, next, true
}

// decodeTargetIPField reads the raw bits of a TargetIP field for the given
// IPBytes selector, without interpreting them. 0b101 and 0b111 are reserved
// by Intel and never frame successfully.
func decodeTargetIPField(ipb ipBytes, c cursor) (raw uint64, next cursor, ok bool) {
	switch ipb {
	case ipBytesOutOfContext:
		return 0, c, true
	case ipBytesIP16:
		v, next, ok := readLE[uint16](c, 2)
		return uint64(v), next, ok
	case ipBytesIP32:
		v, next, ok := readLE[uint32](c, 4)
		return uint64(v), next, ok
	case ipBytesIP48Signed, ipBytesIP48PrevHigh:
		v, next, ok := readLE[uint64](c, 6)
		return v, next, ok
	case ipBytesIP64:
		v, next, ok := readLE[uint64](c, 8)
		return v, next, ok
	default:
		return 0, cursor{}, false
	}
}
