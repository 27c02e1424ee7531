package pttrace

import (
	"errors"
	"fmt"
)

// ErrUnimplementedIPCompression is returned by [Packet.TargetIP] when a
// packet used the IPBytes=0b100 encoding (48-bit IP with the high 16 bits
// taken from the previous target IP). The reference decoder this package
// was ported from never implements this encoding either; rather than guess
// at the missing high bits, decompression fails explicitly.
var ErrUnimplementedIPCompression = errors.New("pttrace: unimplemented IP compression scheme")

// decompressTargetIP turns a raw TargetIP field plus its IPBytes selector
// into an instruction pointer, per Intel SDM Vol. 3 Ch. 33.
//
// raw holds the wire value right-justified in a uint64: 16, 32, 48, or 64 bits
// depending on ipb. prevTIP is the snapshot of the previously observed
// target IP at the time this packet was parsed.
func decompressTargetIP(ipb ipBytes, raw, prevTIP uint64) (ip uint64, ok bool, err error) {
	switch ipb {
	case ipBytesOutOfContext:
		return 0, false, nil
	case ipBytesIP16:
		// Bits 63..16 from prevTIP, bits 15..0 from the packet.
		return (prevTIP &^ 0xFFFF) | (raw & 0xFFFF), true, nil
	case ipBytesIP32:
		// Bits 63..32 from prevTIP, bits 31..0 from the packet.
		return (prevTIP &^ 0xFFFFFFFF) | (raw & 0xFFFFFFFF), true, nil
	case ipBytesIP48Signed:
		// Bits 47..0 from the packet, sign-extended from bit 47.
		b47 := (raw >> 47) & 1
		var hi uint64
		if b47 == 1 {
			hi = 0xFFFF_0000_0000_0000
		}
		return hi | (raw & 0x0000_FFFF_FFFF_FFFF), true, nil
	case ipBytesIP48PrevHigh:
		return 0, false, fmt.Errorf("%w: IPBytes=0b100 (48-bit IP, high bits from previous TIP)", ErrUnimplementedIPCompression)
	case ipBytesIP64:
		return raw, true, nil
	default:
		// 0b101 and 0b111 are reserved by Intel. A codec never constructs a
		// Packet with one of these values: TargetIP framing fails for them
		// before any Packet exists, so this branch is unreachable in
		// practice and exists only to make the switch exhaustive.
		panic(fmt.Sprintf("pttrace: unreachable IPBytes %03b", uint8(ipb)))
	}
}
