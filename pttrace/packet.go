package pttrace

// Packet is the tagged-union representation of a parsed Intel PT packet.
// Kind discriminates which variant this value holds; the remaining fields
// are only meaningful for the TIP-family kinds (TIP, TIP.PGE, TIP.PGD, FUP)
// and are the zero value otherwise.
type Packet struct {
	Kind Kind

	hasIPField bool
	ipBytes    ipBytes
	rawIP      uint64
	prevTIP    uint64
}

// TargetIP returns the decompressed instruction pointer carried by a
// TIP-family packet (TIP, TIP.PGE, TIP.PGD, FUP), computed from the
// packet's own fields and the prev_tip snapshot taken when it was parsed.
//
// ok is false for any packet kind that does not carry a target IP, and for
// a TIP-family packet whose IPBytes was 0b000 ("out of context" — no IP is
// defined). err is non-nil only when the packet used the unimplemented
// IPBytes=0b100 encoding; see [ErrUnimplementedIPCompression].
func (p Packet) TargetIP() (ip uint64, ok bool, err error) {
	if !p.hasIPField {
		return 0, false, nil
	}
	return decompressTargetIP(p.ipBytes, p.rawIP, p.prevTIP)
}
