package pttrace

// Kind discriminates the packet variants this package recognizes. It is the
// tag half of the tag+payload pair [Packet] uses to emulate a discriminated
// union.
type Kind int

const (
	KindPSB Kind = iota
	KindPSBEND
	KindCBR
	KindPAD
	KindMODE
	KindTIPPGE
	KindTIPPGD
	KindShortTNT
	KindLongTNT
	KindTIP
	KindFUP
	KindCYC
)

func (k Kind) String() string {
	switch k {
	case KindPSB:
		return "PSB"
	case KindPSBEND:
		return "PSBEND"
	case KindCBR:
		return "CBR"
	case KindPAD:
		return "PAD"
	case KindMODE:
		return "MODE"
	case KindTIPPGE:
		return "TIP.PGE"
	case KindTIPPGD:
		return "TIP.PGD"
	case KindShortTNT:
		return "ShortTNT"
	case KindLongTNT:
		return "LongTNT"
	case KindTIP:
		return "TIP"
	case KindFUP:
		return "FUP"
	case KindCYC:
		return "CYC"
	default:
		return "Unknown"
	}
}

// ipBytes is the 3-bit IPBytes field embedded in every TIP-family packet.
// It selects the width and decompression scheme of the TargetIP field that
// follows it.
type ipBytes uint8

const (
	ipBytesOutOfContext ipBytes = 0b000
	ipBytesIP16         ipBytes = 0b001
	ipBytesIP32         ipBytes = 0b010
	ipBytesIP48Signed   ipBytes = 0b011
	ipBytesIP48PrevHigh ipBytes = 0b100
	ipBytesReserved101  ipBytes = 0b101
	ipBytesIP64         ipBytes = 0b110
	ipBytesReserved111  ipBytes = 0b111
)

// needsPrevTIP reports whether decompressing this IPBytes encoding requires
// the previously observed target IP.
func (b ipBytes) needsPrevTIP() bool {
	switch b {
	case ipBytesIP16, ipBytesIP32, ipBytesIP48PrevHigh:
		return true
	default:
		return false
	}
}
