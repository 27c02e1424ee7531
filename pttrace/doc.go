// Package pttrace parses a raw Intel Processor Trace (PT) byte stream into
// a lazy sequence of typed packets.
//
// Intel PT is a densely bit-packed, context-sensitive format: which packet
// kinds are legal at a given position depends on the parser's current
// state, and some packets (TIP, TIP.PGE, TIP.PGD, FUP) carry a compressed
// instruction pointer whose meaning depends on the most recently observed
// target IP. [Parser] tracks both and exposes a single pull method, [Parser.Next],
// that callers drive the same way they would drain an [io.Reader]:
//
//	p := pttrace.New(data)
//	for {
//		pkt, err := p.Next()
//		if err == io.EOF {
//			break
//		}
//		if err != nil {
//			// malformed trace
//		}
//		// use pkt
//	}
//
// The package frames and discriminates packets but does not interpret the
// semantic payload of MODE, CBR, or TNT packets, and it decodes only the
// subset of the Intel PT packet catalog needed to reconstruct control flow
// (see the Intel SDM, Volume 3, Chapter 33).
package pttrace
