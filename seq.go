package ratchet

import "bytes"

// parseSeq scans aad for the substring "seq:" and reads the decimal
// digits that follow it, up to the next '|' or the end of aad. It
// reports ok=false (never an error) on any parse failure, so the caller
// can fall back silently to its own default target step.
func parseSeq(aad []byte) (step uint64, ok bool) {
	const marker = "seq:"
	idx := bytes.Index(aad, []byte(marker))
	if idx < 0 {
		return 0, false
	}
	rest := aad[idx+len(marker):]
	if end := bytes.IndexByte(rest, '|'); end >= 0 {
		rest = rest[:end]
	}
	if len(rest) == 0 {
		return 0, false
	}
	var v uint64
	for _, c := range rest {
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + uint64(c-'0')
	}
	return v, true
}
