package ratchet

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
)

// header is the V2 hidden header. It never travels in the clear: it is
// encrypted as part of the padded content and is only ever parsed by
// this package, so the wire encoding below is private and need not be
// portable to other implementations.
//
// Encoding: u8 len(senderID) || senderID || u64be step || u64be unix
// seconds || 8 raw bytes of random correlation id.
type header struct {
	senderID string
	step     uint64
	unixTime int64
	id       [8]byte
}

const maxSenderIDLen = 255

func newHeader(senderID string, step uint64, unixTime int64) (header, error) {
	if len(senderID) > maxSenderIDLen {
		return header{}, fmt.Errorf("ratchet: sender id too long: %d bytes", len(senderID))
	}
	h := header{senderID: senderID, step: step, unixTime: unixTime}
	if _, err := io.ReadFull(rand.Reader, h.id[:]); err != nil {
		return header{}, err
	}
	return h, nil
}

func (h header) encode() []byte {
	out := make([]byte, 0, 1+len(h.senderID)+8+8+8)
	out = append(out, byte(len(h.senderID)))
	out = append(out, h.senderID...)
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], h.step)
	out = append(out, buf[:]...)
	binary.BigEndian.PutUint64(buf[:], uint64(h.unixTime))
	out = append(out, buf[:]...)
	out = append(out, h.id[:]...)
	return out
}

func decodeHeader(b []byte) (header, error) {
	if len(b) < 1 {
		return header{}, fmt.Errorf("ratchet: truncated header")
	}
	n := int(b[0])
	b = b[1:]
	if len(b) < n+8+8+8 {
		return header{}, fmt.Errorf("ratchet: truncated header")
	}
	h := header{senderID: string(b[:n])}
	b = b[n:]
	h.step = binary.BigEndian.Uint64(b[:8])
	b = b[8:]
	h.unixTime = int64(binary.BigEndian.Uint64(b[:8]))
	b = b[8:]
	copy(h.id[:], b[:8])
	return h, nil
}
