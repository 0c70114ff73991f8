package ratchet

import (
	"fmt"
	"sync"
)

// cacheEntry is one row of the V2 lookup cache: the message key a
// beacon resolves to, the step it belongs to, and whether that key is
// also owned by the skipped-key store (in which case this entry must
// not wipe it independently).
type cacheEntry struct {
	mk       *key
	step     uint64
	fromSkip bool
}

// ReceiverV2 is the zero-metadata receiver ratchet. Instead of parsing
// a cleartext sequence number, it resolves each packet's 16-byte beacon
// against a lookup cache covering every currently skipped key plus the
// next maxSkipV2 keys on a shadow chain, giving O(1) identification
// without trial decryption.
type ReceiverV2 struct {
	mu   sync.Mutex
	c    *chain
	root *key

	skipped map[uint64]*key
	cache   map[[beaconLenV2]byte]cacheEntry

	maxSkip int
}

// NewReceiverV2 creates a V2 receiver ratchet seeded from the same
// 32-byte shared secret used by the corresponding SenderV2.
func NewReceiverV2(sharedSecret []byte) (*ReceiverV2, error) {
	if len(sharedSecret) != keyLen {
		return nil, ErrBadInput
	}
	r := &ReceiverV2{
		c:       newChainFromSecret(sharedSecret),
		root:    newKey(sharedSecret),
		skipped: make(map[uint64]*key),
		cache:   make(map[[beaconLenV2]byte]cacheEntry),
		maxSkip: maxSkipV2,
	}
	if err := r.refreshLookupCache(); err != nil {
		return nil, err
	}
	return r, nil
}

// Step returns the current step counter.
func (r *ReceiverV2) Step() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.c.step
}

// RefreshRoot reseeds the chain exactly as SenderV2.RefreshRoot does,
// then clears the skipped-key store and rebuilds the lookup cache so
// that no pre-refresh beacon remains resolvable.
func (r *ReceiverV2) RefreshRoot(entropy []byte) error {
	if len(entropy) != keyLen {
		return ErrBadInput
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	ikm := append(append([]byte{}, r.root.Bytes()...), entropy...)
	defer wipeBytes(ikm)
	newRoot, err := hkdfExpand(ikm, nil, infoRootRefresh, keyLen)
	if err != nil {
		return err
	}
	defer wipeBytes(newRoot)

	r.root.Wipe()
	r.root = newKey(newRoot)
	r.c.reset(newRoot)

	for step, mk := range r.skipped {
		mk.Wipe()
		delete(r.skipped, step)
	}
	return r.refreshLookupCache()
}

// refreshLookupCache clears and rebuilds the beacon lookup table. It
// must be called with mu held.
func (r *ReceiverV2) refreshLookupCache() error {
	for _, e := range r.cache {
		if !e.fromSkip {
			e.mk.Wipe()
		}
	}
	r.cache = make(map[[beaconLenV2]byte]cacheEntry, len(r.skipped)+r.maxSkip)

	for step, mk := range r.skipped {
		beacon, err := hkdfExpand(mk.Bytes(), nil, infoLookup, beaconLenV2)
		if err != nil {
			return err
		}
		var b [beaconLenV2]byte
		copy(b[:], beacon)
		r.cache[b] = cacheEntry{mk: mk, step: step, fromSkip: true}
	}

	shadow := r.c.shadowCopy()
	for i := 0; i < r.maxSkip; i++ {
		mk, err := shadow.advance()
		if err != nil {
			shadow.wipe()
			return err
		}
		beacon, err := hkdfExpand(mk.Bytes(), nil, infoLookup, beaconLenV2)
		if err != nil {
			shadow.wipe()
			return err
		}
		var b [beaconLenV2]byte
		copy(b[:], beacon)
		r.cache[b] = cacheEntry{mk: mk, step: shadow.step, fromSkip: false}
	}
	shadow.wipe()
	return nil
}

// Decrypt recovers the plaintext for a zero-metadata packet. It fails
// with ErrMalformedPacket if packet is not exactly packetLenV2 bytes,
// and with ErrUnknownBeacon if the beacon is not present in the lookup
// cache (including the case where it was already consumed and the
// cache has since moved on). On an authentication failure the spent
// message key is not recoverable: a corrupted-in-transit packet for a
// given step permanently loses that step rather than being re-queued.
func (r *ReceiverV2) Decrypt(packet []byte) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(packet) != packetLenV2 {
		return nil, fmt.Errorf("%w: got %d bytes, want exactly %d", ErrMalformedPacket, len(packet), packetLenV2)
	}
	beacon, nonce, tag, ciphertext, err := unpackVectorV2(packet)
	if err != nil {
		return nil, err
	}

	var b [beaconLenV2]byte
	copy(b[:], beacon)
	entry, ok := r.cache[b]
	if !ok {
		return nil, ErrUnknownBeacon
	}

	mk := entry.mk
	target := entry.step
	if entry.fromSkip {
		delete(r.skipped, target)
	} else if sk, ok := r.skipped[target]; ok {
		// The cache was not rebuilt after an earlier failed decrypt, so
		// the chain already stored this step's key as skipped.
		delete(r.skipped, target)
		mk = sk
	} else {
		for r.c.step < target {
			stepKey, err := r.c.advance()
			if err != nil {
				return nil, err
			}
			if r.c.step == target {
				mk.Wipe()
				mk = stepKey
			} else {
				r.skipped[r.c.step] = stepKey
			}
		}
	}
	defer mk.Wipe()

	aesKey, err := hkdfExpand(mk.Bytes(), nil, infoV2, keyLen)
	if err != nil {
		return nil, err
	}
	defer wipeBytes(aesKey)

	sealed := make([]byte, 0, len(ciphertext)+tagLen)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	padded, err := aeadOpen(aesKey, nonce, nil, sealed)
	if err != nil {
		return nil, err
	}

	if err := r.refreshLookupCache(); err != nil {
		return nil, err
	}

	return unpackContentV2(padded)
}

// unpackContentV2 parses the padded content layout (header length,
// header, message length, message) and discards the trailing random
// padding.
func unpackContentV2(padded []byte) ([]byte, error) {
	hdrLen, rest, ok := readUint32(padded)
	if !ok || uint32(len(rest)) < hdrLen {
		return nil, ErrMalformedPacket
	}
	hdrBytes, rest := rest[:hdrLen], rest[hdrLen:]
	if _, err := decodeHeader(hdrBytes); err != nil {
		return nil, ErrMalformedPacket
	}

	msgLen, rest, ok := readUint32(rest)
	if !ok || uint32(len(rest)) < msgLen {
		return nil, ErrMalformedPacket
	}
	return append([]byte{}, rest[:msgLen]...), nil
}
