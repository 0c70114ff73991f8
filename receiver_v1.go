package ratchet

import "sync"

// OptionV1 configures a ReceiverV1.
type OptionV1 func(*ReceiverV1)

// WithMaxSkipRangeV1 overrides the default catch-up distance bound
// (MAX_SKIP_RANGE). It exists for testing; production callers should
// leave the default in place.
func WithMaxSkipRangeV1(n int) OptionV1 {
	return func(r *ReceiverV1) { r.maxSkipRange = n }
}

// WithMaxStoredKeysV1 overrides the default skipped-key store bound
// (MAX_STORED_KEYS).
func WithMaxStoredKeysV1(n int) OptionV1 {
	return func(r *ReceiverV1) { r.maxStoredKeys = n }
}

// ReceiverV1 is the metadata-in-clear receiver ratchet. It tolerates
// out-of-order delivery by materializing and caching message keys for
// steps it has skipped past, within a bounded window that guards
// against a malicious sender forcing unbounded memory growth.
type ReceiverV1 struct {
	mu sync.Mutex
	c  *chain

	skipped map[uint64]*key

	maxSkipRange  int
	maxStoredKeys int
}

// NewReceiverV1 creates a V1 receiver ratchet seeded from the same
// 32-byte shared secret used by the corresponding SenderV1.
func NewReceiverV1(sharedSecret []byte, opts ...OptionV1) (*ReceiverV1, error) {
	if len(sharedSecret) != keyLen {
		return nil, ErrBadInput
	}
	r := &ReceiverV1{
		c:             newChainFromSecret(sharedSecret),
		skipped:       make(map[uint64]*key),
		maxSkipRange:  maxSkipRangeV1,
		maxStoredKeys: maxStoredKeysV1,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Step returns the current step counter, i.e. the number of messages
// this receiver has advanced its chain through.
func (r *ReceiverV1) Step() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.c.step
}

// Decrypt recovers the plaintext for packet. If aad contains a
// "seq:<N>" marker the target step is taken to be N; otherwise it
// defaults to one past the current step. Messages may arrive out of
// order: a future step triggers a bounded catch-up that caches every
// intermediate key, and a previously cached step is served and evicted
// from the cache.
func (r *ReceiverV1) Decrypt(packet, aad []byte) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	target := r.c.step + 1
	if seq, ok := parseSeq(aad); ok {
		target = seq
	}

	mk, err := r.keyForStep(target)
	if err != nil {
		return nil, err
	}
	defer mk.Wipe()

	salt, nonce, ciphertext, tag, err := unpackVectorV1(packet)
	if err != nil {
		return nil, err
	}

	aesKey, err := hkdfExpand(mk.Bytes(), salt, infoV1, keyLen)
	if err != nil {
		return nil, err
	}
	defer wipeBytes(aesKey)

	sealed := append(append([]byte{}, ciphertext...), tag...)
	return aeadOpen(aesKey, nonce, aad, sealed)
}

// keyForStep resolves the message key for target, either from the
// skipped-key cache, by catching the chain up, or failing because
// target is stale/replayed or too far ahead.
func (r *ReceiverV1) keyForStep(target uint64) (*key, error) {
	if mk, ok := r.skipped[target]; ok {
		delete(r.skipped, target)
		return mk, nil
	}

	if target <= r.c.step {
		return nil, ErrReplayOrStale
	}

	distance := target - r.c.step
	if distance > uint64(r.maxSkipRange) {
		return nil, ErrSkipTooLarge
	}
	if len(r.skipped)+int(distance) > r.maxStoredKeys {
		return nil, ErrSkipStoreOverflow
	}

	var result *key
	for r.c.step < target {
		mk, err := r.c.advance()
		if err != nil {
			return nil, err
		}
		if r.c.step != target {
			r.skipped[r.c.step] = mk
		} else {
			result = mk
		}
	}
	return result, nil
}
