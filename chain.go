package ratchet

// chain is a KDF chain: a mutable chain key plus the number of times it
// has been advanced. Advancing consumes the current chain key and
// produces a one-time message key plus a new chain key, so a compromise
// of the current state cannot recover past message keys.
type chain struct {
	ck   *key
	step uint64
}

func newChainFromSecret(secret []byte) *chain {
	return &chain{ck: newKey(secret)}
}

// advance derives a message key from the current chain key, replaces
// the chain key with the next one, zeroizes the old chain key, and
// increments step. The returned message key is owned by the caller, who
// must wipe it once used.
func (c *chain) advance() (*key, error) {
	mk, err := hkdfExpand(c.ck.Bytes(), nil, infoMessage, keyLen)
	if err != nil {
		return nil, err
	}
	next, err := hkdfExpand(c.ck.Bytes(), nil, infoChain, keyLen)
	if err != nil {
		return nil, err
	}
	c.ck.Wipe()
	c.ck = newKey(next)
	wipeBytes(next)
	c.step++
	owned := newKey(mk)
	wipeBytes(mk)
	return owned, nil
}

// reset reseeds the chain from a fresh root and zeros the step counter,
// wiping the previous chain key. Used by V2 root refresh.
func (c *chain) reset(root []byte) {
	c.ck.Wipe()
	c.ck = newKey(root)
	c.step = 0
}

// shadowCopy returns an independent chain starting from the same chain
// key and step, for lookahead derivation that must not mutate the real
// chain. The caller is responsible for wiping the returned chain's
// key when done.
func (c *chain) shadowCopy() *chain {
	return &chain{ck: newKey(c.ck.Bytes()), step: c.step}
}

func (c *chain) wipe() {
	c.ck.Wipe()
}
