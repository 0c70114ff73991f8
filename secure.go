package ratchet

import "runtime"

// keyLen is the size in bytes of every chain key, message key, and root
// key in this package.
const keyLen = 32

// key is a 32-byte owned, sensitive buffer. Its contents are overwritten
// with zeros by Wipe and on every path that retires it; callers must
// not retain slices obtained from Bytes past the key's lifetime.
//
// The zero value is 32 zero bytes, not an absent key; callers that need
// "no key yet" should use a *key and a nil check.
type key [keyLen]byte

// newKey copies b into a freshly owned key. b must be exactly keyLen
// bytes.
func newKey(b []byte) *key {
	var k key
	copy(k[:], b)
	return &k
}

// Bytes returns a view of the key's contents. The view is only valid
// until the key is wiped; it must not be retained or copied elsewhere
// without an explicit copy.
func (k *key) Bytes() []byte {
	if k == nil {
		return nil
	}
	return k[:]
}

// Wipe overwrites the key's contents with zeros. The write is not
// eligible for dead-store elimination: wipe touches every byte through
// a loop and pins the buffer alive with runtime.KeepAlive so the
// optimizer cannot conclude the store is unobservable and remove it.
func (k *key) Wipe() {
	if k == nil {
		return
	}
	wipeBytes(k[:])
}

//go:noinline
func wipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}
