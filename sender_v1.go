package ratchet

import (
	"crypto/rand"
	"io"
	"sync"
)

// SenderV1 is the metadata-in-clear sender ratchet. It derives a fresh
// message key on every call to Encrypt and packages the result as
// salt || nonce || ciphertext || tag; the sequence number is not part
// of the packet and must be carried by the caller in the AAD if the
// receiver is to use it.
type SenderV1 struct {
	mu sync.Mutex
	c  *chain
}

// NewSenderV1 creates a V1 sender ratchet seeded from a 32-byte shared
// secret negotiated out of band (for instance via a post-quantum KEM).
func NewSenderV1(sharedSecret []byte) (*SenderV1, error) {
	if len(sharedSecret) != keyLen {
		return nil, ErrBadInput
	}
	return &SenderV1{c: newChainFromSecret(sharedSecret)}, nil
}

// Step returns the number of messages this sender has produced so far.
func (s *SenderV1) Step() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.step
}

// Encrypt advances the chain by one step, encrypts plaintext under the
// resulting message key, and returns the wire packet. aad is bound to
// the ciphertext's authenticity but is not encrypted; it is not
// retained by the packet itself.
func (s *SenderV1) Encrypt(plaintext, aad []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mk, err := s.c.advance()
	if err != nil {
		return nil, err
	}
	defer mk.Wipe()

	salt := make([]byte, saltLenV1)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	aesKey, err := hkdfExpand(mk.Bytes(), salt, infoV1, keyLen)
	if err != nil {
		return nil, err
	}
	defer wipeBytes(aesKey)

	sealed, err := aeadSeal(aesKey, nonce, aad, plaintext)
	if err != nil {
		return nil, err
	}
	ciphertext, tag := sealed[:len(sealed)-tagLen], sealed[len(sealed)-tagLen:]
	return packVectorV1(salt, nonce, ciphertext, tag), nil
}
