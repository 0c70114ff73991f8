package ratchet

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// nonceLen and tagLen are fixed by AES-256-GCM as used throughout this
// package: a 96-bit nonce and a 128-bit authentication tag.
const (
	nonceLen = 12
	tagLen   = 16
)

// aeadSeal encrypts and authenticates plaintext under key with nonce and
// aad using AES-256-GCM, returning ciphertext||tag.
func aeadSeal(key, nonce, aad, plaintext []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != nonceLen {
		return nil, fmt.Errorf("ratchet: invalid nonce length %d", len(nonce))
	}
	return aead.Seal(nil, nonce, plaintext, aad), nil
}

// aeadOpen decrypts and verifies ciphertext||tag under key with nonce
// and aad, returning the plaintext. An authentication failure is
// reported as ErrAuthFailure.
func aeadOpen(key, nonce, aad, sealed []byte) ([]byte, error) {
	aead, err := newGCM(key)
	if err != nil {
		return nil, err
	}
	if len(nonce) != nonceLen {
		return nil, fmt.Errorf("ratchet: invalid nonce length %d", len(nonce))
	}
	pt, err := aead.Open(nil, nonce, sealed, aad)
	if err != nil {
		return nil, ErrAuthFailure
	}
	return pt, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != keyLen {
		return nil, fmt.Errorf("ratchet: invalid key length %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if aead.NonceSize() != nonceLen || aead.Overhead() != tagLen {
		return nil, fmt.Errorf("ratchet: unexpected GCM parameters")
	}
	return aead, nil
}
