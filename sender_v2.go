package ratchet

import (
	"crypto/rand"
	"io"
	"sync"
	"time"
)

// SenderV2 is the zero-metadata sender ratchet. Every packet is exactly
// packetLenV2 bytes: the sequence number, timestamp, and sender
// identity travel encrypted inside the fixed-size payload instead of in
// a cleartext header, and a blinded beacon lets the receiver find the
// right key without trial decryption.
type SenderV2 struct {
	mu sync.Mutex
	c  *chain

	root     *key
	senderID string
}

// NewSenderV2 creates a V2 sender ratchet seeded from a 32-byte shared
// secret. senderID is embedded (encrypted) in every packet's hidden
// header and must fit in 255 bytes.
func NewSenderV2(sharedSecret []byte, senderID string) (*SenderV2, error) {
	if len(sharedSecret) != keyLen {
		return nil, ErrBadInput
	}
	if len(senderID) > maxSenderIDLen {
		return nil, ErrBadInput
	}
	return &SenderV2{
		c:        newChainFromSecret(sharedSecret),
		root:     newKey(sharedSecret),
		senderID: senderID,
	}, nil
}

// Step returns the number of messages this sender has produced so far.
func (s *SenderV2) Step() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.c.step
}

// RefreshRoot reseeds the chain from HKDF(root || entropy), resetting
// the step counter to zero. This recovers confidentiality going forward
// if the current chain state is suspected compromised; it is not a
// Diffie-Hellman ratchet, only a reseed from caller-supplied entropy.
func (s *SenderV2) RefreshRoot(entropy []byte) error {
	if len(entropy) != keyLen {
		return ErrBadInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ikm := append(append([]byte{}, s.root.Bytes()...), entropy...)
	defer wipeBytes(ikm)
	newRoot, err := hkdfExpand(ikm, nil, infoRootRefresh, keyLen)
	if err != nil {
		return err
	}
	defer wipeBytes(newRoot)

	s.root.Wipe()
	s.root = newKey(newRoot)
	s.c.reset(newRoot)
	return nil
}

// Encrypt advances the chain by one step and returns the fixed-size,
// zero-metadata packet. plaintext plus the encoded hidden header must
// fit within the 512-byte padded payload or ErrPayloadTooLarge is
// returned before the chain is advanced, so no step is burned on a
// rejected message.
func (s *SenderV2) Encrypt(plaintext []byte) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hdr, err := newHeader(s.senderID, s.c.step+1, time.Now().Unix())
	if err != nil {
		return nil, err
	}
	hdrBytes := hdr.encode()

	content := make([]byte, 0, fixedPayloadSizeV2)
	content = putUint32(content, uint32(len(hdrBytes)))
	content = append(content, hdrBytes...)
	content = putUint32(content, uint32(len(plaintext)))
	content = append(content, plaintext...)
	if len(content) > fixedPayloadSizeV2 {
		return nil, ErrPayloadTooLarge
	}

	mk, err := s.c.advance()
	if err != nil {
		return nil, err
	}
	defer mk.Wipe()

	padding := make([]byte, fixedPayloadSizeV2-len(content))
	if _, err := io.ReadFull(rand.Reader, padding); err != nil {
		return nil, err
	}
	padded := append(content, padding...)

	aesKey, err := hkdfExpand(mk.Bytes(), nil, infoV2, keyLen)
	if err != nil {
		return nil, err
	}
	defer wipeBytes(aesKey)

	beacon, err := hkdfExpand(mk.Bytes(), nil, infoLookup, beaconLenV2)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, nonceLen)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}

	sealed, err := aeadSeal(aesKey, nonce, nil, padded)
	if err != nil {
		return nil, err
	}
	ciphertext, tag := sealed[:len(sealed)-tagLen], sealed[len(sealed)-tagLen:]
	return packVectorV2(beacon, nonce, tag, ciphertext), nil
}
