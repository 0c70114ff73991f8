package ratchet

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"
)

// Domain-separation labels used as HKDF info across the ratchet. These
// are exact byte strings; changing them changes the wire protocol.
var (
	infoV1          = []byte("AES-GCM-256-KEY")
	infoV2          = []byte("AES-GCM-256-ZERO-METADATA")
	infoChain       = []byte("RATCHET-CHAIN-KEY")
	infoMessage     = []byte("RATCHET-MESSAGE-KEY")
	infoLookup      = []byte("MESSAGE-LOOKUP-ID")
	infoRootRefresh = []byte("ROOT-REFRESH")
)

// hkdfExpand derives length bytes from ikm using HKDF-SHA256 with the
// given salt and info. A nil salt is treated as the RFC 5869 default
// (a zero-filled block the size of the hash).
func hkdfExpand(ikm, salt, info []byte, length int) ([]byte, error) {
	out := make([]byte, length)
	r := hkdf.New(sha256.New, ikm, salt, info)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, err
	}
	return out, nil
}
