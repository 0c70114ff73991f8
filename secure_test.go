package ratchet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyWipeZeroes(t *testing.T) {
	var b [keyLen]byte
	for i := range b {
		b[i] = byte(i + 1)
	}
	k := newKey(b[:])
	require.NotEqual(t, make([]byte, keyLen), k.Bytes())

	k.Wipe()
	require.Equal(t, make([]byte, keyLen), k.Bytes())
}

func TestKeyWipeNilIsNoop(t *testing.T) {
	var k *key
	require.NotPanics(t, func() { k.Wipe() })
	require.Nil(t, k.Bytes())
}

func TestNewKeyCopies(t *testing.T) {
	src := bytes.Repeat([]byte{0x9}, keyLen)
	k := newKey(src)
	src[0] = 0x00
	require.Equal(t, byte(0x9), k.Bytes()[0], "key must own a copy, not alias the source")
}
