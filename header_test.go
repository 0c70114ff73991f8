package ratchet

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	h, err := newHeader("alice", 7, 1700000000)
	require.NoError(t, err)

	decoded, err := decodeHeader(h.encode())
	require.NoError(t, err)
	require.Equal(t, "alice", decoded.senderID)
	require.EqualValues(t, 7, decoded.step)
	require.EqualValues(t, 1700000000, decoded.unixTime)
	require.Equal(t, h.id, decoded.id)
}

func TestHeaderSenderIDTooLong(t *testing.T) {
	_, err := newHeader(strings.Repeat("x", maxSenderIDLen+1), 1, 0)
	require.Error(t, err)
}

func TestDecodeHeaderTruncated(t *testing.T) {
	_, err := decodeHeader([]byte{5, 'a', 'b'})
	require.Error(t, err)
}

func TestHeaderIDsAreRandom(t *testing.T) {
	h1, err := newHeader("bob", 1, 0)
	require.NoError(t, err)
	h2, err := newHeader("bob", 1, 0)
	require.NoError(t, err)
	require.NotEqual(t, h1.id, h2.id)
}
