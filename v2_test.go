package ratchet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestV2HappyPath is scenario S5: zero-metadata round trip with
// out-of-order delivery, verifying the fixed 556-byte packet size.
func TestV2HappyPath(t *testing.T) {
	secret := zeroSecret()
	sender, err := NewSenderV2(secret, "alice")
	require.NoError(t, err)
	receiver, err := NewReceiverV2(secret)
	require.NoError(t, err)

	msgs := [][]byte{[]byte("first"), []byte("second"), []byte("third")}
	packets := make([][]byte, len(msgs))
	for i, m := range msgs {
		p, err := sender.Encrypt(m)
		require.NoError(t, err)
		require.Len(t, p, packetLenV2)
		packets[i] = p
	}

	order := []int{2, 0, 1}
	for _, idx := range order {
		got, err := receiver.Decrypt(packets[idx])
		require.NoError(t, err)
		require.Equal(t, msgs[idx], got)
	}

	require.EqualValues(t, 3, receiver.Step())
}

// TestV2PacketLeaksNoMetadata sanity-checks that the plaintext message
// does not appear verbatim anywhere in the wire packet.
func TestV2PacketLeaksNoMetadata(t *testing.T) {
	secret := zeroSecret()
	sender, err := NewSenderV2(secret, "alice")
	require.NoError(t, err)

	p, err := sender.Encrypt([]byte("a very secret payload"))
	require.NoError(t, err)
	require.False(t, bytes.Contains(p, []byte("a very secret payload")))
	require.False(t, bytes.Contains(p, []byte("alice")))
}

// TestV2RootRefresh is scenario S6: after a root refresh, a beacon from
// before the refresh is no longer resolvable, but new packets still
// round-trip.
func TestV2RootRefresh(t *testing.T) {
	secret := zeroSecret()
	sender, err := NewSenderV2(secret, "alice")
	require.NoError(t, err)
	receiver, err := NewReceiverV2(secret)
	require.NoError(t, err)

	stale, err := sender.Encrypt([]byte("pre-refresh"))
	require.NoError(t, err)

	entropy := bytes.Repeat([]byte{0x9}, keyLen)
	require.NoError(t, sender.RefreshRoot(entropy))
	require.NoError(t, receiver.RefreshRoot(entropy))

	require.EqualValues(t, 0, sender.Step())
	require.EqualValues(t, 0, receiver.Step())

	_, err = receiver.Decrypt(stale)
	require.ErrorIs(t, err, ErrUnknownBeacon)

	fresh, err := sender.Encrypt([]byte("post-refresh"))
	require.NoError(t, err)
	got, err := receiver.Decrypt(fresh)
	require.NoError(t, err)
	require.Equal(t, []byte("post-refresh"), got)
}

func TestV2PayloadSizeBoundary(t *testing.T) {
	secret := zeroSecret()
	sender, err := NewSenderV2(secret, "")
	require.NoError(t, err)

	// Overhead for an empty senderID: 4-byte header-len prefix + 25-byte
	// encoded header + 4-byte message-len prefix = 33 bytes, leaving 479
	// bytes of the 512-byte padded payload for the message itself.
	ok := bytes.Repeat([]byte{0x1}, 479)
	_, err = sender.Encrypt(ok)
	require.NoError(t, err)
	require.EqualValues(t, 1, sender.Step())

	tooBig := bytes.Repeat([]byte{0x1}, 480)
	_, err = sender.Encrypt(tooBig)
	require.ErrorIs(t, err, ErrPayloadTooLarge)
	require.EqualValues(t, 1, sender.Step(), "rejected payload must not burn a step")
}

func TestV2UnknownBeaconFails(t *testing.T) {
	secretA := zeroSecret()
	secretB := bytes.Repeat([]byte{0x7}, keyLen)

	senderA, err := NewSenderV2(secretA, "a")
	require.NoError(t, err)
	receiverB, err := NewReceiverV2(secretB)
	require.NoError(t, err)

	p, err := senderA.Encrypt([]byte("hi"))
	require.NoError(t, err)

	_, err = receiverB.Decrypt(p)
	require.ErrorIs(t, err, ErrUnknownBeacon)
}

func TestV2MalformedPacketLength(t *testing.T) {
	receiver, err := NewReceiverV2(zeroSecret())
	require.NoError(t, err)

	_, err = receiver.Decrypt(make([]byte, packetLenV2-1))
	require.ErrorIs(t, err, ErrMalformedPacket)
}

func TestV2CorruptedByteFails(t *testing.T) {
	secret := zeroSecret()
	sender, err := NewSenderV2(secret, "alice")
	require.NoError(t, err)
	receiver, err := NewReceiverV2(secret)
	require.NoError(t, err)

	p, err := sender.Encrypt([]byte("hi"))
	require.NoError(t, err)
	p[len(p)-1] ^= 0xFF

	_, err = receiver.Decrypt(p)
	require.Error(t, err)
}

func TestNewSenderV2SenderIDTooLong(t *testing.T) {
	_, err := NewSenderV2(zeroSecret(), string(make([]byte, maxSenderIDLen+1)))
	require.ErrorIs(t, err, ErrBadInput)
}

func TestNewReceiverV2BadSecretLength(t *testing.T) {
	_, err := NewReceiverV2(make([]byte, 10))
	require.ErrorIs(t, err, ErrBadInput)
}

func TestV2BeaconDeterministicAcrossInstances(t *testing.T) {
	secret := bytes.Repeat([]byte{0x5}, keyLen)
	s1, err := NewSenderV2(secret, "x")
	require.NoError(t, err)
	s2, err := NewSenderV2(secret, "x")
	require.NoError(t, err)

	p1, err := s1.Encrypt([]byte("m"))
	require.NoError(t, err)
	p2, err := s2.Encrypt([]byte("m"))
	require.NoError(t, err)

	require.Equal(t, p1[:beaconLenV2], p2[:beaconLenV2])
}
