package ratchet

import (
	"encoding/binary"
	"fmt"
)

// V1 wire layout: salt(16) || nonce(12) || ciphertext(var) || tag(16).
const (
	saltLenV1      = 16
	minPacketLenV1 = saltLenV1 + nonceLen + tagLen

	maxSkipRangeV1  = 1000
	maxStoredKeysV1 = 2000
)

// packVectorV1 concatenates a V1 packet's fields in wire order.
func packVectorV1(salt, nonce, ciphertext, tag []byte) []byte {
	out := make([]byte, 0, len(salt)+len(nonce)+len(ciphertext)+len(tag))
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, ciphertext...)
	out = append(out, tag...)
	return out
}

// unpackVectorV1 splits a V1 packet into its fields. It fails with
// ErrMalformedPacket if packet is shorter than the fixed-size overhead.
func unpackVectorV1(packet []byte) (salt, nonce, ciphertext, tag []byte, err error) {
	if len(packet) < minPacketLenV1 {
		return nil, nil, nil, nil, fmt.Errorf("%w: got %d bytes, want at least %d", ErrMalformedPacket, len(packet), minPacketLenV1)
	}
	salt = packet[:saltLenV1]
	nonce = packet[saltLenV1 : saltLenV1+nonceLen]
	ciphertext = packet[saltLenV1+nonceLen : len(packet)-tagLen]
	tag = packet[len(packet)-tagLen:]
	return salt, nonce, ciphertext, tag, nil
}

// V2 wire layout: beacon(16) || nonce(12) || tag(16) || ciphertext(512).
const (
	beaconLenV2        = 16
	fixedPayloadSizeV2 = 512
	packetLenV2        = beaconLenV2 + nonceLen + tagLen + fixedPayloadSizeV2

	maxSkipV2  = 100
	maxCacheV2 = 50
)

// packVectorV2 concatenates a V2 packet's fields in wire order.
func packVectorV2(beacon, nonce, tag, ciphertext []byte) []byte {
	out := make([]byte, 0, packetLenV2)
	out = append(out, beacon...)
	out = append(out, nonce...)
	out = append(out, tag...)
	out = append(out, ciphertext...)
	return out
}

// unpackVectorV2 splits a V2 packet into its fields. It fails with
// ErrMalformedPacket if packet is shorter than beacon, nonce and tag
// together; it does not check for the fixed total length packetLenV2.
func unpackVectorV2(packet []byte) (beacon, nonce, tag, ciphertext []byte, err error) {
	if len(packet) < beaconLenV2+nonceLen+tagLen {
		return nil, nil, nil, nil, fmt.Errorf("%w: got %d bytes, want at least %d", ErrMalformedPacket, len(packet), beaconLenV2+nonceLen+tagLen)
	}
	beacon = packet[:beaconLenV2]
	nonce = packet[beaconLenV2 : beaconLenV2+nonceLen]
	tag = packet[beaconLenV2+nonceLen : beaconLenV2+nonceLen+tagLen]
	ciphertext = packet[beaconLenV2+nonceLen+tagLen:]
	return beacon, nonce, tag, ciphertext, nil
}

// putUint32 and readUint32 encode/decode the big-endian u32be length
// prefixes used inside the V2 padded content layout.
func putUint32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

func readUint32(b []byte) (uint32, []byte, bool) {
	if len(b) < 4 {
		return 0, nil, false
	}
	return binary.BigEndian.Uint32(b[:4]), b[4:], true
}
