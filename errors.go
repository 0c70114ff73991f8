package ratchet

import "errors"

// Sentinel errors returned by this package. Callers should compare
// against these with errors.Is; some are wrapped with additional
// context via fmt.Errorf("%w: ...").
var (
	// ErrBadInput is returned at construction when the shared secret
	// (or other fixed-length input) is not the expected length.
	ErrBadInput = errors.New("ratchet: bad input length")

	// ErrMalformedPacket is returned when a packet is shorter than the
	// minimum length its format requires, or (for V2) not exactly
	// packetLenV2 bytes.
	ErrMalformedPacket = errors.New("ratchet: malformed packet")

	// ErrAuthFailure is returned when AES-GCM tag verification fails.
	// The receivers resolve the message key before verifying the tag, so
	// a call that ends in this error has already spent the target step's
	// key, and any catch-up advance it made (with the intermediate keys
	// it cached) remains in place.
	ErrAuthFailure = errors.New("ratchet: authentication failure")

	// ErrReplayOrStale is returned by the V1 receiver when the target
	// step is at or behind the current step and not held in the
	// skipped-key cache.
	ErrReplayOrStale = errors.New("ratchet: replay or stale message")

	// ErrSkipTooLarge is returned by the V1 receiver when catching up
	// to the target step would advance the chain further than the
	// receiver's skip-range bound (maxSkipRangeV1 by default) allows in
	// one call.
	ErrSkipTooLarge = errors.New("ratchet: skip distance exceeds limit")

	// ErrSkipStoreOverflow is returned by the V1 receiver when honoring
	// a catch-up would grow the skipped-key store past the receiver's
	// stored-key bound (maxStoredKeysV1 by default).
	ErrSkipStoreOverflow = errors.New("ratchet: skipped-key store would overflow")

	// ErrUnknownBeacon is returned by the V2 receiver when a packet's
	// beacon is not present in the lookup cache.
	ErrUnknownBeacon = errors.New("ratchet: unknown beacon")

	// ErrPayloadTooLarge is returned by the V2 sender when the header
	// plus plaintext (plus length prefixes) would not fit within
	// fixedPayloadSizeV2.
	ErrPayloadTooLarge = errors.New("ratchet: payload too large for fixed-size packet")
)
