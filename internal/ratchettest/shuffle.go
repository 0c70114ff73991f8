// Package ratchettest holds small helpers shared by the ratchet
// package's tests. It is not part of the public API.
package ratchettest

import mrand "github.com/ericlagergren/saferand"

// Shuffle permutes n items in place using swap, the same pattern the
// upstream ratchet corpus uses (via saferand) to simulate out-of-order
// packet delivery in tests.
func Shuffle(n int, swap func(i, j int)) {
	mrand.Shuffle(n, swap)
}
