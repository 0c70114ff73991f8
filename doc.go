// Package ratchet implements a symmetric double-ratchet secure-messaging
// core with two coexisting wire variants.
//
// Overview
//
// Both variants share a common substrate: HKDF-SHA256 key derivation,
// AES-256-GCM authenticated encryption, a sender chain that advances on
// every send, and a receiver able to decrypt messages delivered out of
// order by caching skipped message keys within a bounded window.
//
// KDF Chain
//
// A chain key deterministically produces a stream of one-time message
// keys. Each step consumes the current chain key and produces both a
// message key and the next chain key; the old chain key is discarded and
// wiped, so recovering the current chain key never yields an earlier
// message key (forward secrecy).
//
//              chain key
//                  v
//               ┌─────┐
//    "MSG"     >│ kdf │> message key
//    "CHAIN"   >│     │> next chain key
//               └─────┘
//
// V1 (metadata-in-clear)
//
// The V1 sender packages each message as salt || nonce || ciphertext ||
// tag. The message's sequence number travels out of band in the caller's
// associated data; the receiver parses it back out to decide which chain
// step to use, tolerating arrival out of order by materializing and
// caching skipped keys up to a bounded window.
//
// V2 (zero-metadata)
//
// The V2 sender hides the sequence number, timestamp, and sender
// identity inside the ciphertext itself, alongside the application
// plaintext, and pads every record to a fixed 556-byte length so no two
// packets are distinguishable by size. A 16-byte beacon derived from the
// message key lets the receiver find the right key in O(1) without
// trial-decrypting against every candidate. V2 additionally supports
// root-key refresh, which reseeds the chain from caller-supplied entropy
// to recover confidentiality after a suspected compromise (a "heal"
// rather than a true asymmetric ratchet step).
//
// Notes
//
// Neither variant performs a Diffie-Hellman ratchet of the sending
// chain; only the symmetric chain advances on every message, and V2's
// root refresh is driver-injected, not DH-derived. This package does not
// negotiate the initial shared secret: that is the job of an external
// key-agreement step (for instance a post-quantum KEM) and is out of
// scope here.
package ratchet
