// Package integrity provides content digests for task receipts and
// composed operations. Digests are hex-encoded SHA-256 and are stable
// across processes, so they can be persisted alongside the records they
// cover and re-verified later.
package integrity

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the hex-encoded SHA-256 digest of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashString returns the hex-encoded SHA-256 digest of s.
func HashString(s string) string {
	return Hash([]byte(s))
}

// MerkleRoot computes a merkle root over the given leaves, in order.
// Each leaf is hashed individually, then adjacent pairs are hashed
// together until a single root remains. An odd node at the end of a
// level is promoted unchanged. Returns the empty string for no leaves.
func MerkleRoot(leaves []string) string {
	if len(leaves) == 0 {
		return ""
	}

	level := make([]string, len(leaves))
	for i, leaf := range leaves {
		level[i] = HashString(leaf)
	}

	for len(level) > 1 {
		next := make([]string, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 < len(level) {
				next = append(next, HashString(level[i]+level[i+1]))
			} else {
				next = append(next, level[i])
			}
		}
		level = next
	}
	return level[0]
}

// Verify reports whether data hashes to the expected digest.
func Verify(data []byte, expected string) bool {
	return Hash(data) == expected
}
