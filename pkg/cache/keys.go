package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash fingerprints rendered content. The pipeline keys exported artifacts
// by the SVG bytes they were converted from, so any change to the composed
// figure invalidates its cached PNG and PDF conversions.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a fixed-length key from an entity class and its identity
// fields (the figure or artifact option structs). Marshaling through JSON
// keeps struct field order stable across runs; the full digest keeps
// near-identical option sets from colliding.
func hashKey(class string, identity ...any) string {
	payload, _ := json.Marshal(identity)
	sum := sha256.Sum256(payload)
	return class + ":" + hex.EncodeToString(sum[:])
}
