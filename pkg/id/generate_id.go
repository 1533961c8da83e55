package id

import (
	"crypto/rand"
	"encoding/hex"
)

// NewID32 returns a random identifier of exactly 32 lowercase hex characters,
// the wire format for application ids, loan ids, and asserted subject ids.
func NewID32() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
