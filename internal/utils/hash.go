package utils // package utils holds small helpers shared by services and middleware

import (
	"crypto/sha256" // SHA-256 digests for stored file content
	"encoding/hex"  // hex encoding of digests
)

// SHA256Hex returns the hex encoded SHA-256 digest of b.  Contents store it
// as their file hash and uploads use it as their ETag, so two uploads of the
// same bytes always share a value.
func SHA256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
