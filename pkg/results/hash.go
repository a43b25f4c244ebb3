package results

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashContent returns the hex-encoded SHA-256 of content.
// Empty content hashes to the empty string.
func HashContent(content []byte) string {
	if len(content) == 0 {
		return ""
	}

	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}
