package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Hash generates a hex SHA-256 of the parts joined by a NUL separator
func Hash(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}
