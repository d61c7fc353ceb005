package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the hex SHA-256 of data (64 characters).
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds prefix:sha256(key). Venue ids are opaque and may contain
// characters that are unsafe in file names or Redis key patterns.
func hashKey(prefix, key string) string {
	return prefix + ":" + Hash([]byte(key))
}
