package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds a cache key from an artifact prefix and the inputs that
// shaped the artifact. The parts are JSON-marshaled and digested together,
// so any input change (snapshot id, vocabulary, canvas size) changes the
// key. Format: prefix:hex-sha256.
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash returns the SHA-256 of data as a 64-character hex string. The
// pipeline uses it to fingerprint frequency tables for layout keys.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
