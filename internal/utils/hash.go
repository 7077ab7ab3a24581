package utils

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

// HashString computes an HMAC-SHA256 signature over the given string
// using the provided hash key and returns the result as a hex-encoded string.
//
// Example usage:
//
//	subject := "api_user_" + utils.HashString(apiKey, hashKey)[:16]
func HashString(data string, hashKey string) string {
	return hex.EncodeToString(hashString([]byte(data), hashKey))
}

func hashString(data []byte, hashKey string) []byte {
	hasher := hmac.New(sha256.New, []byte(hashKey))
	hasher.Write(data)
	return hasher.Sum(nil)
}

// EqualSecrets compares two secrets in constant time. Both sides are hashed
// first so the comparison does not leak their lengths either.
func EqualSecrets(given, expected string) bool {
	if expected == "" {
		return false
	}
	return hmac.Equal(hashString([]byte(given), ""), hashString([]byte(expected), ""))
}

// RandomHex returns n random bytes, hex encoded.
func RandomHex(n int) (string, error) {
	raw := make([]byte, n)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}
