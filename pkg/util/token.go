package util

import (
	"crypto/rand"
	"fmt"
)

const (
	EditTokenLength = 32

	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
	// largest multiple of len(tokenAlphabet) that fits in a byte
	tokenByteLimit = 256 - 256%len(tokenAlphabet)
)

// GenerateEditToken returns a 32 character [A-Za-z0-9] capability secret.
// Bytes at or above tokenByteLimit are rejected so every character is equally likely.
func GenerateEditToken() (string, error) {
	out := make([]byte, 0, EditTokenLength)
	buf := make([]byte, EditTokenLength*2)
	for len(out) < EditTokenLength {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= tokenByteLimit {
				continue
			}
			out = append(out, tokenAlphabet[int(b)%len(tokenAlphabet)])
			if len(out) == EditTokenLength {
				break
			}
		}
	}
	return string(out), nil
}
