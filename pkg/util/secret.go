package util

import (
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// HashAdminKey hashes the shared admin key for ADMIN_KEY_HASH.
func HashAdminKey(key string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(key), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyAdminKey checks a submitted admin key against its bcrypt hash.
// An empty hash never matches, which disables admin login.
func VerifyAdminKey(hash, key string) bool {
	if hash == "" || key == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)) == nil
}
