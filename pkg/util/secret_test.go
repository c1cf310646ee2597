package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAdminKey(t *testing.T) {
	hash, err := HashAdminKey("flyer-admin-key")
	require.NoError(t, err)
	assert.NotEqual(t, "flyer-admin-key", hash)
	assert.Contains(t, hash, "$2a$")
}

func TestVerifyAdminKey(t *testing.T) {
	hash, err := HashAdminKey("flyer-admin-key")
	require.NoError(t, err)

	tests := []struct {
		name string
		hash string
		key  string
		want bool
	}{
		{name: "Correct key", hash: hash, key: "flyer-admin-key", want: true},
		{name: "Wrong key", hash: hash, key: "wrong", want: false},
		{name: "Empty key", hash: hash, key: "", want: false},
		{name: "Login disabled", hash: "", key: "flyer-admin-key", want: false},
		{name: "Malformed hash", hash: "not-a-hash", key: "flyer-admin-key", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VerifyAdminKey(tt.hash, tt.key))
		})
	}
}
