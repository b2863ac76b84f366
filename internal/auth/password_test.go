package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
		contains string
	}{
		{name: "valid", password: "Str0ng!pass"},
		{name: "valid unicode special", password: "Pässw0rd"},
		{name: "too short", password: "Ab1!", wantErr: true, contains: "at least 8"},
		{name: "no lowercase", password: "ABCDEFG1!", wantErr: true, contains: "lowercase"},
		{name: "no uppercase", password: "abcdefg1!", wantErr: true, contains: "uppercase"},
		{name: "no digit", password: "Abcdefgh!", wantErr: true, contains: "digit"},
		{name: "no special", password: "Abcdefgh1", wantErr: true, contains: "special"},
		{name: "space is not special", password: "Abcdefg 1", wantErr: true, contains: "special"},
		{name: "too long", password: "Aa1!" + strings.Repeat("x", 70), wantErr: true, contains: "at most 72"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPassword(tt.password)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrWeakPassword))
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestCheckPassword_ListsAllViolations(t *testing.T) {
	err := CheckPassword("abc")
	var pe *PolicyError
	require.ErrorAs(t, err, &pe)
	assert.Len(t, pe.Violations, 4)
}

func TestHashAndCompare(t *testing.T) {
	hash, err := HashPassword("Str0ng!pass")
	require.NoError(t, err)
	assert.NotEqual(t, "Str0ng!pass", hash)

	assert.True(t, ComparePassword(hash, "Str0ng!pass"))
	assert.False(t, ComparePassword(hash, "Str0ng!pasS"))
	assert.False(t, ComparePassword("not-a-hash", "Str0ng!pass"))
}
