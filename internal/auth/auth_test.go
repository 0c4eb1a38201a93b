package auth

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheck(t *testing.T) {
	salt, err := GenerateSalt()
	require.NoError(t, err)
	require.Len(t, salt, SaltSize)

	hash := HashPassword("Str0ng!Pw", salt)
	assert.Len(t, hash, KeyLen)
	assert.True(t, CheckPassword(hash, salt, "Str0ng!Pw"))
	assert.False(t, CheckPassword(hash, salt, "str0ng!Pw"))
	assert.False(t, CheckPassword(hash, salt, ""))
}

func TestSaltsDiffer(t *testing.T) {
	a, err := GenerateSalt()
	require.NoError(t, err)
	b, err := GenerateSalt()
	require.NoError(t, err)
	assert.False(t, bytes.Equal(a, b))

	// same password, different salt -> different hash
	assert.NotEqual(t, HashPassword("Str0ng!Pw", a), HashPassword("Str0ng!Pw", b))
}

func TestPasswordProblems(t *testing.T) {
	tests := []struct {
		name string
		pw   string
		want []string
	}{
		{"valid", "Str0ng!Pw", nil},
		{"valid all specials", "aB3!@#?x", nil},
		{"too short", "St0!a", []string{MsgTooShort}},
		{"no upper", "str0ng!pw", []string{MsgNoUpper}},
		{"no lower", "STR0NG!PW", []string{MsgNoLower}},
		{"no digit", "Strong!Pw", []string{MsgNoDigit}},
		{"no special", "Str0ngPwd", []string{MsgNoSpecial}},
		{"wrong special", "Str0ng$Pw", []string{MsgNoSpecial}},
		{"empty", "", []string{MsgTooShort, MsgNoUpper, MsgNoLower, MsgNoDigit, MsgNoSpecial}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PasswordProblems(tt.pw))
		})
	}
}
