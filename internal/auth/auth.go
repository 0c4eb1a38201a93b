package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"strings"
	"unicode"

	"golang.org/x/crypto/pbkdf2"
)

const (
	SaltSize   = 16
	Iterations = 10000
	KeyLen     = 32

	MinPasswordLen = 8
	SpecialChars   = "!@#?"
)

// Password policy diagnostics, one per unmet rule.
const (
	MsgTooShort  = "Password has to be at least 8 characters long."
	MsgNoUpper   = "Password has to contain at least one uppercase letter."
	MsgNoLower   = "Password has to contain at least one lowercase letter."
	MsgNoDigit   = "Password has to contain at least one number."
	MsgNoSpecial = "Password has to contain at least one special character from !, @, #, ?"
)

func GenerateSalt() ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, err
	}
	return salt, nil
}

func HashPassword(pw string, salt []byte) []byte {
	return pbkdf2.Key([]byte(pw), salt, Iterations, KeyLen, sha256.New)
}

func CheckPassword(hash, salt []byte, pw string) bool {
	return subtle.ConstantTimeCompare(hash, HashPassword(pw, salt)) == 1
}

// PasswordProblems lists every policy rule pw breaks, in a fixed order.
// An empty result means the password is acceptable.
func PasswordProblems(pw string) []string {
	var upper, lower, digit, special bool
	for _, r := range pw {
		switch {
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case strings.ContainsRune(SpecialChars, r):
			special = true
		}
	}

	var out []string
	if len([]rune(pw)) < MinPasswordLen {
		out = append(out, MsgTooShort)
	}
	if !upper {
		out = append(out, MsgNoUpper)
	}
	if !lower {
		out = append(out, MsgNoLower)
	}
	if !digit {
		out = append(out, MsgNoDigit)
	}
	if !special {
		out = append(out, MsgNoSpecial)
	}
	return out
}
