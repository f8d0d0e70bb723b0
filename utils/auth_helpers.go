package utils

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// PasscodeChecker validates the admin passcode. When a bcrypt hash is
// configured it takes precedence over the plaintext value.
type PasscodeChecker struct {
	plain string
	hash  []byte
}

func NewPasscodeChecker(plain, hash string) *PasscodeChecker {
	c := &PasscodeChecker{plain: plain}
	if hash != "" {
		c.hash = []byte(hash)
	}
	return c
}

// Check reports whether passcode matches exactly.
func (c *PasscodeChecker) Check(passcode string) bool {
	if c.hash != nil {
		return bcrypt.CompareHashAndPassword(c.hash, []byte(passcode)) == nil
	}
	if c.plain == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(c.plain), []byte(passcode)) == 1
}

// HashPasscode produces a value suitable for ADMIN_PASSCODE_HASH.
func HashPasscode(passcode string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	return string(b), err
}
