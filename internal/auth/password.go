package auth

import (
	"fmt"
	"strings"
	"unicode"

	"autoschool/internal/models"
)

const minPasswordLength = 8

// A short list of passwords we refuse outright. Checked case-insensitively.
var commonPasswords = map[string]struct{}{
	"password":  {},
	"12345678":  {},
	"123456789": {},
	"qwerty123": {},
	"password1": {},
	"iloveyou":  {},
	"11111111":  {},
	"letmein1":  {},
}

// ValidatePassword rejects weak passwords before any user row is persisted:
// too short, entirely numeric, or on the common-password list.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: password must be at least %d characters", models.ErrValidation, minPasswordLength)
	}

	allDigits := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return fmt.Errorf("%w: password cannot be entirely numeric", models.ErrValidation)
	}

	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		return fmt.Errorf("%w: password is too common", models.ErrValidation)
	}
	return nil
}
