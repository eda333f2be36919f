package auth

import (
	"errors"
	"testing"

	"autoschool/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		ok       bool
	}{
		{"too short", "abc12", false},
		{"entirely numeric", "48293017465", false},
		{"common password", "Password", false},
		{"common password exact", "12345678", false},
		{"acceptable", "r0undab0ut-drill", true},
		{"mixed with digits", "gearbox2024", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePassword(tc.password)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, models.ErrValidation), "expected validation error, got %v", err)
			}
		})
	}
}
