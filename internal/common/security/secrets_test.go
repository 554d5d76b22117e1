package security

import (
	"strings"
	"testing"
)

func TestValidateSecretKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		secret string
		ok     bool
	}{
		{"empty", "", false},
		{"too short", "short-secret", false},
		{"placeholder", "change-me-in-prod", false},
		{"too long", strings.Repeat("x", 129), false},
		{"strong", "0123456789abcdef0123456789abcdef", true},
	}

	for _, tc := range cases {
		err := ValidateSecretKey(tc.secret)
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error: %v", tc.name, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("%s: expected error, got nil", tc.name)
		}
	}
}
