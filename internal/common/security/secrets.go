package security

import (
	"errors"
	"fmt"
	"strings"
)

const (
	secretKeyMinLength = 32
	secretKeyMaxLength = 128
)

// Placeholder values that must never survive into a running deployment.
var weakSecrets = map[string]struct{}{
	"change-me-in-prod": {},
	"changeme":          {},
	"secret":            {},
	"defaultsecret":     {},
	"password":          {},
}

// ValidateSecretKey enforces minimum strength on the token signing key.
// Called once at config load; the process refuses to start on failure.
func ValidateSecretKey(secret string) error {
	if secret == "" {
		return errors.New("secret cannot be empty")
	}
	if len(secret) < secretKeyMinLength {
		return fmt.Errorf("secret too short, minimum length is %d", secretKeyMinLength)
	}
	if len(secret) > secretKeyMaxLength {
		return fmt.Errorf("secret too long, maximum length is %d", secretKeyMaxLength)
	}
	if _, known := weakSecrets[strings.ToLower(secret)]; known {
		return errors.New("secret is a known placeholder value")
	}
	return nil
}
