package security

import (
	"errors"
	"testing"
	"time"

	"wishlist_api/internal/common"
)

var testKey = []byte("0123456789abcdef0123456789abcdef")

func TestIssueAndVerify_Success(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager(testKey, time.Hour)

	token, err := tm.Issue(42, "admin")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := tm.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != 42 || claims.Role != "admin" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestVerify_Expired(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager(testKey, -time.Minute)

	token, err := tm.Issue(1, "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = tm.Verify(token)
	if !errors.Is(err, common.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerify_WrongKey(t *testing.T) {
	t.Parallel()

	issuer := NewTokenManager(testKey, time.Hour)
	verifier := NewTokenManager([]byte("another-secret-key-32-bytes-long"), time.Hour)

	token, err := issuer.Issue(7, "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	_, err = verifier.Verify(token)
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerify_Malformed(t *testing.T) {
	t.Parallel()

	tm := NewTokenManager(testKey, time.Hour)

	_, err := tm.Verify("not.a.jwt")
	if !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestClaimsFromMap_BadValues(t *testing.T) {
	t.Parallel()

	cases := []map[string]interface{}{
		{"user_id": "0", "role": "user"},
		{"user_id": "abc", "role": "user"},
		{"user_id": 42, "role": "user"}, // numeric claim, not the string we issue
		{"user_id": "42", "role": ""},
		{"role": "user"},
	}
	for _, claims := range cases {
		if _, err := ClaimsFromMap(claims); !errors.Is(err, common.ErrInvalidToken) {
			t.Fatalf("claims %v: expected ErrInvalidToken, got %v", claims, err)
		}
	}
}
