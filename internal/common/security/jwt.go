package security

import (
	"errors"
	"strconv"
	"time"

	"wishlist_api/internal/common"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenManager issues and verifies HS256 bearer tokens. It is a pure
// function of the signing key and the clock; no session state is kept
// anywhere, so logout is client-side token discard.
type TokenManager struct {
	auth   *jwtauth.JWTAuth
	expiry time.Duration
}

// TokenClaims is the identity a verified token proves.
type TokenClaims struct {
	UserID int64
	Role   string
}

func NewTokenManager(key []byte, expiry time.Duration) *TokenManager {
	return &TokenManager{
		auth:   jwtauth.New("HS256", key, nil),
		expiry: expiry,
	}
}

// JWTAuth exposes the verifier for the router's jwtauth middleware.
func (tm *TokenManager) JWTAuth() *jwtauth.JWTAuth {
	return tm.auth
}

func (tm *TokenManager) Issue(userID int64, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"user_id": strconv.FormatInt(userID, 10),
		"role":    role,
		"exp":     now.Add(tm.expiry).Unix(),
		"iat":     now.Unix(),
	}
	_, tokenString, err := tm.auth.Encode(claims)
	return tokenString, err
}

// Verify checks signature and expiry. An expired token fails with
// common.ErrTokenExpired, anything else malformed or forged with
// common.ErrInvalidToken; both render as 401 with distinct details.
func (tm *TokenManager) Verify(tokenString string) (*TokenClaims, error) {
	token, err := jwtauth.VerifyToken(tm.auth, tokenString)
	if err != nil {
		return nil, ClassifyTokenError(err)
	}

	userIDRaw, ok := token.Get("user_id")
	if !ok {
		return nil, common.ErrInvalidToken
	}
	roleRaw, ok := token.Get("role")
	if !ok {
		return nil, common.ErrInvalidToken
	}

	return ClaimsFromValues(userIDRaw, roleRaw)
}

// ClassifyTokenError folds jwtauth verification errors into the two
// credential failure kinds of the error contract.
func ClassifyTokenError(err error) error {
	if errors.Is(err, jwtauth.ErrExpired) {
		return common.ErrTokenExpired
	}
	return common.ErrInvalidToken
}

// ClaimsFromMap extracts identity claims from a decoded claim map, as
// handed out by jwtauth.FromContext.
func ClaimsFromMap(claims map[string]interface{}) (*TokenClaims, error) {
	return ClaimsFromValues(claims["user_id"], claims["role"])
}

func ClaimsFromValues(userIDRaw, roleRaw interface{}) (*TokenClaims, error) {
	userIDStr, ok := userIDRaw.(string)
	if !ok {
		return nil, common.ErrInvalidToken
	}
	userID, err := strconv.ParseInt(userIDStr, 10, 64)
	if err != nil || userID < 1 {
		return nil, common.ErrInvalidToken
	}
	role, ok := roleRaw.(string)
	if !ok || role == "" {
		return nil, common.ErrInvalidToken
	}
	return &TokenClaims{UserID: userID, Role: role}, nil
}
