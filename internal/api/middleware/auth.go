package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"wishlist_api/internal/common"
	"wishlist_api/internal/common/security"
	"wishlist_api/internal/domain/model"

	"github.com/go-chi/jwtauth/v5"
)

type contextKey string

const principalCtxKey contextKey = "principal"

// Authenticator resolves the Principal for the request from the token that
// jwtauth.Verifier already extracted and checked. Absent, malformed, and
// expired credentials all short-circuit with 401 before any handler runs.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())

		if err != nil {
			if errors.Is(err, jwtauth.ErrNoTokenFound) {
				common.RespondWithError(w, r, fmt.Errorf("authorization header required: %w", common.ErrUnauthorized))
				return
			}
			common.RespondWithError(w, r, security.ClassifyTokenError(err))
			return
		}
		if token == nil {
			common.RespondWithError(w, r, common.ErrInvalidToken)
			return
		}

		tokenClaims, err := security.ClaimsFromMap(claims)
		if err != nil {
			common.RespondWithError(w, r, err)
			return
		}
		role := model.Role(tokenClaims.Role)
		if !role.Valid() {
			common.RespondWithError(w, r, common.ErrInvalidToken)
			return
		}

		principal := model.Principal{UserID: tokenClaims.UserID, Role: role}
		ctx := context.WithValue(r.Context(), principalCtxKey, principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AdminOnly gates role-restricted routes. Unlike cross-owner resource
// access, a role failure here is a plain 403.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, ok := GetPrincipal(r.Context())
		if !ok || !principal.IsAdmin() {
			common.RespondWithError(w, r, fmt.Errorf("admin access required: %w", common.ErrForbidden))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetPrincipal returns the principal resolved for this request.
func GetPrincipal(ctx context.Context) (model.Principal, bool) {
	principal, ok := ctx.Value(principalCtxKey).(model.Principal)
	return principal, ok
}
