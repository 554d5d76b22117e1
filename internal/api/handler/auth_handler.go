package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"wishlist_api/internal/api/middleware"
	"wishlist_api/internal/app/service"
	"wishlist_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)

	r.Group(func(authed chi.Router) {
		authed.Use(middleware.Authenticator)
		authed.Get("/me", h.me)
	})
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, r, fmt.Errorf("invalid request payload: %w", common.ErrBadRequest))
		return
	}

	user, err := h.authService.Register(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, user)
}

// login accepts both form-encoded and JSON credentials.
func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	req, err := loginCredentials(r)
	if err != nil {
		common.RespondWithError(w, r, err)
		return
	}

	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func loginCredentials(r *http.Request) (service.LoginRequest, error) {
	var req service.LoginRequest

	contentType := strings.ToLower(r.Header.Get("Content-Type"))
	if strings.HasPrefix(contentType, "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, fmt.Errorf("invalid request payload: %w", common.ErrBadRequest)
		}
		return req, nil
	}

	if err := r.ParseForm(); err != nil {
		return req, fmt.Errorf("invalid form payload: %w", common.ErrBadRequest)
	}
	req.Username = r.PostFormValue("username")
	req.Password = r.PostFormValue("password")
	return req, nil
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		common.RespondWithError(w, r, common.ErrUnauthorized)
		return
	}

	user, err := h.authService.CurrentUser(r.Context(), principal)
	if err != nil {
		common.RespondWithError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}
