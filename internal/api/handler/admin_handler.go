package handler

import (
	"net/http"

	"wishlist_api/internal/api/middleware"
	"wishlist_api/internal/app/service"
	"wishlist_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type AdminHandler struct {
	userService *service.UserService
}

func NewAdminHandler(userService *service.UserService) *AdminHandler {
	return &AdminHandler{userService: userService}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)
	r.Use(middleware.AdminOnly)

	r.Get("/users", h.listUsers)
}

func (h *AdminHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		common.RespondWithError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}
