package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"wishlist_api/internal/api/middleware"
	"wishlist_api/internal/app/service"
	"wishlist_api/internal/common"
	"wishlist_api/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type WishHandler struct {
	wishService *service.WishService
}

func NewWishHandler(wishService *service.WishService) *WishHandler {
	return &WishHandler{wishService: wishService}
}

func (h *WishHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)

	r.Get("/", h.listWishes)
	r.Post("/", h.createWish)
	r.Get("/{wishID}", h.getWish)
	r.Patch("/{wishID}", h.updateWish)
	r.Delete("/{wishID}", h.deleteWish)
}

func (h *WishHandler) createWish(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		common.RespondWithError(w, r, common.ErrUnauthorized)
		return
	}

	var req service.CreateWishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, r, fmt.Errorf("invalid request payload: %w", common.ErrBadRequest))
		return
	}

	wish, err := h.wishService.Create(r.Context(), principal, req)
	if err != nil {
		common.RespondWithError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, wish)
}

func (h *WishHandler) listWishes(w http.ResponseWriter, r *http.Request) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		common.RespondWithError(w, r, common.ErrUnauthorized)
		return
	}

	query, err := listQuery(r)
	if err != nil {
		common.RespondWithError(w, r, err)
		return
	}

	resp, err := h.wishService.List(r.Context(), principal, query)
	if err != nil {
		common.RespondWithError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func listQuery(r *http.Request) (service.ListWishesQuery, error) {
	query := service.ListWishesQuery{Limit: service.DefaultListLimit, Offset: 0}
	fields := common.FieldErrors{}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			fields["limit"] = "must be an integer"
		} else {
			query.Limit = limit
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			fields["offset"] = "must be an integer"
		} else {
			query.Offset = offset
		}
	}
	if raw := r.URL.Query().Get("price_filter"); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fields["price_filter"] = "must be a number"
		} else {
			query.PriceFilter = &price
		}
	}

	if len(fields) > 0 {
		return query, common.NewValidationError(fields)
	}
	return query, nil
}

func (h *WishHandler) getWish(w http.ResponseWriter, r *http.Request) {
	principal, id, err := wishRequest(r)
	if err != nil {
		common.RespondWithError(w, r, err)
		return
	}

	wish, err := h.wishService.Get(r.Context(), principal, id)
	if err != nil {
		common.RespondWithError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, wish)
}

func (h *WishHandler) updateWish(w http.ResponseWriter, r *http.Request) {
	principal, id, err := wishRequest(r)
	if err != nil {
		common.RespondWithError(w, r, err)
		return
	}

	var req service.UpdateWishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, r, fmt.Errorf("invalid request payload: %w", common.ErrBadRequest))
		return
	}

	wish, err := h.wishService.Update(r.Context(), principal, id, req)
	if err != nil {
		common.RespondWithError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, wish)
}

func (h *WishHandler) deleteWish(w http.ResponseWriter, r *http.Request) {
	principal, id, err := wishRequest(r)
	if err != nil {
		common.RespondWithError(w, r, err)
		return
	}

	if err := h.wishService.Delete(r.Context(), principal, id); err != nil {
		common.RespondWithError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func wishRequest(r *http.Request) (model.Principal, int64, error) {
	principal, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		return model.Principal{}, 0, common.ErrUnauthorized
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "wishID"), 10, 64)
	if err != nil || id < 1 {
		return principal, 0, common.NewValidationError(common.FieldErrors{"id": "must be a positive integer"})
	}
	return principal, id, nil
}
