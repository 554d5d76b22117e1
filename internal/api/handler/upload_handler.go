package handler

import (
	"fmt"
	"io"
	"net/http"

	"wishlist_api/internal/api/middleware"
	"wishlist_api/internal/app/service"
	"wishlist_api/internal/common"

	"github.com/go-chi/chi/v5"
)

type UploadHandler struct {
	fileService *service.FileService
}

func NewUploadHandler(fileService *service.FileService) *UploadHandler {
	return &UploadHandler{fileService: fileService}
}

func (h *UploadHandler) RegisterRoutes(r chi.Router) {
	r.Use(middleware.Authenticator)

	r.Post("/avatar", h.uploadAvatar)
	r.Get("/avatar/{filename}", h.getAvatar)
	r.Delete("/avatar/{filename}", h.deleteAvatar)
}

func (h *UploadHandler) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, service.MaxAvatarSize+1024)

	file, header, err := r.FormFile("file")
	if err != nil {
		common.RespondWithError(w, r, fmt.Errorf("multipart field 'file' required: %w", common.ErrBadRequest))
		return
	}
	defer file.Close()

	// One extra byte past the cap lets the service distinguish "too large"
	// from "exactly at the cap".
	data, err := io.ReadAll(io.LimitReader(file, service.MaxAvatarSize+1))
	if err != nil {
		common.RespondWithError(w, r, fmt.Errorf("failed to read upload: %w", common.ErrBadRequest))
		return
	}

	stored, err := h.fileService.SaveAvatar(header.Filename, data)
	if err != nil {
		common.RespondWithError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, stored)
}

func (h *UploadHandler) getAvatar(w http.ResponseWriter, r *http.Request) {
	stored, err := h.fileService.StatAvatar(chi.URLParam(r, "filename"))
	if err != nil {
		common.RespondWithError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stored)
}

func (h *UploadHandler) deleteAvatar(w http.ResponseWriter, r *http.Request) {
	if err := h.fileService.DeleteAvatar(chi.URLParam(r, "filename")); err != nil {
		common.RespondWithError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
