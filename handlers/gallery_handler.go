package handlers

import (
	"net/http"
	"strconv"

	"github.com/campstack/camp-system/middleware"
	"github.com/campstack/camp-system/services"
	"github.com/go-chi/chi/v5"
)

const maxPhotoUploadBytes = 10 << 20 // 10MB

type GalleryHandler struct {
	galleryService services.GalleryService
}

func NewGalleryHandler(galleryService services.GalleryService) *GalleryHandler {
	return &GalleryHandler{galleryService: galleryService}
}

func (h *GalleryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid token")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoUploadBytes)
	if err := r.ParseMultipartForm(maxPhotoUploadBytes); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		errorResponse(w, r, http.StatusBadRequest, "missing photo form file")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	photo, err := h.galleryService.Upload(r.Context(), userID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"photo": photo}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GalleryHandler) ListApproved(w http.ResponseWriter, r *http.Request) {
	photos, err := h.galleryService.ListApproved(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"photos": photos}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *GalleryHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	photos, err := h.galleryService.ListPending(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"photos": photos}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type reviewInput struct {
	Approve bool `json:"approve"`
}

func (h *GalleryHandler) Review(w http.ResponseWriter, r *http.Request) {
	photoID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || photoID <= 0 {
		errorResponse(w, r, http.StatusBadRequest, "invalid photo id")
		return
	}

	reviewerID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid token")
		return
	}

	var input reviewInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	photo, err := h.galleryService.Review(r.Context(), photoID, reviewerID, input.Approve)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"photo": photo}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
