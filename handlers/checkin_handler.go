package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/campstack/camp-system/middleware"
	"github.com/campstack/camp-system/services"
	"github.com/go-chi/chi/v5"
)

type CheckinHandler struct {
	checkinService services.CheckinService
}

func NewCheckinHandler(checkinService services.CheckinService) *CheckinHandler {
	return &CheckinHandler{checkinService: checkinService}
}

type createSessionInput struct {
	Title    string     `json:"title"`
	ClosesAt *time.Time `json:"closes_at"`
}

func (h *CheckinHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var input createSessionInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	session, err := h.checkinService.CreateSession(r.Context(), input.Title, input.ClosesAt)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"session": session}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CheckinHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	sessionID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || sessionID <= 0 {
		errorResponse(w, r, http.StatusBadRequest, "invalid session id")
		return
	}

	if err := h.checkinService.CloseSession(r.Context(), sessionID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"closed": true}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type checkInInput struct {
	Token string `json:"token"`
}

func (h *CheckinHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid token")
		return
	}

	var input checkInInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	attendance, err := h.checkinService.CheckIn(r.Context(), input.Token, userID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"attendance": attendance}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *CheckinHandler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	sessionID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || sessionID <= 0 {
		errorResponse(w, r, http.StatusBadRequest, "invalid session id")
		return
	}

	records, err := h.checkinService.ListAttendance(r.Context(), sessionID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"attendance": records}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
