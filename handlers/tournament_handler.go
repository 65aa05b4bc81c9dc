package handlers

import (
	"net/http"
	"strconv"

	"github.com/campstack/camp-system/middleware"
	"github.com/campstack/camp-system/models"
	"github.com/campstack/camp-system/services"
	"github.com/go-chi/chi/v5"
)

type TournamentHandler struct {
	tournamentService services.TournamentService
}

func NewTournamentHandler(tournamentService services.TournamentService) *TournamentHandler {
	return &TournamentHandler{tournamentService: tournamentService}
}

func sportFromURL(r *http.Request) (models.Sport, bool) {
	sport := models.Sport(chi.URLParam(r, "sport"))
	return sport, sport.Valid()
}

// Join opts the caller into a sport; the first entry for a sport generates
// its round-robin fixtures.
func (h *TournamentHandler) Join(w http.ResponseWriter, r *http.Request) {
	sport, ok := sportFromURL(r)
	if !ok {
		errorResponse(w, r, http.StatusBadRequest, "invalid sport")
		return
	}
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid token")
		return
	}

	matches, err := h.tournamentService.JoinSport(r.Context(), userID, sport)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	sport, ok := sportFromURL(r)
	if !ok {
		errorResponse(w, r, http.StatusBadRequest, "invalid sport")
		return
	}

	var statusFilter *models.MatchStatus
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status := models.MatchStatus(statusStr)
		if !status.Valid() {
			errorResponse(w, r, http.StatusBadRequest, "invalid status filter")
			return
		}
		statusFilter = &status
	}

	matches, err := h.tournamentService.Matches(r.Context(), sport, statusFilter)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TournamentHandler) Standings(w http.ResponseWriter, r *http.Request) {
	sport, ok := sportFromURL(r)
	if !ok {
		errorResponse(w, r, http.StatusBadRequest, "invalid sport")
		return
	}

	table, err := h.tournamentService.Standings(r.Context(), sport)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": table}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type updateScoreInput struct {
	ScoreA *int `json:"score_a"`
	ScoreB *int `json:"score_b"`
}

func (h *TournamentHandler) UpdateScore(w http.ResponseWriter, r *http.Request) {
	matchID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || matchID <= 0 {
		errorResponse(w, r, http.StatusBadRequest, "invalid match id")
		return
	}

	var input updateScoreInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.tournamentService.UpdateScore(r.Context(), matchID, input.ScoreA, input.ScoreB)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
