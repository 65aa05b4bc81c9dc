package handlers

import (
	"net/http"

	"github.com/campstack/camp-system/middleware"
	"github.com/campstack/camp-system/models"
	"github.com/campstack/camp-system/services"
)

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(teamService services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: teamService}
}

func (h *TeamHandler) Balances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.teamService.Balances(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	// Stable enumeration order for clients.
	ordered := make([]models.TeamBalance, 0, 4)
	for _, team := range models.AllTeams() {
		ordered = append(ordered, balances[team])
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"balances": ordered}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type switchTeamInput struct {
	Team models.Team `json:"team"`
}

func (h *TeamHandler) Switch(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "invalid token")
		return
	}

	var input switchTeamInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	reg, err := h.teamService.SwitchTeam(r.Context(), userID, input.Team)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"registration": reg}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type adminMoveInput struct {
	UserID int         `json:"user_id"`
	Team   models.Team `json:"team"`
}

// AdminMove always completes; the acceptance check result rides along as an
// advisory warning.
func (h *TeamHandler) AdminMove(w http.ResponseWriter, r *http.Request) {
	var input adminMoveInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if input.UserID <= 0 {
		errorResponse(w, r, http.StatusBadRequest, "invalid user id")
		return
	}

	reg, warning, err := h.teamService.AdminMovePlayer(r.Context(), input.UserID, input.Team)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{"registration": reg}
	if warning != "" {
		response["warning"] = warning
	}
	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *TeamHandler) BestAvailable(w http.ResponseWriter, r *http.Request) {
	gender := models.Gender(r.URL.Query().Get("gender"))
	if !gender.Valid() {
		errorResponse(w, r, http.StatusBadRequest, "invalid gender")
		return
	}

	team, err := h.teamService.BestAvailableTeam(r.Context(), gender)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
