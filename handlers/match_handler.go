package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/tournament-dashboard/models"
	"github.com/Dosada05/tournament-dashboard/services"
)

type RefereeHandler struct {
	refereeService services.RefereeService
}

func NewRefereeHandler(s services.RefereeService) *RefereeHandler {
	return &RefereeHandler{refereeService: s}
}

type submitMatchInput struct {
	Pin             string `json:"pin"`
	Status          string `json:"status"`
	Score1          *int   `json:"score1"`
	Score2          *int   `json:"score2"`
	BlackTeam1Score *int   `json:"black_team1_score"`
	BlackTeam2Score *int   `json:"black_team2_score"`
	WhiteTeam1Score *int   `json:"white_team1_score"`
	WhiteTeam2Score *int   `json:"white_team2_score"`
}

// ListOpenMatches обрабатывает GET /api/referee/matches?stage=Qualifiers
func (h *RefereeHandler) ListOpenMatches(w http.ResponseWriter, r *http.Request) {
	forms, err := h.refereeService.OpenMatches(r.Context(), r.URL.Query().Get("stage"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": forms}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SubmitMatch обрабатывает POST /api/referee/matches/{matchID}
func (h *RefereeHandler) SubmitMatch(w http.ResponseWriter, r *http.Request) {
	var input submitMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.refereeService.Submit(r.Context(), services.RefereeSubmission{
		Pin:     input.Pin,
		MatchID: chi.URLParam(r, "matchID"),
		Status:  input.Status,
		Scores: models.ScoreSet{
			Score1:          input.Score1,
			Score2:          input.Score2,
			BlackTeam1Score: input.BlackTeam1Score,
			BlackTeam2Score: input.BlackTeam2Score,
			WhiteTeam1Score: input.WhiteTeam1Score,
			WhiteTeam2Score: input.WhiteTeam2Score,
		},
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"result": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
