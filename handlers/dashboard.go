package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-dashboard/services"
)

// DashboardHandler отдаёт представления, посчитанные из кэша поллеров.
// Данные отдаются даже при ошибке последнего чтения, состояние ленты в поле "feed".
type DashboardHandler struct {
	dashboardService services.DashboardService
}

func NewDashboardHandler(s services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: s}
}

// Schedule обрабатывает GET /api/schedule?stage=Qualifiers
func (h *DashboardHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	stage := r.URL.Query().Get("stage")
	matches, status, err := h.dashboardService.Schedule(stage)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches, "feed": status}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	matches, status := h.dashboardService.Upcoming()
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches, "feed": status}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) TeamLeaderboard(w http.ResponseWriter, r *http.Request) {
	table, status := h.dashboardService.TeamStandings()
	env := jsonResponse{
		"rows":            table.Rows,
		"completed_count": table.CompletedCount,
		"feed":            status,
	}
	if err := writeJSON(w, http.StatusOK, env, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) IndividualLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, status := h.dashboardService.IndividualStandings()
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rows": rows, "feed": status}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) KnockoutLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, status := h.dashboardService.KnockoutRanking()
	if err := writeJSON(w, http.StatusOK, jsonResponse{"rows": rows, "feed": status}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) KnockoutMatches(w http.ResponseWriter, r *http.Request) {
	cards, status := h.dashboardService.KnockoutCards()
	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": cards, "feed": status}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) Winners(w http.ResponseWriter, r *http.Request) {
	records, status := h.dashboardService.WinnerHistory()
	if err := writeJSON(w, http.StatusOK, jsonResponse{"winners": records, "feed": status}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DashboardHandler) Champions(w http.ResponseWriter, r *http.Request) {
	podium, status := h.dashboardService.Podium()
	if err := writeJSON(w, http.StatusOK, jsonResponse{"podium": podium, "feed": status}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Refresh обрабатывает POST /api/refresh: просит обе ленты перечитать таблицу.
func (h *DashboardHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	h.dashboardService.Refresh()
	if err := writeJSON(w, http.StatusAccepted, jsonResponse{"message": "refresh requested"}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Health отвечает 200, пока процесс жив; состояние лент - для диагностики.
func (h *DashboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	schedule, leaderboard := h.dashboardService.FeedStatus()
	env := jsonResponse{
		"status": "ok",
		"feeds":  jsonResponse{"schedule": schedule, "leaderboard": leaderboard},
	}
	if err := writeJSON(w, http.StatusOK, env, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
