package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/tournament-dashboard/services"
)

type AdminHandler struct {
	adminService   services.AdminService
	publishService services.PublishService
}

func NewAdminHandler(s services.AdminService, p services.PublishService) *AdminHandler {
	return &AdminHandler{adminService: s, publishService: p}
}

func (h *AdminHandler) ListActions(w http.ResponseWriter, r *http.Request) {
	if err := writeJSON(w, http.StatusOK, jsonResponse{"actions": h.adminService.Actions()}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RunAction обрабатывает POST /api/admin/actions/{action}
func (h *AdminHandler) RunAction(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")

	res, err := h.adminService.Run(r.Context(), action)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"action": action, "message": res.Message}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Publish обрабатывает POST /api/admin/publish: внеплановая выгрузка таблицы в R2.
func (h *AdminHandler) Publish(w http.ResponseWriter, r *http.Request) {
	if h.publishService == nil {
		unavailableResponse(w, r, services.ErrPublishingDisabled.Error())
		return
	}

	res, err := h.publishService.Publish(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"published": res}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
