package api

import (
	"net/http"

	"github.com/google/uuid"
)

// ListPending возвращает очередь взведённых алертов хоста.
// GET /api/v1/alerts/pending
func (h *Handler) ListPending(w http.ResponseWriter, r *http.Request) {
	pending, err := h.gateway.PendingAlerts(r.Context())
	if HandleEngineError(w, h.logger, err) {
		return
	}

	result := make([]PendingAlertResponse, len(pending))
	for i, a := range pending {
		result[i] = PendingAlertFromDomain(a)
	}

	List(w, result, len(result))
}

// CompleteItem обрабатывает действие "выполнено" по элементу.
// POST /api/v1/lists/{listID}/items/{itemID}/complete
func (h *Handler) CompleteItem(w http.ResponseWriter, r *http.Request) {
	listID, err := uuid.Parse(r.PathValue("listID"))
	if err != nil {
		BadRequest(w, "invalid list id")
		return
	}

	itemID, err := uuid.Parse(r.PathValue("itemID"))
	if err != nil {
		BadRequest(w, "invalid item id")
		return
	}

	if err := h.engine.OnCompletionAction(r.Context(), itemID, listID); err != nil {
		HandleEngineError(w, h.logger, err)
		return
	}

	NoContent(w)
}

// GetPermission возвращает текущий статус разрешения на показ алертов.
// GET /api/v1/permission
func (h *Handler) GetPermission(w http.ResponseWriter, r *http.Request) {
	granted, err := h.gateway.HasPermission(r.Context())
	if HandleEngineError(w, h.logger, err) {
		return
	}

	Success(w, PermissionResponse{Granted: granted})
}

// RequestPermission запрашивает у хоста разрешение на показ алертов.
// POST /api/v1/permission/request
func (h *Handler) RequestPermission(w http.ResponseWriter, r *http.Request) {
	granted, err := h.gateway.RequestPermission(r.Context())
	if HandleEngineError(w, h.logger, err) {
		return
	}

	Success(w, PermissionResponse{Granted: granted})
}
