package api

import (
	"net/http"

	"github.com/google/uuid"
)

// Reconcile запускает полный пасс сверки по всему набору списков.
// POST /api/v1/reconcile
func (h *Handler) Reconcile(w http.ResponseWriter, r *http.Request) {
	summary, err := h.engine.RunReconciliation(r.Context(), "api")
	if HandleEngineError(w, h.logger, err) {
		return
	}

	Success(w, SummaryFromDomain("api", summary))
}

// ReconcileList запускает пасс сверки по одному списку.
// POST /api/v1/lists/{listID}/reconcile
func (h *Handler) ReconcileList(w http.ResponseWriter, r *http.Request) {
	listID, err := uuid.Parse(r.PathValue("listID"))
	if err != nil {
		BadRequest(w, "invalid list id")
		return
	}

	summary, err := h.engine.ReconcileList(r.Context(), "api", listID)
	if HandleEngineError(w, h.logger, err) {
		return
	}

	Success(w, SummaryFromDomain("api", summary))
}
