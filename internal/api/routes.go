package api

import (
	"net/http"
)

// RegisterRoutes регистрирует все маршруты API.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Middleware chain
	chain := Chain(
		Recovery(h.logger),
		Logging(h.logger),
	)

	// Passes
	mux.Handle("POST /api/v1/reconcile", chain(http.HandlerFunc(h.Reconcile)))
	mux.Handle("POST /api/v1/lists/{listID}/reconcile", chain(http.HandlerFunc(h.ReconcileList)))

	// Alerts
	mux.Handle("GET /api/v1/alerts/pending", chain(http.HandlerFunc(h.ListPending)))
	mux.Handle("POST /api/v1/lists/{listID}/items/{itemID}/complete", chain(http.HandlerFunc(h.CompleteItem)))

	// Permission
	mux.Handle("GET /api/v1/permission", chain(http.HandlerFunc(h.GetPermission)))
	mux.Handle("POST /api/v1/permission/request", chain(http.HandlerFunc(h.RequestPermission)))
}
