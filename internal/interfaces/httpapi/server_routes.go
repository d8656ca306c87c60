package httpapi

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	mux.Handle("GET /metrics", promhttp.Handler())
}

func registerBracketRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/sports/{sportID}/bracket", handler.GetBracket)
	mux.HandleFunc("GET /v1/sports/{sportID}/bracket/live", handler.SubscribeBracket)
	mux.HandleFunc("GET /v1/brackets", handler.GetBrackets)
}

func registerRosterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/roster-changes", handler.SubmitRosterChange)
	mux.HandleFunc("GET /v1/roster-changes", handler.ListRosterChanges)
	mux.HandleFunc("GET /v1/roster-changes/{requestID}", handler.GetRosterChange)
	mux.HandleFunc("POST /v1/eligibility/check", handler.CheckEligibility)
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, adminToken string) {
	mux.Handle("POST /v1/matches/{matchID}/score", RequireAdminToken(adminToken, http.HandlerFunc(handler.SubmitScore)))
	mux.Handle("POST /v1/admin/roster-changes", RequireAdminToken(adminToken, http.HandlerFunc(handler.SubmitAdminRosterChange)))
	mux.Handle("POST /v1/admin/roster-changes/{requestID}/approve", RequireAdminToken(adminToken, http.HandlerFunc(handler.ApproveRosterChange)))
	mux.Handle("POST /v1/admin/roster-changes/{requestID}/reject", RequireAdminToken(adminToken, http.HandlerFunc(handler.RejectRosterChange)))
}
