// Package api exposes the tracker over HTTP. Read endpoints are open;
// mutating endpoints require the admin API key when one is configured.
package api

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/ringgitlab/firetrack/internal/portfolio"
	"github.com/ringgitlab/firetrack/internal/snapshot"
	"github.com/ringgitlab/firetrack/internal/store"
)

// NewServer creates an HTTP server with all routes configured.
func NewServer(port string, h *Handler, adminAPIKey string) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/portfolio", h.GetPortfolio)
	mux.HandleFunc("GET /api/v1/rebalance", h.GetRebalance)
	mux.HandleFunc("GET /api/v1/projection", h.GetProjection)
	mux.HandleFunc("GET /api/v1/bridge", h.GetBridge)
	mux.HandleFunc("GET /api/v1/bridge/catchup", h.GetBridgeCatchUp)
	mux.HandleFunc("GET /api/v1/advice", h.GetAdvice)
	mux.HandleFunc("GET /api/v1/export.xlsx", h.GetExportXLSX)

	mux.HandleFunc("GET /api/v1/holdings", h.ListHoldings)
	mux.HandleFunc("GET /api/v1/settings", h.GetSettings)
	mux.HandleFunc("GET /api/v1/fire-settings", h.GetFireSettings)
	mux.HandleFunc("GET /api/v1/yearly", h.ListYearly)
	mux.HandleFunc("GET /api/v1/dividends", h.ListDividends)
	mux.HandleFunc("GET /api/v1/loans", h.ListLoans)
	mux.HandleFunc("GET /api/v1/backup", h.GetBackup)

	mux.HandleFunc("GET /api/v1/snapshots/latest", h.GetLatestSnapshot)
	mux.HandleFunc("GET /api/v1/snapshots/{date}", h.GetSnapshotByDate)
	mux.HandleFunc("GET /api/v1/snapshots", h.ListSnapshots)

	protect := func(next http.HandlerFunc) http.Handler {
		if adminAPIKey == "" {
			return next
		}
		return requireAuth(adminAPIKey, next)
	}

	mux.Handle("POST /api/v1/holdings", protect(h.SaveHolding))
	mux.Handle("PUT /api/v1/holdings/{id}", protect(h.UpdateHolding))
	mux.Handle("DELETE /api/v1/holdings/{id}", protect(h.DeleteHolding))
	mux.Handle("PUT /api/v1/settings", protect(h.PutSettings))
	mux.Handle("PUT /api/v1/fire-settings", protect(h.PutFireSettings))
	mux.Handle("POST /api/v1/yearly", protect(h.SaveYearly))
	mux.Handle("POST /api/v1/dividends", protect(h.SaveDividend))
	mux.Handle("POST /api/v1/loans", protect(h.SaveLoan))
	mux.Handle("PUT /api/v1/backup", protect(h.RestoreBackup))
	mux.Handle("POST /api/v1/snapshots/generate", protect(h.GenerateSnapshot))

	return &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func requireAuth(apiKey string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		token := strings.TrimPrefix(auth, "Bearer ")
		if !strings.HasPrefix(auth, "Bearer ") || subtle.ConstantTimeCompare([]byte(token), []byte(apiKey)) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

var (
	_ PortfolioService = (*portfolio.Service)(nil)
	_ StoreService     = (*store.Service)(nil)
	_ SnapshotService  = (*snapshot.Service)(nil)
)
