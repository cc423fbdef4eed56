package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/ringgitlab/firetrack/internal/domain"
	"github.com/ringgitlab/firetrack/internal/store"
)

// ListHoldings handles GET /api/v1/holdings.
func (h *Handler) ListHoldings(w http.ResponseWriter, r *http.Request) {
	holdings, err := h.store.Holdings(r.Context())
	if err != nil {
		slog.Error("failed to list holdings", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, holdings)
}

// SaveHolding handles POST /api/v1/holdings.
func (h *Handler) SaveHolding(w http.ResponseWriter, r *http.Request) {
	var holding domain.Holding
	if err := json.NewDecoder(r.Body).Decode(&holding); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	h.saveHolding(w, r, holding)
}

// UpdateHolding handles PUT /api/v1/holdings/{id}.
func (h *Handler) UpdateHolding(w http.ResponseWriter, r *http.Request) {
	var holding domain.Holding
	if err := json.NewDecoder(r.Body).Decode(&holding); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	holding.ID = r.PathValue("id")
	h.saveHolding(w, r, holding)
}

func (h *Handler) saveHolding(w http.ResponseWriter, r *http.Request, holding domain.Holding) {
	saved, err := h.store.SaveHolding(r.Context(), holding)
	if err != nil {
		if errors.Is(err, store.ErrInvalidCategory) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		slog.Error("failed to save holding", "symbol", holding.Symbol, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DeleteHolding handles DELETE /api/v1/holdings/{id}.
func (h *Handler) DeleteHolding(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.DeleteHolding(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "holding not found")
			return
		}
		slog.Error("failed to delete holding", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetSettings handles GET /api/v1/settings.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	v, err := h.store.Settings(r.Context())
	if err != nil {
		slog.Error("failed to load settings", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// PutSettings handles PUT /api/v1/settings.
func (h *Handler) PutSettings(w http.ResponseWriter, r *http.Request) {
	var v domain.Settings
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.store.SaveSettings(r.Context(), v); err != nil {
		slog.Error("failed to save settings", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// GetFireSettings handles GET /api/v1/fire-settings.
func (h *Handler) GetFireSettings(w http.ResponseWriter, r *http.Request) {
	v, err := h.store.FireSettings(r.Context())
	if err != nil {
		slog.Error("failed to load fire settings", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// PutFireSettings handles PUT /api/v1/fire-settings.
func (h *Handler) PutFireSettings(w http.ResponseWriter, r *http.Request) {
	var v domain.FireSettings
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.store.SaveFireSettings(r.Context(), v); err != nil {
		slog.Error("failed to save fire settings", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// ListYearly handles GET /api/v1/yearly.
func (h *Handler) ListYearly(w http.ResponseWriter, r *http.Request) {
	listRecords(w, r, h.store.Yearly)
}

// SaveYearly handles POST /api/v1/yearly.
func (h *Handler) SaveYearly(w http.ResponseWriter, r *http.Request) {
	saveRecord(w, r, h.store.SaveYearly)
}

// ListDividends handles GET /api/v1/dividends.
func (h *Handler) ListDividends(w http.ResponseWriter, r *http.Request) {
	listRecords(w, r, h.store.Dividends)
}

// SaveDividend handles POST /api/v1/dividends.
func (h *Handler) SaveDividend(w http.ResponseWriter, r *http.Request) {
	saveRecord(w, r, h.store.SaveDividend)
}

// ListLoans handles GET /api/v1/loans.
func (h *Handler) ListLoans(w http.ResponseWriter, r *http.Request) {
	listRecords(w, r, h.store.Loans)
}

// SaveLoan handles POST /api/v1/loans.
func (h *Handler) SaveLoan(w http.ResponseWriter, r *http.Request) {
	saveRecord(w, r, h.store.SaveLoan)
}

// GetBackup handles GET /api/v1/backup.
func (h *Handler) GetBackup(w http.ResponseWriter, r *http.Request) {
	b, err := h.store.Export(r.Context())
	if err != nil {
		slog.Error("failed to export backup", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

// RestoreBackup handles PUT /api/v1/backup.
func (h *Handler) RestoreBackup(w http.ResponseWriter, r *http.Request) {
	var b domain.Backup
	if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := h.store.Import(r.Context(), b); err != nil {
		slog.Error("failed to restore backup", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func listRecords[T any](w http.ResponseWriter, r *http.Request, list func(ctx context.Context) ([]T, error)) {
	records, err := list(r.Context())
	if err != nil {
		slog.Error("failed to list records", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, records)
}

func saveRecord[T any](w http.ResponseWriter, r *http.Request, save func(ctx context.Context, rec T) (T, error)) {
	var rec T
	if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	saved, err := save(r.Context(), rec)
	if err != nil {
		slog.Error("failed to save record", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
