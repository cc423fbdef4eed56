package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ringgitlab/firetrack/internal/domain"
	"github.com/ringgitlab/firetrack/internal/export"
	"github.com/ringgitlab/firetrack/internal/portfolio"
	"github.com/ringgitlab/firetrack/internal/snapshot"
)

// PortfolioService computes valued portfolio views and derived plans.
type PortfolioService interface {
	Current(ctx context.Context) (portfolio.View, error)
	Rebalance(ctx context.Context) (portfolio.RebalanceView, error)
	Projection(ctx context.Context) (portfolio.ProjectionView, error)
	Bridge(ctx context.Context, threshold, annualLimit decimal.Decimal, targetAge int) (portfolio.BridgeView, error)
}

// StoreService persists holdings, settings and records.
type StoreService interface {
	Holdings(ctx context.Context) ([]domain.Holding, error)
	SaveHolding(ctx context.Context, h domain.Holding) (domain.Holding, error)
	DeleteHolding(ctx context.Context, id string) error
	Settings(ctx context.Context) (domain.Settings, error)
	SaveSettings(ctx context.Context, v domain.Settings) error
	FireSettings(ctx context.Context) (domain.FireSettings, error)
	SaveFireSettings(ctx context.Context, v domain.FireSettings) error
	Yearly(ctx context.Context) ([]domain.YearlyRecord, error)
	SaveYearly(ctx context.Context, r domain.YearlyRecord) (domain.YearlyRecord, error)
	Dividends(ctx context.Context) ([]domain.DividendRecord, error)
	SaveDividend(ctx context.Context, r domain.DividendRecord) (domain.DividendRecord, error)
	Loans(ctx context.Context) ([]domain.LoanRecord, error)
	SaveLoan(ctx context.Context, r domain.LoanRecord) (domain.LoanRecord, error)
	Export(ctx context.Context) (domain.Backup, error)
	Import(ctx context.Context, b domain.Backup) error
}

// SnapshotService stores and retrieves daily net-worth snapshots.
type SnapshotService interface {
	Generate(ctx context.Context, date time.Time) (portfolio.View, error)
	GetLatest(ctx context.Context) (*snapshot.Snapshot, error)
	GetByDate(ctx context.Context, date time.Time) (*snapshot.Snapshot, error)
	List(ctx context.Context, limit int) ([]snapshot.Snapshot, error)
}

// AdviceSource generates narrative advisories from computed results.
type AdviceSource interface {
	Advise(ctx context.Context, view portfolio.View, proj portfolio.ProjectionView) (string, error)
}

// ReportSource builds spreadsheet report rows.
type ReportSource interface {
	Report(ctx context.Context) (export.Report, error)
}

// BridgeDefaults holds the configured EPF parameters used when a bridge
// request does not override them.
type BridgeDefaults struct {
	Threshold   decimal.Decimal
	AnnualLimit decimal.Decimal
}

// Handler provides the HTTP endpoints of the tracker API.
type Handler struct {
	store     StoreService
	portfolio PortfolioService
	snapshots SnapshotService
	advisor   AdviceSource
	reports   ReportSource
	bridge    BridgeDefaults
}

// NewHandler creates a new API handler. advisor may be nil when the
// advisory feature is disabled.
func NewHandler(store StoreService, pf PortfolioService, snapshots SnapshotService, reports ReportSource, advisor AdviceSource, bridge BridgeDefaults) *Handler {
	if store == nil || pf == nil || snapshots == nil || reports == nil {
		panic("api: nil service dependency")
	}
	return &Handler{
		store:     store,
		portfolio: pf,
		snapshots: snapshots,
		advisor:   advisor,
		reports:   reports,
		bridge:    bridge,
	}
}

// GetPortfolio handles GET /api/v1/portfolio.
func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	view, err := h.portfolio.Current(r.Context())
	if err != nil {
		slog.Error("failed to value portfolio", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetRebalance handles GET /api/v1/rebalance.
func (h *Handler) GetRebalance(w http.ResponseWriter, r *http.Request) {
	plan, err := h.portfolio.Rebalance(r.Context())
	if err != nil {
		slog.Error("failed to compute rebalance plan", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// GetProjection handles GET /api/v1/projection.
func (h *Handler) GetProjection(w http.ResponseWriter, r *http.Request) {
	proj, err := h.portfolio.Projection(r.Context())
	if err != nil {
		slog.Error("failed to run projection", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, proj)
}

// GetBridge handles GET /api/v1/bridge. It reports liquidity against the
// EPF withdrawal threshold; threshold may be overridden via query param.
func (h *Handler) GetBridge(w http.ResponseWriter, r *http.Request) {
	threshold, ok := decimalParam(w, r, "threshold", h.bridge.Threshold)
	if !ok {
		return
	}

	view, err := h.portfolio.Bridge(r.Context(), threshold, h.bridge.AnnualLimit, 0)
	if err != nil {
		slog.Error("failed to compute bridge liquidity", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetBridgeCatchUp handles GET /api/v1/bridge/catchup. targetAge is
// required; threshold and annualLimit default to the configured values.
func (h *Handler) GetBridgeCatchUp(w http.ResponseWriter, r *http.Request) {
	targetAge, err := strconv.Atoi(r.URL.Query().Get("targetAge"))
	if err != nil || targetAge <= 0 {
		writeError(w, http.StatusBadRequest, "targetAge must be a positive integer")
		return
	}

	threshold, ok := decimalParam(w, r, "threshold", h.bridge.Threshold)
	if !ok {
		return
	}
	annualLimit, ok := decimalParam(w, r, "annualLimit", h.bridge.AnnualLimit)
	if !ok {
		return
	}

	view, err := h.portfolio.Bridge(r.Context(), threshold, annualLimit, targetAge)
	if err != nil {
		slog.Error("failed to compute catch-up plan", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// GetAdvice handles GET /api/v1/advice.
func (h *Handler) GetAdvice(w http.ResponseWriter, r *http.Request) {
	if h.advisor == nil {
		writeError(w, http.StatusServiceUnavailable, "advisor is not configured")
		return
	}

	view, err := h.portfolio.Current(r.Context())
	if err != nil {
		slog.Error("failed to value portfolio", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	proj, err := h.portfolio.Projection(r.Context())
	if err != nil {
		slog.Error("failed to run projection", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	advice, err := h.advisor.Advise(r.Context(), view, proj)
	if err != nil {
		slog.Error("failed to generate advice", "error", err)
		writeError(w, http.StatusBadGateway, "advisory generation failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"advice": advice})
}

// GetExportXLSX handles GET /api/v1/export.xlsx.
func (h *Handler) GetExportXLSX(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.Report(r.Context())
	if err != nil {
		slog.Error("failed to build report", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="firetrack.xlsx"`)
	if err := export.WriteWorkbook(report, w); err != nil {
		slog.Warn("failed to stream workbook", "error", err)
	}
}

// decimalParam parses an optional decimal query parameter, writing a 400
// and returning ok=false when the value is present but malformed.
func decimalParam(w http.ResponseWriter, r *http.Request, name string, fallback decimal.Decimal) (decimal.Decimal, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, name+" must be a number")
		return decimal.Zero, false
	}
	return d, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		slog.Error("failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":"internal error"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write HTTP response body", "error", err)
		return
	}
	_, _ = w.Write([]byte("\n"))
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
