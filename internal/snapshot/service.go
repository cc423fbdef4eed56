package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ringgitlab/firetrack/internal/portfolio"
)

// PortfolioSource values the portfolio for snapshotting.
type PortfolioSource interface {
	Current(ctx context.Context) (portfolio.View, error)
}

// Service manages net-worth snapshot generation and retrieval. One snapshot
// is kept per calendar date; regenerating a date overwrites it.
type Service struct {
	portfolio PortfolioSource
	repo      Repository
}

// NewService creates a new snapshot Service.
func NewService(portfolio PortfolioSource, repo Repository) *Service {
	if portfolio == nil {
		panic("snapshot.NewService: portfolio is nil")
	}
	if repo == nil {
		panic("snapshot.NewService: repo is nil")
	}
	return &Service{portfolio: portfolio, repo: repo}
}

// Generate values the portfolio and stores the result under the given date.
func (s *Service) Generate(ctx context.Context, date time.Time) (portfolio.View, error) {
	view, err := s.portfolio.Current(ctx)
	if err != nil {
		return portfolio.View{}, fmt.Errorf("valuing portfolio: %w", err)
	}

	data, err := json.Marshal(view)
	if err != nil {
		return portfolio.View{}, fmt.Errorf("marshaling snapshot: %w", err)
	}

	if err := s.repo.Save(ctx, date, data); err != nil {
		return portfolio.View{}, err
	}
	return view, nil
}

// GetLatest retrieves the most recent snapshot.
func (s *Service) GetLatest(ctx context.Context) (*Snapshot, error) {
	return s.repo.GetLatest(ctx)
}

// GetByDate retrieves a snapshot for a specific date.
func (s *Service) GetByDate(ctx context.Context, date time.Time) (*Snapshot, error) {
	return s.repo.GetByDate(ctx, date)
}

// List retrieves recent snapshots, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]Snapshot, error) {
	return s.repo.List(ctx, limit)
}
