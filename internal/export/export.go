package export

import (
	"context"
	"fmt"

	"github.com/ringgitlab/firetrack/internal/portfolio"
)

// PortfolioSource provides the computed results a report is built from.
type PortfolioSource interface {
	Current(ctx context.Context) (portfolio.View, error)
	Projection(ctx context.Context) (portfolio.ProjectionView, error)
}

// ReportWriter writes a report to a spreadsheet destination.
type ReportWriter interface {
	Write(ctx context.Context, r Report) error
}

// Service builds portfolio reports and delegates writing to its writers.
type Service struct {
	portfolio PortfolioSource
	writers   []ReportWriter
}

// NewService creates a new export Service.
func NewService(portfolio PortfolioSource, writers ...ReportWriter) *Service {
	if portfolio == nil {
		panic("export: portfolio source is nil")
	}
	return &Service{portfolio: portfolio, writers: writers}
}

// Report values the portfolio, runs the projection and builds the report rows.
func (s *Service) Report(ctx context.Context) (Report, error) {
	view, err := s.portfolio.Current(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("valuing portfolio: %w", err)
	}

	proj, err := s.portfolio.Projection(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("running projection: %w", err)
	}

	return BuildReport(view, proj), nil
}

// Export builds the report and writes it to every configured writer.
// Implements worker.AfterSnapshotHook.
func (s *Service) Export(ctx context.Context) error {
	r, err := s.Report(ctx)
	if err != nil {
		return err
	}

	for _, w := range s.writers {
		if err := w.Write(ctx, r); err != nil {
			return err
		}
	}
	return nil
}
