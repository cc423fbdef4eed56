// Package worker runs the background loops: periodic quote refresh and
// daily net-worth snapshot generation.
package worker

import (
	"context"
	"log/slog"
	"time"
)

// QuoteFetcher fetches current prices and the exchange rate and stores them.
type QuoteFetcher interface {
	FetchAndStoreQuotes(ctx context.Context) error
}

// QuoteWorker keeps cached quotes fresh on a fixed interval.
type QuoteWorker struct {
	fetcher  QuoteFetcher
	interval time.Duration
}

// NewQuoteWorker creates a new QuoteWorker.
func NewQuoteWorker(fetcher QuoteFetcher, interval time.Duration) *QuoteWorker {
	return &QuoteWorker{fetcher: fetcher, interval: interval}
}

// Run starts the quote worker loop. It refreshes once immediately, then on
// every tick, and blocks until the context is cancelled.
func (w *QuoteWorker) Run(ctx context.Context) {
	slog.Info("QuoteWorker: starting")
	w.refresh(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("QuoteWorker: shutting down")
			return
		case <-ticker.C:
			w.refresh(ctx)
		}
	}
}

func (w *QuoteWorker) refresh(ctx context.Context) {
	if err := w.fetcher.FetchAndStoreQuotes(ctx); err != nil {
		slog.Error("QuoteWorker: refresh failed", "error", err)
		return
	}
	slog.Info("QuoteWorker: refresh completed")
}
