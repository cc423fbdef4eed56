package quote

import (
	"context"
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/ringgitlab/firetrack/internal/domain"
)

// USDMYRPair is the only FX pair the tracker needs.
const USDMYRPair = "USDMYR"

// HoldingSource supplies the holdings whose symbols need live prices.
type HoldingSource interface {
	Holdings(ctx context.Context) ([]domain.Holding, error)
}

// Service fetches external quotes and applies stored prices to holdings.
// The computation core never talks to it; it only prepares inputs.
type Service struct {
	client   *Client
	repo     Repository
	holdings HoldingSource
}

// NewService creates a new quote Service.
func NewService(client *Client, repo Repository, holdings HoldingSource) *Service {
	if client == nil {
		panic("quote.NewService: client is nil")
	}
	if repo == nil {
		panic("quote.NewService: repo is nil")
	}
	if holdings == nil {
		panic("quote.NewService: holdings is nil")
	}
	return &Service{client: client, repo: repo, holdings: holdings}
}

// FetchAndStoreQuotes fetches prices for every priceable holding symbol
// plus the USD/MYR rate, and stores them.
func (s *Service) FetchAndStoreQuotes(ctx context.Context) error {
	holdings, err := s.holdings.Holdings(ctx)
	if err != nil {
		return fmt.Errorf("loading holdings: %w", err)
	}

	symbols := priceableSymbols(holdings)
	prices, err := s.client.FetchPrices(ctx, symbols)
	if err != nil {
		return fmt.Errorf("fetching prices: %w", err)
	}
	for symbol, price := range prices {
		if err := s.repo.SaveQuote(ctx, symbol, price); err != nil {
			return err
		}
	}

	rate, err := s.client.FetchRate(ctx)
	if err != nil {
		return fmt.Errorf("fetching USD/MYR rate: %w", err)
	}
	return s.repo.SaveRate(ctx, USDMYRPair, rate)
}

// Rate returns the stored USD/MYR rate, falling back to the settings rate
// when none is stored.
func (s *Service) Rate(ctx context.Context, settings domain.Settings) (decimal.Decimal, error) {
	rate, err := s.repo.GetRate(ctx, USDMYRPair)
	if err != nil {
		if errors.Is(err, ErrNoRate) {
			return settings.ExchangeRate, nil
		}
		return decimal.Zero, err
	}
	if !rate.IsPositive() {
		return settings.ExchangeRate, nil
	}
	return rate, nil
}

// ApplyPrices overwrites each priceable holding's stored price with the
// latest quote where one exists. Holdings without a stored quote keep their
// manually entered price.
func (s *Service) ApplyPrices(ctx context.Context, holdings []domain.Holding) ([]domain.Holding, error) {
	quotes, err := s.repo.GetAllQuotes(ctx)
	if err != nil {
		return nil, err
	}
	bySymbol := lo.KeyBy(quotes, func(q Quote) string { return q.Symbol })

	out := make([]domain.Holding, len(holdings))
	copy(out, holdings)
	for i := range out {
		if out[i].Category.IsCashLike() || out[i].Category == domain.CategoryEPF {
			continue
		}
		if q, ok := bySymbol[out[i].Symbol]; ok && q.Price.IsPositive() {
			out[i].Price = q.Price
		}
	}
	return out, nil
}

// priceableSymbols collects unique symbols of holdings whose price comes
// from the market rather than from the user or an accrual rule.
func priceableSymbols(holdings []domain.Holding) []string {
	priced := lo.Filter(holdings, func(h domain.Holding, _ int) bool {
		return !h.Category.IsCashLike() && h.Category != domain.CategoryEPF
	})
	return lo.Uniq(lo.Map(priced, func(h domain.Holding, _ int) string { return h.Symbol }))
}
