package quote

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ErrNoRate indicates that no exchange rate has been stored yet.
var ErrNoRate = errors.New("no stored exchange rate")

// Quote is a stored market price.
type Quote struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// Repository defines persistent storage for quotes and the FX rate.
type Repository interface {
	SaveQuote(ctx context.Context, symbol string, price decimal.Decimal) error
	GetAllQuotes(ctx context.Context) ([]Quote, error)
	SaveRate(ctx context.Context, pair string, rate decimal.Decimal) error
	GetRate(ctx context.Context, pair string) (decimal.Decimal, error)
}

// PgRepository implements Repository with PostgreSQL.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL quote repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) SaveQuote(ctx context.Context, symbol string, price decimal.Decimal) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO quotes (symbol, price, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (symbol) DO UPDATE SET price = $2, updated_at = NOW()`,
		symbol, price)
	if err != nil {
		return fmt.Errorf("saving quote for %s: %w", symbol, err)
	}
	return nil
}

func (r *PgRepository) GetAllQuotes(ctx context.Context) ([]Quote, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT symbol, price, updated_at FROM quotes ORDER BY symbol`)
	if err != nil {
		return nil, fmt.Errorf("getting quotes: %w", err)
	}
	defer rows.Close()

	var quotes []Quote
	for rows.Next() {
		var q Quote
		if err := rows.Scan(&q.Symbol, &q.Price, &q.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning quote: %w", err)
		}
		quotes = append(quotes, q)
	}
	return quotes, rows.Err()
}

func (r *PgRepository) SaveRate(ctx context.Context, pair string, rate decimal.Decimal) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO fx_rates (pair, rate, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (pair) DO UPDATE SET rate = $2, updated_at = NOW()`,
		pair, rate)
	if err != nil {
		return fmt.Errorf("saving rate for %s: %w", pair, err)
	}
	return nil
}

func (r *PgRepository) GetRate(ctx context.Context, pair string) (decimal.Decimal, error) {
	var rate decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT rate FROM fx_rates WHERE pair = $1`, pair).Scan(&rate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, ErrNoRate
		}
		return decimal.Zero, fmt.Errorf("getting rate for %s: %w", pair, err)
	}
	return rate, nil
}
