package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates that the requested document was not found.
var ErrNotFound = errors.New("document not found")

// Collection names used by the tracker. The store itself treats documents
// as opaque JSON; these constants exist so callers agree on spelling.
const (
	CollectionHoldings  = "holdings"
	CollectionSettings  = "settings"
	CollectionYearly    = "yearly"
	CollectionDividends = "dividends"
	CollectionLoans     = "loans"
)

// Repository is a key-value document store: collections of opaque JSON
// blobs keyed by a stable string identifier.
type Repository interface {
	Put(ctx context.Context, collection, id string, doc json.RawMessage) error
	Get(ctx context.Context, collection, id string) (json.RawMessage, error)
	List(ctx context.Context, collection string) ([]json.RawMessage, error)
	Delete(ctx context.Context, collection, id string) error
}

// PgRepository implements Repository with PostgreSQL jsonb documents.
type PgRepository struct {
	pool *pgxpool.Pool
}

// NewPgRepository creates a new PostgreSQL document repository.
func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func (r *PgRepository) Put(ctx context.Context, collection, id string, doc json.RawMessage) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO documents (collection, id, doc, updated_at)
		 VALUES ($1, $2, $3::jsonb, NOW())
		 ON CONFLICT (collection, id)
		 DO UPDATE SET doc = $3::jsonb, updated_at = NOW()`,
		collection, id, doc)
	if err != nil {
		return fmt.Errorf("saving %s/%s: %w", collection, id, err)
	}
	return nil
}

func (r *PgRepository) Get(ctx context.Context, collection, id string) (json.RawMessage, error) {
	var doc json.RawMessage
	err := r.pool.QueryRow(ctx,
		`SELECT doc FROM documents WHERE collection = $1 AND id = $2`,
		collection, id).Scan(&doc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting %s/%s: %w", collection, id, err)
	}
	return doc, nil
}

func (r *PgRepository) List(ctx context.Context, collection string) ([]json.RawMessage, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT doc FROM documents WHERE collection = $1 ORDER BY id`,
		collection)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", collection, err)
	}
	defer rows.Close()

	var docs []json.RawMessage
	for rows.Next() {
		var doc json.RawMessage
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scanning %s document: %w", collection, err)
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", collection, err)
	}
	return docs, nil
}

func (r *PgRepository) Delete(ctx context.Context, collection, id string) error {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM documents WHERE collection = $1 AND id = $2`,
		collection, id)
	if err != nil {
		return fmt.Errorf("deleting %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
