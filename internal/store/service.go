package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/ringgitlab/firetrack/internal/domain"
)

// settingsDocID and fireDocID key the two singleton settings documents
// inside the settings collection.
const (
	settingsDocID = "portfolio"
	fireDocID     = "fire"
)

// ErrInvalidCategory is returned when a holding names a category outside
// the closed set.
var ErrInvalidCategory = errors.New("unknown holding category")

// Service is the typed facade over the document repository. The computation
// core never sees it; it only maps entity collections to and from JSON.
type Service struct {
	repo Repository
}

// NewService creates a new store Service.
func NewService(repo Repository) *Service {
	if repo == nil {
		panic("store.NewService: repo is nil")
	}
	return &Service{repo: repo}
}

// Holdings loads all holdings.
func (s *Service) Holdings(ctx context.Context) ([]domain.Holding, error) {
	return listAs[domain.Holding](ctx, s.repo, CollectionHoldings)
}

// SaveHolding inserts or updates a holding, assigning an id when missing.
func (s *Service) SaveHolding(ctx context.Context, h domain.Holding) (domain.Holding, error) {
	if h.ID == "" {
		h.ID = uuid.NewString()
	}
	if !h.Category.Valid() {
		return domain.Holding{}, fmt.Errorf("%w: %q", ErrInvalidCategory, h.Category)
	}
	doc, err := json.Marshal(h)
	if err != nil {
		return domain.Holding{}, fmt.Errorf("marshaling holding: %w", err)
	}
	if err := s.repo.Put(ctx, CollectionHoldings, h.ID, doc); err != nil {
		return domain.Holding{}, err
	}
	return h, nil
}

// DeleteHolding removes a holding by id.
func (s *Service) DeleteHolding(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, CollectionHoldings, id)
}

// Settings loads portfolio settings, returning zero-value settings when
// none were saved yet.
func (s *Service) Settings(ctx context.Context) (domain.Settings, error) {
	return getOrZero[domain.Settings](ctx, s.repo, CollectionSettings, settingsDocID)
}

// SaveSettings stores portfolio settings.
func (s *Service) SaveSettings(ctx context.Context, v domain.Settings) error {
	return put(ctx, s.repo, CollectionSettings, settingsDocID, v)
}

// FireSettings loads projection settings, returning zero-value settings
// when none were saved yet.
func (s *Service) FireSettings(ctx context.Context) (domain.FireSettings, error) {
	return getOrZero[domain.FireSettings](ctx, s.repo, CollectionSettings, fireDocID)
}

// SaveFireSettings stores projection settings.
func (s *Service) SaveFireSettings(ctx context.Context, v domain.FireSettings) error {
	return put(ctx, s.repo, CollectionSettings, fireDocID, v)
}

// Yearly loads all yearly net worth records.
func (s *Service) Yearly(ctx context.Context) ([]domain.YearlyRecord, error) {
	return listAs[domain.YearlyRecord](ctx, s.repo, CollectionYearly)
}

// SaveYearly inserts or updates a yearly record.
func (s *Service) SaveYearly(ctx context.Context, r domain.YearlyRecord) (domain.YearlyRecord, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return r, put(ctx, s.repo, CollectionYearly, r.ID, r)
}

// Dividends loads all dividend records.
func (s *Service) Dividends(ctx context.Context) ([]domain.DividendRecord, error) {
	return listAs[domain.DividendRecord](ctx, s.repo, CollectionDividends)
}

// SaveDividend inserts or updates a dividend record.
func (s *Service) SaveDividend(ctx context.Context, r domain.DividendRecord) (domain.DividendRecord, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return r, put(ctx, s.repo, CollectionDividends, r.ID, r)
}

// Loans loads all loan records.
func (s *Service) Loans(ctx context.Context) ([]domain.LoanRecord, error) {
	return listAs[domain.LoanRecord](ctx, s.repo, CollectionLoans)
}

// SaveLoan inserts or updates a loan record.
func (s *Service) SaveLoan(ctx context.Context, r domain.LoanRecord) (domain.LoanRecord, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return r, put(ctx, s.repo, CollectionLoans, r.ID, r)
}

// Export assembles the full backup document.
func (s *Service) Export(ctx context.Context) (domain.Backup, error) {
	var b domain.Backup
	var err error

	if b.Holdings, err = s.Holdings(ctx); err != nil {
		return domain.Backup{}, err
	}
	if b.Settings, err = s.Settings(ctx); err != nil {
		return domain.Backup{}, err
	}
	if b.FireSettings, err = s.FireSettings(ctx); err != nil {
		return domain.Backup{}, err
	}
	if b.Yearly, err = s.Yearly(ctx); err != nil {
		return domain.Backup{}, err
	}
	if b.Dividends, err = s.Dividends(ctx); err != nil {
		return domain.Backup{}, err
	}
	if b.Loans, err = s.Loans(ctx); err != nil {
		return domain.Backup{}, err
	}
	return b, nil
}

// Import replaces stored collections with the backup's contents. Documents
// absent from the backup are left untouched.
func (s *Service) Import(ctx context.Context, b domain.Backup) error {
	for _, h := range b.Holdings {
		if _, err := s.SaveHolding(ctx, h); err != nil {
			return err
		}
	}
	if err := s.SaveSettings(ctx, b.Settings); err != nil {
		return err
	}
	if err := s.SaveFireSettings(ctx, b.FireSettings); err != nil {
		return err
	}
	for _, r := range b.Yearly {
		if _, err := s.SaveYearly(ctx, r); err != nil {
			return err
		}
	}
	for _, r := range b.Dividends {
		if _, err := s.SaveDividend(ctx, r); err != nil {
			return err
		}
	}
	for _, r := range b.Loans {
		if _, err := s.SaveLoan(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func put(ctx context.Context, repo Repository, collection, id string, v any) error {
	doc, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s/%s: %w", collection, id, err)
	}
	return repo.Put(ctx, collection, id, doc)
}

func getOrZero[T any](ctx context.Context, repo Repository, collection, id string) (T, error) {
	var v T
	doc, err := repo.Get(ctx, collection, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return v, nil
		}
		return v, err
	}
	if err := json.Unmarshal(doc, &v); err != nil {
		return v, fmt.Errorf("unmarshaling %s/%s: %w", collection, id, err)
	}
	return v, nil
}

func listAs[T any](ctx context.Context, repo Repository, collection string) ([]T, error) {
	docs, err := repo.List(ctx, collection)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		var v T
		if err := json.Unmarshal(doc, &v); err != nil {
			return nil, fmt.Errorf("unmarshaling %s document: %w", collection, err)
		}
		out = append(out, v)
	}
	return out, nil
}
