package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ringgitlab/firetrack/internal/domain"
)

// memRepository is an in-memory Repository for tests.
type memRepository struct {
	docs map[string]map[string]json.RawMessage
}

func newMemRepository() *memRepository {
	return &memRepository{docs: make(map[string]map[string]json.RawMessage)}
}

func (m *memRepository) Put(_ context.Context, collection, id string, doc json.RawMessage) error {
	if m.docs[collection] == nil {
		m.docs[collection] = make(map[string]json.RawMessage)
	}
	m.docs[collection][id] = doc
	return nil
}

func (m *memRepository) Get(_ context.Context, collection, id string) (json.RawMessage, error) {
	doc, ok := m.docs[collection][id]
	if !ok {
		return nil, ErrNotFound
	}
	return doc, nil
}

func (m *memRepository) List(_ context.Context, collection string) ([]json.RawMessage, error) {
	var out []json.RawMessage
	for _, doc := range m.docs[collection] {
		out = append(out, doc)
	}
	return out, nil
}

func (m *memRepository) Delete(_ context.Context, collection, id string) error {
	if _, ok := m.docs[collection][id]; !ok {
		return ErrNotFound
	}
	delete(m.docs[collection], id)
	return nil
}

func TestSaveHoldingAssignsID(t *testing.T) {
	svc := NewService(newMemRepository())

	h, err := svc.SaveHolding(context.Background(), domain.Holding{
		Symbol:   "MAYBANK",
		Category: domain.CategoryStock,
		Currency: domain.MYR,
	})
	if err != nil {
		t.Fatalf("SaveHolding: %v", err)
	}
	if h.ID == "" {
		t.Error("SaveHolding did not assign an id")
	}

	holdings, err := svc.Holdings(context.Background())
	if err != nil {
		t.Fatalf("Holdings: %v", err)
	}
	if len(holdings) != 1 || holdings[0].Symbol != "MAYBANK" {
		t.Errorf("holdings = %v, want the saved holding", holdings)
	}
}

func TestSaveHoldingRejectsUnknownCategory(t *testing.T) {
	svc := NewService(newMemRepository())

	if _, err := svc.SaveHolding(context.Background(), domain.Holding{
		Symbol:   "X",
		Category: domain.Category("bond"),
	}); err == nil {
		t.Error("SaveHolding accepted an unknown category")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	svc := NewService(newMemRepository())
	ctx := context.Background()

	// Unsaved settings come back zero-valued, not as an error.
	s, err := svc.Settings(ctx)
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if !s.ExchangeRate.IsZero() {
		t.Errorf("unsaved settings = %+v, want zero value", s)
	}

	want := domain.Settings{
		ExchangeRate:   decimal.RequireFromString("4.3"),
		NetWorthTarget: decimal.NewFromInt(2000000),
	}
	if err := svc.SaveSettings(ctx, want); err != nil {
		t.Fatalf("SaveSettings: %v", err)
	}

	got, err := svc.Settings(ctx)
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if !got.ExchangeRate.Equal(want.ExchangeRate) || !got.NetWorthTarget.Equal(want.NetWorthTarget) {
		t.Errorf("settings round trip = %+v, want %+v", got, want)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	src := NewService(newMemRepository())
	ctx := context.Background()

	if _, err := src.SaveHolding(ctx, domain.Holding{Symbol: "VOO", Category: domain.CategoryETF, Currency: domain.USD}); err != nil {
		t.Fatal(err)
	}
	if _, err := src.SaveYearly(ctx, domain.YearlyRecord{Year: 2024, NetWorth: decimal.NewFromInt(800000)}); err != nil {
		t.Fatal(err)
	}

	backup, err := src.Export(ctx)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	dst := NewService(newMemRepository())
	if err := dst.Import(ctx, backup); err != nil {
		t.Fatalf("Import: %v", err)
	}

	holdings, _ := dst.Holdings(ctx)
	yearly, _ := dst.Yearly(ctx)
	if len(holdings) != 1 || len(yearly) != 1 {
		t.Errorf("imported %d holdings, %d yearly records; want 1 and 1", len(holdings), len(yearly))
	}
}
