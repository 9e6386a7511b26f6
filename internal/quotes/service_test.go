package quotes

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"superpack/internal/packages"
)

// fakeRepo widens fakeStore to the full repository surface; the extra
// methods are unused by the paths under test.
type fakeRepo struct {
	*fakeStore
}

func (r *fakeRepo) Create(ctx context.Context, quote *Quote) error {
	r.put(quote)
	return nil
}

func (r *fakeRepo) GetAll(ctx context.Context, query QuoteListQuery) ([]Quote, int64, error) {
	return nil, 0, nil
}

func (r *fakeRepo) GetLinkedToPackage(ctx context.Context, packageID uuid.UUID) ([]Quote, error) {
	return nil, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.quotes, id)
	return nil
}

func TestUpdateQuoteParamsDoesNotRecalculate(t *testing.T) {
	quote := linkedQuote(SyncStatusSynced)
	repo := &fakeRepo{newFakeStore(quote)}

	calls := 0
	engine := NewEngine(repo, &fakeCalculator{fn: func(uuid.UUID, int, int, time.Time) (*packages.Resolution, error) {
		calls++
		return fixedResolution(999), nil
	}})
	svc := NewService(repo, engine, nil, nil, nil)

	nights := 9
	resp, err := svc.UpdateQuoteParams(context.Background(), quote.ID, uuid.New(), UpdateQuoteParamsRequest{Nights: &nights})
	if err != nil {
		t.Fatalf("UpdateQuoteParams() error = %v", err)
	}
	if calls != 0 {
		t.Errorf("calculator calls = %d, want 0 (recalculation is explicit only)", calls)
	}
	if resp.SyncStatus != SyncStatusOutOfSync {
		t.Errorf("status = %s, want out-of-sync", resp.SyncStatus)
	}
	// The stale price stays on display until the agent recalculates
	if resp.DisplayedPrice == nil || *resp.DisplayedPrice != 400 {
		t.Errorf("displayed price = %v, want retained 400", resp.DisplayedPrice)
	}

	stored, err := repo.GetByID(context.Background(), quote.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if stored.SyncStatus != SyncStatusOutOfSync {
		t.Errorf("stored status = %s, want out-of-sync", stored.SyncStatus)
	}
	if stored.Selection == nil || stored.Selection.CalculatedPrice != 400 {
		t.Errorf("stored snapshot = %+v, want untouched price 400", stored.Selection)
	}
}

func TestUpdateQuoteParamsCustomerEditKeepsSync(t *testing.T) {
	quote := linkedQuote(SyncStatusSynced)
	repo := &fakeRepo{newFakeStore(quote)}
	engine := NewEngine(repo, &fakeCalculator{fn: func(uuid.UUID, int, int, time.Time) (*packages.Resolution, error) {
		t.Fatal("calculator must not be called")
		return nil, nil
	}})
	svc := NewService(repo, engine, nil, nil, nil)

	name := "Renamed Customer"
	resp, err := svc.UpdateQuoteParams(context.Background(), quote.ID, uuid.New(), UpdateQuoteParamsRequest{CustomerName: &name})
	if err != nil {
		t.Fatalf("UpdateQuoteParams() error = %v", err)
	}
	if resp.SyncStatus != SyncStatusSynced {
		t.Errorf("status = %s, want synced (no pricing parameter changed)", resp.SyncStatus)
	}
	if resp.CustomerName != name {
		t.Errorf("customer name = %q, want %q", resp.CustomerName, name)
	}
}
