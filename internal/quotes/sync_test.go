package quotes

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"superpack/internal/packages"
)

// fakeStore is an in-memory QuoteStore. GetByID returns copies so the engine's
// reload-after-calculation behaves like a real database read.
type fakeStore struct {
	mu     sync.Mutex
	quotes map[uuid.UUID]*Quote
}

func newFakeStore(quotes ...*Quote) *fakeStore {
	s := &fakeStore{quotes: make(map[uuid.UUID]*Quote)}
	for _, q := range quotes {
		s.put(q)
	}
	return s
}

func (s *fakeStore) put(q *Quote) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *q
	s.quotes[q.ID] = &copied
}

func (s *fakeStore) GetByID(ctx context.Context, id uuid.UUID) (*Quote, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q, ok := s.quotes[id]
	if !ok {
		return nil, ErrQuoteNotFound
	}
	copied := *q
	return &copied, nil
}

func (s *fakeStore) Update(ctx context.Context, quote *Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *quote
	s.quotes[quote.ID] = &copied
	return nil
}

// fakeCalculator runs the given function per call.
type fakeCalculator struct {
	fn func(packageID uuid.UUID, people, nights int, arrival time.Time) (*packages.Resolution, error)
}

func (c *fakeCalculator) CalculatePrice(ctx context.Context, packageID uuid.UUID, people, nights int, arrival time.Time) (*packages.Resolution, error) {
	return c.fn(packageID, people, nights, arrival)
}

func fixedResolution(amount float64) *packages.Resolution {
	return &packages.Resolution{
		PackageVersion: 2,
		Price:          packages.NumericPrice(amount),
		TierIndex:      0,
		TierLabel:      "2-3",
		Period:         "June",
		PeriodType:     packages.PeriodTypeMonth,
		Currency:       packages.CurrencyEUR,
	}
}

func linkedQuote(status SyncStatus) *Quote {
	return &Quote{
		ID:             uuid.New(),
		Reference:      "QT-TEST0001",
		CustomerName:   "Test Customer",
		NumberOfPeople: 2,
		Nights:         5,
		ArrivalDate:    time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
		Currency:       packages.CurrencyEUR,
		SyncStatus:     status,
		Selection: &LinkedPackageSelection{
			PackageID:       uuid.New(),
			PackageVersion:  1,
			SelectedTier:    TierRef{TierIndex: 0, TierLabel: "2-3"},
			SelectedNights:  5,
			SelectedPeriod:  "June",
			CalculatedPrice: 400,
			NumberOfPeople:  2,
			ArrivalDate:     time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
			Currency:        packages.CurrencyEUR,
		},
		CreatedBy: uuid.New(),
	}
}

func TestRecalculateSuccess(t *testing.T) {
	quote := linkedQuote(SyncStatusOutOfSync)
	store := newFakeStore(quote)
	calc := &fakeCalculator{fn: func(uuid.UUID, int, int, time.Time) (*packages.Resolution, error) {
		return fixedResolution(450), nil
	}}
	engine := NewEngine(store, calc)

	updated, err := engine.Recalculate(context.Background(), quote.ID)
	if err != nil {
		t.Fatalf("Recalculate() error = %v", err)
	}
	if updated.SyncStatus != SyncStatusSynced {
		t.Errorf("status = %s, want synced", updated.SyncStatus)
	}
	if updated.Selection == nil {
		t.Fatal("selection dropped")
	}
	if updated.Selection.CalculatedPrice != 450 {
		t.Errorf("calculated price = %v, want 450", updated.Selection.CalculatedPrice)
	}
	if updated.Selection.PackageVersion != 2 {
		t.Errorf("snapshot package version = %d, want 2", updated.Selection.PackageVersion)
	}
	if updated.LastSyncError != nil {
		t.Errorf("LastSyncError = %v, want nil", *updated.LastSyncError)
	}
}

func TestRecalculateOnRequestResult(t *testing.T) {
	quote := linkedQuote(SyncStatusOutOfSync)
	store := newFakeStore(quote)
	calc := &fakeCalculator{fn: func(uuid.UUID, int, int, time.Time) (*packages.Resolution, error) {
		res := fixedResolution(0)
		res.Price = packages.OnRequestPrice()
		res.PriceWasOnRequest = true
		return res, nil
	}}
	engine := NewEngine(store, calc)

	updated, err := engine.Recalculate(context.Background(), quote.ID)
	if err != nil {
		t.Fatalf("Recalculate() error = %v", err)
	}
	if updated.SyncStatus != SyncStatusSynced {
		t.Errorf("status = %s, want synced", updated.SyncStatus)
	}
	if !updated.Selection.PriceWasOnRequest {
		t.Error("on-request resolution should be recorded in the snapshot")
	}
	if updated.DisplayedPrice() != nil {
		t.Error("on-request quote should not display a numeric price")
	}
}

func TestRecalculateFailureKeepsPreviousPrice(t *testing.T) {
	quote := linkedQuote(SyncStatusOutOfSync)
	store := newFakeStore(quote)
	calcErr := packages.ErrNoMatchingPeriod
	calc := &fakeCalculator{fn: func(uuid.UUID, int, int, time.Time) (*packages.Resolution, error) {
		return nil, calcErr
	}}
	engine := NewEngine(store, calc)

	updated, err := engine.Recalculate(context.Background(), quote.ID)
	if err != nil {
		t.Fatalf("Recalculate() error = %v", err)
	}
	if updated.SyncStatus != SyncStatusError {
		t.Errorf("status = %s, want error", updated.SyncStatus)
	}
	if updated.LastSyncError == nil || *updated.LastSyncError != calcErr.Error() {
		t.Errorf("LastSyncError = %v, want %q", updated.LastSyncError, calcErr.Error())
	}
	// Previous snapshot stays so the agent still has a price to show
	if updated.Selection == nil || updated.Selection.CalculatedPrice != 400 {
		t.Errorf("previous calculated price lost: %+v", updated.Selection)
	}
	if price := updated.DisplayedPrice(); price == nil || *price != 400 {
		t.Errorf("displayed price = %v, want 400", price)
	}
}

func TestRecalculateGuards(t *testing.T) {
	custom := linkedQuote(SyncStatusCustom)
	unlinked := &Quote{ID: uuid.New(), SyncStatus: SyncStatusCustom}
	store := newFakeStore(custom, unlinked)
	calc := &fakeCalculator{fn: func(uuid.UUID, int, int, time.Time) (*packages.Resolution, error) {
		t.Fatal("calculator must not be called")
		return nil, nil
	}}
	engine := NewEngine(store, calc)

	if _, err := engine.Recalculate(context.Background(), custom.ID); !errors.Is(err, ErrCustomPriceSet) {
		t.Errorf("Recalculate(custom) = %v, want ErrCustomPriceSet", err)
	}
	if _, err := engine.Recalculate(context.Background(), unlinked.ID); !errors.Is(err, ErrQuoteNotLinked) {
		t.Errorf("Recalculate(unlinked) = %v, want ErrQuoteNotLinked", err)
	}
}

func TestRecalculateStaleResultDiscarded(t *testing.T) {
	quote := linkedQuote(SyncStatusOutOfSync)
	store := newFakeStore(quote)
	engine := NewEngine(store, nil)

	// The calculator simulates an agent editing parameters mid-calculation.
	engine.calc = &fakeCalculator{fn: func(uuid.UUID, int, int, time.Time) (*packages.Resolution, error) {
		current, _ := store.GetByID(context.Background(), quote.ID)
		current.Nights = 7
		engine.NoteParamsChanged(current)
		_ = store.Update(context.Background(), current)
		return fixedResolution(450), nil
	}}

	updated, err := engine.Recalculate(context.Background(), quote.ID)
	if err != nil {
		t.Fatalf("Recalculate() error = %v", err)
	}
	if updated.SyncStatus != SyncStatusOutOfSync {
		t.Errorf("status = %s, want out-of-sync (stale result discarded)", updated.SyncStatus)
	}
	// The stale 450 must not have been written
	if updated.Selection.CalculatedPrice != 400 {
		t.Errorf("calculated price = %v, want untouched 400", updated.Selection.CalculatedPrice)
	}
}

func TestRecalculateInFlightIsNoOp(t *testing.T) {
	quote := linkedQuote(SyncStatusOutOfSync)
	store := newFakeStore(quote)

	started := make(chan struct{})
	release := make(chan struct{})
	calls := 0
	var callsMu sync.Mutex

	engine := NewEngine(store, nil)
	engine.calc = &fakeCalculator{fn: func(uuid.UUID, int, int, time.Time) (*packages.Resolution, error) {
		callsMu.Lock()
		calls++
		callsMu.Unlock()
		close(started)
		<-release
		return fixedResolution(450), nil
	}}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := engine.Recalculate(context.Background(), quote.ID); err != nil {
			t.Errorf("first Recalculate() error = %v", err)
		}
	}()

	<-started

	// Second call while the first is in flight returns without recalculating
	q, err := engine.Recalculate(context.Background(), quote.ID)
	if err != nil {
		t.Fatalf("second Recalculate() error = %v", err)
	}
	if q.SyncStatus != SyncStatusCalculating {
		t.Errorf("status during in-flight call = %s, want calculating", q.SyncStatus)
	}

	close(release)
	<-done

	callsMu.Lock()
	defer callsMu.Unlock()
	if calls != 1 {
		t.Errorf("calculator calls = %d, want 1", calls)
	}
}

func TestMarkCustomPrice(t *testing.T) {
	quote := linkedQuote(SyncStatusSynced)
	store := newFakeStore(quote)
	engine := NewEngine(store, &fakeCalculator{})

	if _, err := engine.MarkCustomPrice(context.Background(), quote.ID, -5); !errors.Is(err, ErrNegativePrice) {
		t.Errorf("MarkCustomPrice(-5) = %v, want ErrNegativePrice", err)
	}

	updated, err := engine.MarkCustomPrice(context.Background(), quote.ID, 999)
	if err != nil {
		t.Fatalf("MarkCustomPrice() error = %v", err)
	}
	if updated.SyncStatus != SyncStatusCustom {
		t.Errorf("status = %s, want custom", updated.SyncStatus)
	}
	if updated.CustomPrice == nil || *updated.CustomPrice != 999 {
		t.Errorf("custom price = %v, want 999", updated.CustomPrice)
	}
	// The link and snapshot survive so the override can be reset later
	if updated.Selection == nil {
		t.Error("selection must survive a custom price override")
	}
	if price := updated.DisplayedPrice(); price == nil || *price != 999 {
		t.Errorf("displayed price = %v, want the override", price)
	}
}

func TestResetToCalculated(t *testing.T) {
	quote := linkedQuote(SyncStatusCustom)
	customPrice := 999.0
	quote.CustomPrice = &customPrice
	store := newFakeStore(quote)
	calc := &fakeCalculator{fn: func(uuid.UUID, int, int, time.Time) (*packages.Resolution, error) {
		return fixedResolution(425), nil
	}}
	engine := NewEngine(store, calc)

	updated, err := engine.ResetToCalculated(context.Background(), quote.ID)
	if err != nil {
		t.Fatalf("ResetToCalculated() error = %v", err)
	}
	if updated.SyncStatus != SyncStatusSynced {
		t.Errorf("status = %s, want synced", updated.SyncStatus)
	}
	if updated.CustomPrice != nil {
		t.Errorf("custom price = %v, want cleared", *updated.CustomPrice)
	}
	if updated.Selection.CalculatedPrice != 425 {
		t.Errorf("calculated price = %v, want 425", updated.Selection.CalculatedPrice)
	}
}

func TestResetToCalculatedGuards(t *testing.T) {
	synced := linkedQuote(SyncStatusSynced)
	store := newFakeStore(synced)
	engine := NewEngine(store, &fakeCalculator{})

	if _, err := engine.ResetToCalculated(context.Background(), synced.ID); !errors.Is(err, ErrNotCustomPrice) {
		t.Errorf("ResetToCalculated(synced) = %v, want ErrNotCustomPrice", err)
	}

	unlinked := &Quote{ID: uuid.New(), SyncStatus: SyncStatusCustom}
	store.put(unlinked)
	if _, err := engine.ResetToCalculated(context.Background(), unlinked.ID); !errors.Is(err, ErrQuoteNotLinked) {
		t.Errorf("ResetToCalculated(unlinked) = %v, want ErrQuoteNotLinked", err)
	}
}

func TestRetry(t *testing.T) {
	failed := linkedQuote(SyncStatusError)
	msg := "boom"
	failed.LastSyncError = &msg
	store := newFakeStore(failed)
	calc := &fakeCalculator{fn: func(uuid.UUID, int, int, time.Time) (*packages.Resolution, error) {
		return fixedResolution(475), nil
	}}
	engine := NewEngine(store, calc)

	updated, err := engine.Retry(context.Background(), failed.ID)
	if err != nil {
		t.Fatalf("Retry() error = %v", err)
	}
	if updated.SyncStatus != SyncStatusSynced {
		t.Errorf("status = %s, want synced", updated.SyncStatus)
	}
	if updated.LastSyncError != nil {
		t.Errorf("LastSyncError = %v, want cleared", *updated.LastSyncError)
	}

	synced := linkedQuote(SyncStatusSynced)
	store.put(synced)
	if _, err := engine.Retry(context.Background(), synced.ID); !errors.Is(err, ErrNotInErrorState) {
		t.Errorf("Retry(synced) = %v, want ErrNotInErrorState", err)
	}
}

func TestUnlinkCarriesDisplayedPrice(t *testing.T) {
	quote := linkedQuote(SyncStatusSynced)
	store := newFakeStore(quote)
	engine := NewEngine(store, &fakeCalculator{})

	updated, err := engine.Unlink(context.Background(), quote.ID)
	if err != nil {
		t.Fatalf("Unlink() error = %v", err)
	}
	if updated.Selection != nil {
		t.Error("selection should be dropped on unlink")
	}
	if updated.SyncStatus != SyncStatusCustom {
		t.Errorf("status = %s, want custom", updated.SyncStatus)
	}
	if updated.CustomPrice == nil || *updated.CustomPrice != 400 {
		t.Errorf("custom price = %v, want carried 400", updated.CustomPrice)
	}
}

func TestUnlinkKeepsExistingCustomPrice(t *testing.T) {
	quote := linkedQuote(SyncStatusCustom)
	customPrice := 850.0
	quote.CustomPrice = &customPrice
	store := newFakeStore(quote)
	engine := NewEngine(store, &fakeCalculator{})

	updated, err := engine.Unlink(context.Background(), quote.ID)
	if err != nil {
		t.Fatalf("Unlink() error = %v", err)
	}
	if updated.CustomPrice == nil || *updated.CustomPrice != 850 {
		t.Errorf("custom price = %v, want untouched 850", updated.CustomPrice)
	}

	unlinked := &Quote{ID: uuid.New(), SyncStatus: SyncStatusCustom}
	store.put(unlinked)
	if _, err := engine.Unlink(context.Background(), unlinked.ID); !errors.Is(err, ErrQuoteNotLinked) {
		t.Errorf("Unlink(unlinked) = %v, want ErrQuoteNotLinked", err)
	}
}

func TestMarkOutOfSync(t *testing.T) {
	synced := linkedQuote(SyncStatusSynced)
	custom := linkedQuote(SyncStatusCustom)
	store := newFakeStore(synced, custom)
	engine := NewEngine(store, &fakeCalculator{})

	updated, err := engine.MarkOutOfSync(context.Background(), synced.ID)
	if err != nil {
		t.Fatalf("MarkOutOfSync() error = %v", err)
	}
	if updated.SyncStatus != SyncStatusOutOfSync {
		t.Errorf("status = %s, want out-of-sync", updated.SyncStatus)
	}

	// Custom-priced quotes are left alone
	updated, err = engine.MarkOutOfSync(context.Background(), custom.ID)
	if err != nil {
		t.Fatalf("MarkOutOfSync(custom) error = %v", err)
	}
	if updated.SyncStatus != SyncStatusCustom {
		t.Errorf("custom quote status = %s, want custom", updated.SyncStatus)
	}
}

func TestEngineStateEviction(t *testing.T) {
	quote := linkedQuote(SyncStatusOutOfSync)
	store := newFakeStore(quote)
	calc := &fakeCalculator{fn: func(uuid.UUID, int, int, time.Time) (*packages.Resolution, error) {
		return fixedResolution(450), nil
	}}
	engine := NewEngine(store, calc)

	if _, err := engine.Recalculate(context.Background(), quote.ID); err != nil {
		t.Fatalf("Recalculate() error = %v", err)
	}
	engine.mu.Lock()
	entries := len(engine.states)
	engine.mu.Unlock()
	if entries != 0 {
		t.Errorf("tracked quotes after recalculation = %d, want 0", entries)
	}

	// Invalidations with nothing in flight must not accumulate entries
	engine.NoteParamsChanged(quote)
	if _, err := engine.MarkOutOfSync(context.Background(), quote.ID); err != nil {
		t.Fatalf("MarkOutOfSync() error = %v", err)
	}
	engine.mu.Lock()
	entries = len(engine.states)
	engine.mu.Unlock()
	if entries != 0 {
		t.Errorf("tracked quotes after idle invalidations = %d, want 0", entries)
	}
}

func TestNoteParamsChanged(t *testing.T) {
	engine := NewEngine(newFakeStore(), &fakeCalculator{})

	linked := linkedQuote(SyncStatusSynced)
	engine.NoteParamsChanged(linked)
	if linked.SyncStatus != SyncStatusOutOfSync {
		t.Errorf("linked quote status = %s, want out-of-sync", linked.SyncStatus)
	}

	custom := linkedQuote(SyncStatusCustom)
	engine.NoteParamsChanged(custom)
	if custom.SyncStatus != SyncStatusCustom {
		t.Errorf("custom quote status = %s, want custom", custom.SyncStatus)
	}

	unlinked := &Quote{ID: uuid.New(), SyncStatus: SyncStatusCustom}
	engine.NoteParamsChanged(unlinked)
	if unlinked.SyncStatus != SyncStatusCustom {
		t.Errorf("unlinked quote status = %s, want custom", unlinked.SyncStatus)
	}
}
