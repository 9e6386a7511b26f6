package quotes

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"superpack/internal/packages"
	"superpack/pkg/logger"
)

var (
	ErrQuoteNotLinked  = errors.New("quote is not linked to a package")
	ErrCustomPriceSet  = errors.New("quote has a custom price; reset it before recalculating")
	ErrNotCustomPrice  = errors.New("quote does not have a custom price")
	ErrNotInErrorState = errors.New("quote is not in an error state")
	ErrNegativePrice   = errors.New("custom price must be non-negative")
)

// PriceCalculator resolves a per-person price for a package. The packages
// service satisfies this; tests substitute fakes.
type PriceCalculator interface {
	CalculatePrice(ctx context.Context, packageID uuid.UUID, people, nights int, arrival time.Time) (*packages.Resolution, error)
}

// QuoteStore is the slice of the repository the engine needs.
type QuoteStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Quote, error)
	Update(ctx context.Context, quote *Quote) error
}

// Engine drives the quote price sync state machine. It serializes
// recalculations per quote and discards calculator responses that were
// overtaken by a parameter change while the calculation ran.
type Engine struct {
	store QuoteStore
	calc  PriceCalculator

	mu     sync.Mutex
	states map[uuid.UUID]*quoteState
}

type quoteState struct {
	// generation counts parameter changes; a calculation started under an
	// older generation is stale and its result is discarded.
	generation uint64
	inFlight   bool
}

func NewEngine(store QuoteStore, calc PriceCalculator) *Engine {
	return &Engine{
		store:  store,
		calc:   calc,
		states: make(map[uuid.UUID]*quoteState),
	}
}

func (e *Engine) state(id uuid.UUID) *quoteState {
	st, ok := e.states[id]
	if !ok {
		st = &quoteState{}
		e.states[id] = st
	}
	return st
}

// invalidate bumps the generation of an in-flight calculation, if any. With
// nothing in flight there is nothing to invalidate and no entry is created,
// so the states map only ever holds quotes mid-calculation.
func (e *Engine) invalidate(id uuid.UUID) {
	e.mu.Lock()
	if st, ok := e.states[id]; ok {
		st.generation++
	}
	e.mu.Unlock()
}

// Recalculate resolves the quote's price against its linked package and
// stores the result. Calling it while a recalculation is already in flight
// is a no-op that returns the current quote.
func (e *Engine) Recalculate(ctx context.Context, quoteID uuid.UUID) (*Quote, error) {
	e.mu.Lock()
	st := e.state(quoteID)
	if st.inFlight {
		e.mu.Unlock()
		return e.store.GetByID(ctx, quoteID)
	}
	st.inFlight = true
	startGen := st.generation
	e.mu.Unlock()

	defer func() {
		e.mu.Lock()
		st.inFlight = false
		delete(e.states, quoteID)
		e.mu.Unlock()
	}()

	quote, err := e.store.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.Selection == nil {
		return nil, ErrQuoteNotLinked
	}
	if quote.SyncStatus == SyncStatusCustom {
		return nil, ErrCustomPriceSet
	}

	quote.SyncStatus = SyncStatusCalculating
	if err := e.store.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to mark quote calculating: %w", err)
	}

	resolution, calcErr := e.calc.CalculatePrice(ctx,
		quote.Selection.PackageID, quote.NumberOfPeople, quote.Nights, quote.ArrivalDate)

	// Reload: parameters may have been edited while the calculator ran.
	quote, err = e.store.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	stale := st.generation != startGen
	e.mu.Unlock()

	if stale {
		// The response answers a question nobody is asking anymore.
		logger.QuoteRecalcDiscarded(quoteID.String())
		if quote.SyncStatus == SyncStatusCalculating {
			quote.SyncStatus = SyncStatusOutOfSync
			if err := e.store.Update(ctx, quote); err != nil {
				return nil, err
			}
		}
		return quote, nil
	}

	if calcErr != nil {
		// Previous selection and price stay untouched so the agent still
		// has something to show the customer.
		msg := calcErr.Error()
		quote.SyncStatus = SyncStatusError
		quote.LastSyncError = &msg
		logger.QuoteRecalcFailed(quoteID.String(), calcErr)
		if err := e.store.Update(ctx, quote); err != nil {
			return nil, err
		}
		return quote, nil
	}

	quote.Selection = &LinkedPackageSelection{
		PackageID:         quote.Selection.PackageID,
		PackageVersion:    resolution.PackageVersion,
		SelectedTier:      TierRef{TierIndex: resolution.TierIndex, TierLabel: resolution.TierLabel},
		SelectedNights:    quote.Nights,
		SelectedPeriod:    resolution.Period,
		CalculatedPrice:   resolution.Price.Amount(),
		PriceWasOnRequest: resolution.PriceWasOnRequest,
		NumberOfPeople:    quote.NumberOfPeople,
		ArrivalDate:       quote.ArrivalDate,
		Currency:          resolution.Currency,
	}
	quote.SyncStatus = SyncStatusSynced
	quote.LastSyncError = nil

	if err := e.store.Update(ctx, quote); err != nil {
		return nil, fmt.Errorf("failed to store recalculated price: %w", err)
	}
	logger.QuotePriceResolved(quoteID.String(), resolution.Price.String(), string(resolution.Currency))
	return quote, nil
}

// NoteParamsChanged must be called after any edit to people, nights, arrival
// date or currency. It invalidates in-flight calculations and flags the
// stored price as out of date. Custom-priced and unlinked quotes are
// unaffected.
func (e *Engine) NoteParamsChanged(quote *Quote) {
	e.invalidate(quote.ID)

	if quote.Selection == nil || quote.SyncStatus == SyncStatusCustom {
		return
	}
	quote.SyncStatus = SyncStatusOutOfSync
}

// MarkCustomPrice overrides the displayed price by hand. The package link and
// its last calculated snapshot are kept so the override can be reset later.
func (e *Engine) MarkCustomPrice(ctx context.Context, quoteID uuid.UUID, price float64) (*Quote, error) {
	if price < 0 {
		return nil, ErrNegativePrice
	}

	e.invalidate(quoteID)

	quote, err := e.store.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}

	quote.CustomPrice = &price
	quote.SyncStatus = SyncStatusCustom
	quote.LastSyncError = nil

	if err := e.store.Update(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

// ResetToCalculated drops a custom price and recalculates from the linked
// package. Only valid from the custom state.
func (e *Engine) ResetToCalculated(ctx context.Context, quoteID uuid.UUID) (*Quote, error) {
	quote, err := e.store.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if !quote.SyncStatus.CanReset() {
		return nil, ErrNotCustomPrice
	}
	if quote.Selection == nil {
		return nil, ErrQuoteNotLinked
	}

	quote.CustomPrice = nil
	quote.SyncStatus = SyncStatusOutOfSync
	if err := e.store.Update(ctx, quote); err != nil {
		return nil, err
	}
	return e.Recalculate(ctx, quoteID)
}

// Retry re-runs a failed recalculation. Only valid from the error state.
func (e *Engine) Retry(ctx context.Context, quoteID uuid.UUID) (*Quote, error) {
	quote, err := e.store.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if !quote.SyncStatus.CanRetry() {
		return nil, ErrNotInErrorState
	}

	quote.SyncStatus = SyncStatusOutOfSync
	if err := e.store.Update(ctx, quote); err != nil {
		return nil, err
	}
	return e.Recalculate(ctx, quoteID)
}

// Unlink detaches the quote from its package. The last displayed price is
// carried over as a custom price so the quote does not suddenly lose it.
func (e *Engine) Unlink(ctx context.Context, quoteID uuid.UUID) (*Quote, error) {
	e.invalidate(quoteID)

	quote, err := e.store.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.Selection == nil {
		return nil, ErrQuoteNotLinked
	}

	if quote.CustomPrice == nil {
		if price := quote.DisplayedPrice(); price != nil {
			carried := *price
			quote.CustomPrice = &carried
		}
	}
	quote.Selection = nil
	quote.SyncStatus = SyncStatusCustom
	quote.LastSyncError = nil

	if err := e.store.Update(ctx, quote); err != nil {
		return nil, err
	}
	return quote, nil
}

// MarkOutOfSync flags the quote without recalculating. Used when the linked
// package's pricing changed underneath it.
func (e *Engine) MarkOutOfSync(ctx context.Context, quoteID uuid.UUID) (*Quote, error) {
	e.invalidate(quoteID)

	quote, err := e.store.GetByID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if quote.Selection == nil || quote.SyncStatus == SyncStatusCustom {
		return quote, nil
	}

	quote.SyncStatus = SyncStatusOutOfSync
	if err := e.store.Update(ctx, quote); err != nil {
		return nil, err
	}
	logger.QuoteOutOfSync(quoteID.String(), quote.Selection.PackageID.String())
	return quote, nil
}
