package quotes

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"superpack/internal/packages"
)

func testEvent(name string, price float64, currency packages.Currency) SelectedEvent {
	return SelectedEvent{
		EventID:       uuid.New(),
		EventName:     name,
		EventPrice:    price,
		EventCurrency: currency,
	}
}

func TestSelectedEventsAdd(t *testing.T) {
	var events SelectedEvents

	event := testEvent("Cooking Class", 85, packages.CurrencyEUR)
	events, err := events.Add(event)
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("len = %d, want 1", len(events))
	}
	if events[0].AddedAt.IsZero() {
		t.Error("Add() should stamp AddedAt")
	}

	// Same event twice is rejected
	if _, err := events.Add(event); !errors.Is(err, ErrEventAlreadyAdded) {
		t.Errorf("duplicate Add() = %v, want ErrEventAlreadyAdded", err)
	}

	// Negative price is rejected
	if _, err := events.Add(testEvent("Broken", -1, packages.CurrencyEUR)); !errors.Is(err, ErrInvalidEventPrice) {
		t.Errorf("negative price Add() = %v, want ErrInvalidEventPrice", err)
	}

	// Zero-value event ID is rejected
	if _, err := events.Add(SelectedEvent{EventName: "No ID", EventPrice: 10, EventCurrency: packages.CurrencyEUR}); !errors.Is(err, ErrInvalidEventID) {
		t.Errorf("nil id Add() = %v, want ErrInvalidEventID", err)
	}
}

func TestSelectedEventsAddCap(t *testing.T) {
	var events SelectedEvents
	var err error
	for i := 0; i < MaxSelectedEvents; i++ {
		events, err = events.Add(testEvent("Tour", 10, packages.CurrencyEUR))
		if err != nil {
			t.Fatalf("Add() #%d error = %v", i, err)
		}
	}

	if _, err := events.Add(testEvent("One Too Many", 10, packages.CurrencyEUR)); !errors.Is(err, ErrTooManyEvents) {
		t.Errorf("Add() over cap = %v, want ErrTooManyEvents", err)
	}
}

func TestSelectedEventsRemove(t *testing.T) {
	first := testEvent("First", 10, packages.CurrencyEUR)
	second := testEvent("Second", 20, packages.CurrencyEUR)
	events := SelectedEvents{first, second}

	events, err := events.Remove(first.EventID)
	if err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if len(events) != 1 || events[0].EventID != second.EventID {
		t.Errorf("unexpected remaining events: %+v", events)
	}

	if _, err := events.Remove(uuid.New()); !errors.Is(err, ErrEventNotOnQuote) {
		t.Errorf("Remove() unknown event = %v, want ErrEventNotOnQuote", err)
	}
}

func TestSelectedEventsTotal(t *testing.T) {
	events := SelectedEvents{
		{EventID: uuid.New(), EventName: "Gorge Hike", EventPrice: 65, EventCurrency: packages.CurrencyEUR, AddedAt: time.Now()},
		{EventID: uuid.New(), EventName: "Sunset Cruise", EventPrice: 110, EventCurrency: packages.CurrencyEUR, AddedAt: time.Now()},
		{EventID: uuid.New(), EventName: "Snowmobiling", EventPrice: 260, EventCurrency: packages.CurrencyUSD, AddedAt: time.Now()},
	}

	result := events.Total(packages.CurrencyEUR)

	if result.Total != 175 {
		t.Errorf("Total = %v, want 175 (USD line excluded)", result.Total)
	}
	if result.Currency != packages.CurrencyEUR {
		t.Errorf("Currency = %s, want EUR", result.Currency)
	}
	if result.Warning != CurrencyMismatchWarning {
		t.Errorf("Warning = %q, want %q", result.Warning, CurrencyMismatchWarning)
	}
	if len(result.Lines) != 3 {
		t.Fatalf("len(Lines) = %d, want 3 (mismatched lines still listed)", len(result.Lines))
	}

	mismatched := 0
	for _, line := range result.Lines {
		if line.CurrencyMismatch {
			mismatched++
			if line.EventCurrency != packages.CurrencyUSD {
				t.Errorf("wrong line flagged: %+v", line)
			}
		}
	}
	if mismatched != 1 {
		t.Errorf("mismatched lines = %d, want 1", mismatched)
	}
}

func TestSelectedEventsTotalAllSameCurrency(t *testing.T) {
	events := SelectedEvents{
		{EventID: uuid.New(), EventPrice: 30, EventCurrency: packages.CurrencyGBP},
		{EventID: uuid.New(), EventPrice: 45, EventCurrency: packages.CurrencyGBP},
	}

	result := events.Total(packages.CurrencyGBP)
	if result.Total != 75 {
		t.Errorf("Total = %v, want 75", result.Total)
	}
	if result.Warning != "" {
		t.Errorf("Warning = %q, want empty", result.Warning)
	}
}

func TestSelectedEventsTotalEmpty(t *testing.T) {
	var events SelectedEvents
	result := events.Total(packages.CurrencyEUR)
	if result.Total != 0 || result.Warning != "" || len(result.Lines) != 0 {
		t.Errorf("empty events total = %+v, want zero value", result)
	}
}
