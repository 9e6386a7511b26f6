package quotes

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"superpack/internal/packages"
)

// MaxSelectedEvents caps the number of add-on events per quote.
const MaxSelectedEvents = 20

// CurrencyMismatchWarning is surfaced whenever the events total excludes lines.
const CurrencyMismatchWarning = "some events use different currencies and are excluded from total"

var (
	ErrTooManyEvents     = fmt.Errorf("a quote can hold at most %d events", MaxSelectedEvents)
	ErrEventAlreadyAdded = errors.New("event is already on the quote")
	ErrEventNotOnQuote   = errors.New("event is not on the quote")
	ErrInvalidEventID    = errors.New("event id is required")
	ErrInvalidEventPrice = errors.New("event price must be non-negative")
)

// SelectedEvent is an add-on event attached to a quote, priced per booking.
type SelectedEvent struct {
	EventID       uuid.UUID         `json:"eventId"`
	EventName     string            `json:"eventName"`
	EventPrice    float64           `json:"eventPrice"`
	EventCurrency packages.Currency `json:"eventCurrency"`
	AddedAt       time.Time         `json:"addedAt"`
}

type SelectedEvents []SelectedEvent

// EventLine is one event as it appears in a total breakdown.
type EventLine struct {
	EventID          uuid.UUID         `json:"eventId"`
	EventName        string            `json:"eventName"`
	EventPrice       float64           `json:"eventPrice"`
	EventCurrency    packages.Currency `json:"eventCurrency"`
	CurrencyMismatch bool              `json:"currencyMismatch"`
}

// EventsTotalResult sums event prices in the quote currency. Events priced in
// another currency are listed but excluded from the total; there is no FX here.
type EventsTotalResult struct {
	Total    float64           `json:"total"`
	Currency packages.Currency `json:"currency"`
	Lines    []EventLine       `json:"lines"`
	Warning  string            `json:"warning,omitempty"`
}

// Add appends an event, enforcing the cap and uniqueness by event ID.
func (s SelectedEvents) Add(event SelectedEvent) (SelectedEvents, error) {
	if len(s) >= MaxSelectedEvents {
		return s, ErrTooManyEvents
	}
	if event.EventID == uuid.Nil {
		return s, ErrInvalidEventID
	}
	if event.EventPrice < 0 {
		return s, ErrInvalidEventPrice
	}
	for i := range s {
		if s[i].EventID == event.EventID {
			return s, ErrEventAlreadyAdded
		}
	}
	if event.AddedAt.IsZero() {
		event.AddedAt = time.Now()
	}
	return append(s, event), nil
}

// Remove drops the event with the given ID.
func (s SelectedEvents) Remove(eventID uuid.UUID) (SelectedEvents, error) {
	for i := range s {
		if s[i].EventID == eventID {
			return append(s[:i:i], s[i+1:]...), nil
		}
	}
	return s, ErrEventNotOnQuote
}

// Total sums event prices in the quote currency.
func (s SelectedEvents) Total(quoteCurrency packages.Currency) EventsTotalResult {
	result := EventsTotalResult{
		Currency: quoteCurrency,
		Lines:    make([]EventLine, 0, len(s)),
	}
	excluded := false
	for i := range s {
		line := EventLine{
			EventID:       s[i].EventID,
			EventName:     s[i].EventName,
			EventPrice:    s[i].EventPrice,
			EventCurrency: s[i].EventCurrency,
		}
		if s[i].EventCurrency == quoteCurrency {
			result.Total += s[i].EventPrice
		} else {
			line.CurrencyMismatch = true
			excluded = true
		}
		result.Lines = append(result.Lines, line)
	}
	if excluded {
		result.Warning = CurrencyMismatchWarning
	}
	return result
}
