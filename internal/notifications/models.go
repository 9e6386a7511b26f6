package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// QuotePriceEventType identifies what happened to a quote's price.
type QuotePriceEventType string

const (
	QuotePriceResolved   QuotePriceEventType = "QUOTE_PRICE_RESOLVED"
	QuotePriceOverridden QuotePriceEventType = "QUOTE_PRICE_OVERRIDDEN"
	QuotePriceReset      QuotePriceEventType = "QUOTE_PRICE_RESET"
	QuoteOutOfSync       QuotePriceEventType = "QUOTE_OUT_OF_SYNC"
	QuoteSyncFailed      QuotePriceEventType = "QUOTE_SYNC_FAILED"
	QuoteUnlinked        QuotePriceEventType = "QUOTE_UNLINKED"
)

// QuotePriceEvent is published whenever a quote's displayed price changes
// state. Downstream consumers (CRM sync, agent dashboards) key off the type.
type QuotePriceEvent struct {
	ID        uuid.UUID           `json:"id"`
	Type      QuotePriceEventType `json:"type"`
	QuoteID   uuid.UUID           `json:"quote_id"`
	PackageID *uuid.UUID          `json:"package_id,omitempty"`

	Price    *float64 `json:"price,omitempty"`
	Currency string   `json:"currency,omitempty"`
	Error    *string  `json:"error,omitempty"`

	OccurredAt time.Time `json:"occurred_at"`
}

// NewQuotePriceEvent builds an event with a fresh ID and timestamp.
func NewQuotePriceEvent(eventType QuotePriceEventType, quoteID uuid.UUID) *QuotePriceEvent {
	return &QuotePriceEvent{
		ID:         uuid.New(),
		Type:       eventType,
		QuoteID:    quoteID,
		OccurredAt: time.Now(),
	}
}

func (e *QuotePriceEvent) WithPackage(packageID uuid.UUID) *QuotePriceEvent {
	e.PackageID = &packageID
	return e
}

func (e *QuotePriceEvent) WithPrice(price float64, currency string) *QuotePriceEvent {
	e.Price = &price
	e.Currency = currency
	return e
}

func (e *QuotePriceEvent) WithError(err error) *QuotePriceEvent {
	msg := err.Error()
	e.Error = &msg
	return e
}

// GetPartitionKey routes all events for one quote to the same partition so
// consumers see them in order.
func (e *QuotePriceEvent) GetPartitionKey() string {
	return e.QuoteID.String()
}

func (e *QuotePriceEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}
