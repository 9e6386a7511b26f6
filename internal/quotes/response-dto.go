package quotes

import (
	"time"

	"superpack/internal/packages"
)

type QuoteResponse struct {
	ID             string                  `json:"id"`
	Reference      string                  `json:"reference"`
	CustomerName   string                  `json:"customer_name"`
	CustomerEmail  string                  `json:"customer_email,omitempty"`
	NumberOfPeople int                     `json:"number_of_people"`
	Nights         int                     `json:"nights"`
	ArrivalDate    time.Time               `json:"arrival_date"`
	Currency       packages.Currency       `json:"currency"`
	Selection      *LinkedPackageSelection `json:"selection,omitempty"`
	SyncStatus     SyncStatus              `json:"sync_status"`
	CustomPrice    *float64                `json:"custom_price,omitempty"`
	LastSyncError  *string                 `json:"last_sync_error,omitempty"`
	DisplayedPrice *float64                `json:"displayed_price,omitempty"`
	SelectedEvents SelectedEvents          `json:"selected_events"`
	EventsTotal    *EventsTotalResult      `json:"events_total,omitempty"`
	CreatedAt      time.Time               `json:"created_at"`
	UpdatedAt      time.Time               `json:"updated_at"`
}

type PaginatedQuotes struct {
	Quotes     []QuoteResponse `json:"quotes"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
