package quotes

import (
	"time"

	"github.com/google/uuid"

	"superpack/internal/packages"
)

// TierRef records which tier matched during resolution.
type TierRef struct {
	TierIndex int    `json:"tierIndex"`
	TierLabel string `json:"tierLabel"`
}

// LinkedPackageSelection is the snapshot a quote keeps of its linked package
// at the moment of the last successful calculation.
type LinkedPackageSelection struct {
	PackageID         uuid.UUID         `json:"packageId"`
	PackageVersion    int               `json:"packageVersion"`
	SelectedTier      TierRef           `json:"selectedTier"`
	SelectedNights    int               `json:"selectedNights"`
	SelectedPeriod    string            `json:"selectedPeriod"`
	CalculatedPrice   float64           `json:"calculatedPrice"`
	PriceWasOnRequest bool              `json:"priceWasOnRequest"`
	NumberOfPeople    int               `json:"numberOfPeople"`
	ArrivalDate       time.Time         `json:"arrivalDate"`
	Currency          packages.Currency `json:"currency"`
}

// Quote is a travel quote. It may be linked to a super package, in which
// case its price tracks the package matrix, or carry a hand-set custom price.
type Quote struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Reference     string    `gorm:"not null;size:50;uniqueIndex" json:"reference"`
	CustomerName  string    `gorm:"not null;size:255" json:"customer_name"`
	CustomerEmail string    `gorm:"size:255" json:"customer_email"`

	// Pricing parameters
	NumberOfPeople int               `gorm:"not null" json:"number_of_people"`
	Nights         int               `gorm:"not null" json:"nights"`
	ArrivalDate    time.Time         `gorm:"not null" json:"arrival_date"`
	Currency       packages.Currency `gorm:"type:varchar(3);not null;default:'EUR'" json:"currency"`

	// Package linkage and price state
	Selection     *LinkedPackageSelection `gorm:"type:jsonb;serializer:json" json:"selection,omitempty"`
	SyncStatus    SyncStatus              `gorm:"type:varchar(20);not null;default:'custom'" json:"sync_status"`
	CustomPrice   *float64                `json:"custom_price,omitempty"`
	LastSyncError *string                 `gorm:"size:1024" json:"last_sync_error,omitempty"`

	SelectedEvents SelectedEvents `gorm:"type:jsonb;serializer:json" json:"selected_events"`

	CreatedBy uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid" json:"updated_by,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for Quote
func (Quote) TableName() string {
	return "quotes"
}

// IsLinked reports whether the quote references a package.
func (q *Quote) IsLinked() bool {
	return q.Selection != nil
}

// DisplayedPrice returns the per-person price the quote currently shows.
// Custom prices win over calculated ones; nil means no price is known yet.
func (q *Quote) DisplayedPrice() *float64 {
	if q.SyncStatus == SyncStatusCustom && q.CustomPrice != nil {
		return q.CustomPrice
	}
	if q.Selection != nil && !q.Selection.PriceWasOnRequest {
		price := q.Selection.CalculatedPrice
		return &price
	}
	return q.CustomPrice
}

// ToResponse converts a Quote to its API representation.
func (q *Quote) ToResponse() QuoteResponse {
	resp := QuoteResponse{
		ID:             q.ID.String(),
		Reference:      q.Reference,
		CustomerName:   q.CustomerName,
		CustomerEmail:  q.CustomerEmail,
		NumberOfPeople: q.NumberOfPeople,
		Nights:         q.Nights,
		ArrivalDate:    q.ArrivalDate,
		Currency:       q.Currency,
		Selection:      q.Selection,
		SyncStatus:     q.SyncStatus,
		CustomPrice:    q.CustomPrice,
		LastSyncError:  q.LastSyncError,
		DisplayedPrice: q.DisplayedPrice(),
		SelectedEvents: q.SelectedEvents,
		CreatedAt:      q.CreatedAt,
		UpdatedAt:      q.UpdatedAt,
	}
	total := q.SelectedEvents.Total(q.Currency)
	resp.EventsTotal = &total
	return resp
}
