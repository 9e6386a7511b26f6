package packages

import "time"

type PackageResponse struct {
	ID                    string          `json:"id"`
	Name                  string          `json:"name"`
	Destination           string          `json:"destination"`
	Version               int             `json:"version"`
	Currency              Currency        `json:"currency"`
	GroupSizeTiers        GroupSizeTiers  `json:"group_size_tiers"`
	DurationOptions       DurationOptions `json:"duration_options"`
	PricingMatrix         PricingMatrix   `json:"pricing_matrix"`
	Inclusions            StringList      `json:"inclusions"`
	AccommodationExamples StringList      `json:"accommodation_examples"`
	Status                Status          `json:"status"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}

type PaginatedPackages struct {
	Packages   []PackageResponse `json:"packages"`
	TotalCount int64             `json:"total_count"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
	TotalPages int               `json:"total_pages"`
}

// ResolvePriceResponse wraps a Resolution with the caller-facing total.
type ResolvePriceResponse struct {
	Resolution Resolution `json:"resolution"`
	People     int        `json:"people"`
	Total      *float64   `json:"total,omitempty"` // absent when the price is ON_REQUEST
}
