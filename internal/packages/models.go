package packages

import (
	"time"

	"github.com/google/uuid"
)

// GroupSizeTiers, DurationOptions and StringList are stored as JSONB columns.
type GroupSizeTiers []GroupSizeTier
type DurationOptions []int
type StringList []string

// Package defines a destination super package: pre-negotiated pricing tiers,
// duration options and the period-based pricing matrix quotes resolve against.
type Package struct {
	ID                    uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name                  string          `gorm:"not null;size:255" json:"name"`
	Destination           string          `gorm:"size:255" json:"destination"`
	Version               int             `gorm:"not null;default:1" json:"version"`
	Currency              Currency        `gorm:"type:varchar(3);not null;default:'EUR'" json:"currency"`
	GroupSizeTiers        GroupSizeTiers  `gorm:"type:jsonb;serializer:json" json:"group_size_tiers"`
	DurationOptions       DurationOptions `gorm:"type:jsonb;serializer:json" json:"duration_options"`
	PricingMatrix         PricingMatrix   `gorm:"type:jsonb;serializer:json" json:"pricing_matrix"`
	Inclusions            StringList      `gorm:"type:jsonb;serializer:json" json:"inclusions"`
	AccommodationExamples StringList      `gorm:"type:jsonb;serializer:json" json:"accommodation_examples"`
	Status                Status          `gorm:"type:varchar(20);default:'inactive'" json:"status"`

	CreatedBy uuid.UUID  `gorm:"type:uuid;not null" json:"created_by"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid" json:"updated_by,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for Package
func (Package) TableName() string {
	return "super_packages"
}

// Helper methods for package management

func (p *Package) IsActive() bool {
	return p.Status == StatusActive
}

func (p *Package) IsDeleted() bool {
	return p.Status == StatusDeleted
}

// CanBeLinked checks whether new quotes may link this package.
func (p *Package) CanBeLinked() bool {
	return p.Status.CanBeLinked()
}

// Delete freezes the package. Deleted packages stay resolvable for quotes
// that already reference them but are excluded from new linking and edits.
func (p *Package) Delete() {
	p.Status = StatusDeleted
	p.UpdatedAt = time.Now()
}

// ToResponse converts a Package to its API representation.
func (p *Package) ToResponse() PackageResponse {
	return PackageResponse{
		ID:                    p.ID.String(),
		Name:                  p.Name,
		Destination:           p.Destination,
		Version:               p.Version,
		Currency:              p.Currency,
		GroupSizeTiers:        p.GroupSizeTiers,
		DurationOptions:       p.DurationOptions,
		PricingMatrix:         p.PricingMatrix,
		Inclusions:            p.Inclusions,
		AccommodationExamples: p.AccommodationExamples,
		Status:                p.Status,
		CreatedAt:             p.CreatedAt,
		UpdatedAt:             p.UpdatedAt,
	}
}
