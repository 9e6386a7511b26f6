package catalog

import (
	"time"

	"github.com/google/uuid"

	"superpack/internal/packages"
)

// Event is a bookable add-on (excursion, dinner, transfer) that agents can
// attach to quotes. Priced per booking in its own currency.
type Event struct {
	ID          uuid.UUID         `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name        string            `gorm:"not null;size:255" json:"name"`
	Description string            `gorm:"type:text" json:"description"`
	Destination string            `gorm:"size:255;index" json:"destination"`
	Price       float64           `gorm:"not null" json:"price"`
	Currency    packages.Currency `gorm:"type:varchar(3);not null;default:'EUR'" json:"currency"`
	IsActive    bool              `gorm:"not null;default:true" json:"is_active"`

	CreatedBy uuid.UUID `gorm:"type:uuid;not null" json:"created_by"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for Event
func (Event) TableName() string {
	return "catalog_events"
}

// ToResponse converts an Event to its API representation.
func (e *Event) ToResponse() EventResponse {
	return EventResponse{
		ID:          e.ID.String(),
		Name:        e.Name,
		Description: e.Description,
		Destination: e.Destination,
		Price:       e.Price,
		Currency:    e.Currency,
		IsActive:    e.IsActive,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
