package catalog

import (
	"time"

	"superpack/internal/packages"
)

type CreateEventRequest struct {
	Name        string            `json:"name" binding:"required,min=3,max=255"`
	Description string            `json:"description"`
	Destination string            `json:"destination" binding:"max=255"`
	Price       float64           `json:"price" binding:"min=0"`
	Currency    packages.Currency `json:"currency" binding:"required"`
}

type UpdateEventRequest struct {
	Name        *string            `json:"name" binding:"omitempty,min=3,max=255"`
	Description *string            `json:"description"`
	Destination *string            `json:"destination" binding:"omitempty,max=255"`
	Price       *float64           `json:"price" binding:"omitempty,min=0"`
	Currency    *packages.Currency `json:"currency"`
	IsActive    *bool              `json:"is_active"`
}

type EventListQuery struct {
	Page        int    `form:"page" binding:"omitempty,min=1"`
	Limit       int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Destination string `form:"destination"`
	Search      string `form:"search"`
	ActiveOnly  bool   `form:"active_only"`
}

type EventResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Destination string            `json:"destination,omitempty"`
	Price       float64           `json:"price"`
	Currency    packages.Currency `json:"currency"`
	IsActive    bool              `json:"is_active"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type PaginatedEvents struct {
	Events     []EventResponse `json:"events"`
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	TotalPages int             `json:"total_pages"`
}
