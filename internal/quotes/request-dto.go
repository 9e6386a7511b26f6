package quotes

import "github.com/google/uuid"

type CreateQuoteRequest struct {
	CustomerName   string   `json:"customer_name" binding:"required,min=2,max=255"`
	CustomerEmail  string   `json:"customer_email" binding:"omitempty,email"`
	NumberOfPeople int      `json:"number_of_people" binding:"required,min=1"`
	Nights         int      `json:"nights" binding:"required,min=1"`
	ArrivalDate    string   `json:"arrival_date" binding:"required"` // YYYY-MM-DD
	Currency       string   `json:"currency" binding:"required,len=3"`
	CustomPrice    *float64 `json:"custom_price" binding:"omitempty,min=0"`
}

type UpdateQuoteParamsRequest struct {
	CustomerName   *string `json:"customer_name" binding:"omitempty,min=2,max=255"`
	CustomerEmail  *string `json:"customer_email" binding:"omitempty,email"`
	NumberOfPeople *int    `json:"number_of_people" binding:"omitempty,min=1"`
	Nights         *int    `json:"nights" binding:"omitempty,min=1"`
	ArrivalDate    *string `json:"arrival_date"` // YYYY-MM-DD
	Currency       *string `json:"currency" binding:"omitempty,len=3"`
}

type LinkPackageRequest struct {
	PackageID uuid.UUID `json:"package_id" binding:"required"`
}

type CustomPriceRequest struct {
	Price float64 `json:"price" binding:"min=0"`
}

type AddEventRequest struct {
	EventID uuid.UUID `json:"event_id" binding:"required"`
}

type QuoteListQuery struct {
	Page       int    `form:"page" binding:"omitempty,min=1"`
	Limit      int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search     string `form:"search"`
	SyncStatus string `form:"sync_status" binding:"omitempty,oneof=synced calculating custom out-of-sync error"`
}
