package packages

type CreatePackageRequest struct {
	Name                  string          `json:"name" binding:"required,min=3,max=255"`
	Destination           string          `json:"destination" binding:"max=255"`
	Currency              Currency        `json:"currency" binding:"required"`
	GroupSizeTiers        GroupSizeTiers  `json:"group_size_tiers" binding:"required,min=1"`
	DurationOptions       DurationOptions `json:"duration_options" binding:"required,min=1"`
	PricingMatrix         PricingMatrix   `json:"pricing_matrix"`
	Inclusions            StringList      `json:"inclusions"`
	AccommodationExamples StringList      `json:"accommodation_examples"`
}

type UpdatePackageRequest struct {
	Name                  *string          `json:"name" binding:"omitempty,min=3,max=255"`
	Destination           *string          `json:"destination" binding:"omitempty,max=255"`
	Currency              *Currency        `json:"currency"`
	GroupSizeTiers        *GroupSizeTiers  `json:"group_size_tiers"`
	DurationOptions       *DurationOptions `json:"duration_options"`
	PricingMatrix         *PricingMatrix   `json:"pricing_matrix"`
	Inclusions            *StringList      `json:"inclusions"`
	AccommodationExamples *StringList      `json:"accommodation_examples"`
	Status                *string          `json:"status" binding:"omitempty,oneof=active inactive"`
}

type SetCellRequest struct {
	PeriodIndex int    `json:"period_index" binding:"min=0"`
	TierIndex   int    `json:"tier_index" binding:"min=0"`
	Nights      int    `json:"nights" binding:"required,min=1"`
	Input       string `json:"input" binding:"required"`
}

type AddPeriodRequest struct {
	Period     string     `json:"period" binding:"required"`
	PeriodType PeriodType `json:"period_type" binding:"required,oneof=month special"`
	StartDate  *string    `json:"start_date"` // YYYY-MM-DD, required for special periods
	EndDate    *string    `json:"end_date"`
}

type ResolvePriceQuery struct {
	People      int    `form:"people" binding:"required,min=1"`
	Nights      int    `form:"nights" binding:"required,min=1"`
	ArrivalDate string `form:"arrival_date" binding:"required"` // YYYY-MM-DD
}

type PackageListQuery struct {
	Page   int    `form:"page" binding:"omitempty,min=1"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=100"`
	Search string `form:"search"`
	Status string `form:"status" binding:"omitempty,oneof=active inactive deleted"`
}
