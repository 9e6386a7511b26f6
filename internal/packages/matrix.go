package packages

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrPeriodIndexOutOfRange = errors.New("period index out of range")
	ErrTierIndexOutOfRange   = errors.New("tier index out of range")
	ErrInvalidPrice          = errors.New("price must be a non-negative number or ON_REQUEST")
	ErrInvalidPeriod         = errors.New("invalid pricing period")
)

// GroupSizeTier is a headcount bracket with its own price column in the matrix.
type GroupSizeTier struct {
	Label     string `json:"label"`
	MinPeople int    `json:"minPeople"`
	MaxPeople int    `json:"maxPeople"`
}

// Contains reports whether the headcount falls inside the tier's range (inclusive).
func (t GroupSizeTier) Contains(people int) bool {
	return people >= t.MinPeople && people <= t.MaxPeople
}

type PeriodType string

const (
	PeriodTypeMonth   PeriodType = "month"
	PeriodTypeSpecial PeriodType = "special"
)

func (pt PeriodType) IsValid() bool {
	return pt == PeriodTypeMonth || pt == PeriodTypeSpecial
}

// PriceCell prices one tier x nights combination within a period.
// GroupSizeTierIndex points into the owning package's tier array; tiers are
// never copied into cells.
type PriceCell struct {
	GroupSizeTierIndex int   `json:"groupSizeTierIndex"`
	Nights             int   `json:"nights"`
	Price              Price `json:"price"`
}

// PricingPeriod is a calendar month or an explicit date range with its price cells.
// Month periods match their month name in any year; special periods match the
// inclusive [StartDate, EndDate] range.
type PricingPeriod struct {
	Period     string      `json:"period"`
	PeriodType PeriodType  `json:"periodType"`
	StartDate  *time.Time  `json:"startDate,omitempty"`
	EndDate    *time.Time  `json:"endDate,omitempty"`
	Prices     []PriceCell `json:"prices"`
}

// Matches reports whether the period covers the given arrival date.
func (p PricingPeriod) Matches(date time.Time) bool {
	switch p.PeriodType {
	case PeriodTypeMonth:
		return strings.EqualFold(p.Period, date.Month().String())
	case PeriodTypeSpecial:
		if p.StartDate == nil || p.EndDate == nil {
			return false
		}
		d := dateOnly(date)
		return !d.Before(dateOnly(*p.StartDate)) && !d.After(dateOnly(*p.EndDate))
	}
	return false
}

// Cell returns the cell for a tier x nights combination, and whether it exists.
func (p PricingPeriod) Cell(tierIndex, nights int) (PriceCell, bool) {
	for _, cell := range p.Prices {
		if cell.GroupSizeTierIndex == tierIndex && cell.Nights == nights {
			return cell, true
		}
	}
	return PriceCell{}, false
}

// Validate checks the period's own shape (name for months, dates for specials).
func (p PricingPeriod) Validate() error {
	switch p.PeriodType {
	case PeriodTypeMonth:
		if !isMonthName(p.Period) {
			return fmt.Errorf("%w: %q is not a calendar month", ErrInvalidPeriod, p.Period)
		}
	case PeriodTypeSpecial:
		if p.StartDate == nil || p.EndDate == nil {
			return fmt.Errorf("%w: special period %q requires start and end dates", ErrInvalidPeriod, p.Period)
		}
		if dateOnly(*p.EndDate).Before(dateOnly(*p.StartDate)) {
			return fmt.Errorf("%w: special period %q ends before it starts", ErrInvalidPeriod, p.Period)
		}
	default:
		return fmt.Errorf("%w: unknown period type %q", ErrInvalidPeriod, p.PeriodType)
	}
	return nil
}

// PricingMatrix is the ordered list of pricing periods. Order carries no
// meaning for resolution (matching is by date) but is preserved for display.
type PricingMatrix []PricingPeriod

// CompletenessResult reports authoring completeness of a pricing matrix.
type CompletenessResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

// IsComplete checks that every (period, tier, nights) combination has an
// authored cell. ON_REQUEST counts as authored; an absent cell does not.
func (m PricingMatrix) IsComplete(tiers []GroupSizeTier, durationOptions []int) CompletenessResult {
	if len(m) == 0 {
		return CompletenessResult{IsValid: false, Errors: []string{"no pricing periods defined"}}
	}

	var errs []string
	for _, period := range m {
		for tierIndex, tier := range tiers {
			for _, nights := range durationOptions {
				if _, ok := period.Cell(tierIndex, nights); !ok {
					errs = append(errs, fmt.Sprintf("%s: tier %s, %d nights is empty", period.Period, tier.Label, nights))
				}
			}
		}
	}

	return CompletenessResult{IsValid: len(errs) == 0, Errors: errs}
}

// AddPeriod appends a validated period to the matrix.
func (m *PricingMatrix) AddPeriod(period PricingPeriod) error {
	if err := period.Validate(); err != nil {
		return err
	}
	*m = append(*m, period)
	return nil
}

// RemovePeriod removes the period at the given index. Confirmation is the
// caller's concern.
func (m *PricingMatrix) RemovePeriod(index int) error {
	if index < 0 || index >= len(*m) {
		return ErrPeriodIndexOutOfRange
	}
	*m = append((*m)[:index], (*m)[index+1:]...)
	return nil
}

// SetCell writes a price for a tier x nights combination in the given period,
// replacing an existing cell or appending a new one. Invalid prices are
// rejected without mutating the matrix.
func (m PricingMatrix) SetCell(periodIndex, tierIndex, nights int, price Price) error {
	if periodIndex < 0 || periodIndex >= len(m) {
		return ErrPeriodIndexOutOfRange
	}
	if tierIndex < 0 {
		return ErrTierIndexOutOfRange
	}
	if !price.IsValid() {
		return ErrInvalidPrice
	}

	period := &m[periodIndex]
	for i := range period.Prices {
		if period.Prices[i].GroupSizeTierIndex == tierIndex && period.Prices[i].Nights == nights {
			period.Prices[i].Price = price
			return nil
		}
	}
	period.Prices = append(period.Prices, PriceCell{
		GroupSizeTierIndex: tierIndex,
		Nights:             nights,
		Price:              price,
	})
	return nil
}

// ValidateTiers checks tier ranges: min <= max and no overlapping brackets.
// Gaps are permitted; headcounts falling into a gap resolve to NoMatchingTier.
func ValidateTiers(tiers []GroupSizeTier) []string {
	var errs []string
	for i, tier := range tiers {
		if tier.MinPeople > tier.MaxPeople {
			errs = append(errs, fmt.Sprintf("tier %s: min people exceeds max people", tier.Label))
		}
		for j := i + 1; j < len(tiers); j++ {
			other := tiers[j]
			if tier.MinPeople <= other.MaxPeople && other.MinPeople <= tier.MaxPeople {
				errs = append(errs, fmt.Sprintf("tier %s overlaps tier %s", tier.Label, other.Label))
			}
		}
	}
	return errs
}

// ValidatePeriods checks period shapes and rejects overlapping special
// periods, which resolution would otherwise disambiguate by array order.
func (m PricingMatrix) ValidatePeriods() []string {
	var errs []string
	for _, period := range m {
		if err := period.Validate(); err != nil {
			errs = append(errs, err.Error())
		}
	}

	for i, a := range m {
		if a.PeriodType != PeriodTypeSpecial || a.StartDate == nil || a.EndDate == nil {
			continue
		}
		for j := i + 1; j < len(m); j++ {
			b := m[j]
			if b.PeriodType != PeriodTypeSpecial || b.StartDate == nil || b.EndDate == nil {
				continue
			}
			if !dateOnly(*a.StartDate).After(dateOnly(*b.EndDate)) && !dateOnly(*b.StartDate).After(dateOnly(*a.EndDate)) {
				errs = append(errs, fmt.Sprintf("special period %s overlaps special period %s", a.Period, b.Period))
			}
		}
	}
	return errs
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func isMonthName(name string) bool {
	for month := time.January; month <= time.December; month++ {
		if strings.EqualFold(name, month.String()) {
			return true
		}
	}
	return false
}
