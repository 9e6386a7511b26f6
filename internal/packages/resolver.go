package packages

import (
	"errors"
	"time"
)

// Resolution failure kinds. Callers usually show a generic "no pricing
// available" message but keep the kind for diagnostics.
var (
	ErrNoMatchingTier     = errors.New("no tier matches the group size")
	ErrNoMatchingPeriod   = errors.New("no pricing period matches the arrival date")
	ErrNoPriceForDuration = errors.New("no price for the requested duration")
)

// Resolution is the outcome of a successful price lookup. It carries the
// matched tier and period so callers can render a breakdown without
// re-deriving them. Price is per person; totals are the caller's concern.
type Resolution struct {
	PackageVersion    int        `json:"packageVersion"`
	Price             Price      `json:"price"`
	PriceWasOnRequest bool       `json:"priceWasOnRequest"`
	TierIndex         int        `json:"tierIndex"`
	TierLabel         string     `json:"tierLabel"`
	Period            string     `json:"period"`
	PeriodType        PeriodType `json:"periodType"`
	Currency          Currency   `json:"currency"`
}

// Resolve maps (package, people, nights, arrival date) to a price. It is a
// pure function: no I/O, safe to call concurrently for different quotes.
func Resolve(pkg *Package, peopleCount, nights int, arrivalDate time.Time) (*Resolution, error) {
	tierIndex, ok := matchTier(pkg.GroupSizeTiers, peopleCount)
	if !ok {
		return nil, ErrNoMatchingTier
	}

	period, ok := matchPeriod(pkg.PricingMatrix, arrivalDate)
	if !ok {
		return nil, ErrNoMatchingPeriod
	}

	cell, ok := period.Cell(tierIndex, nights)
	if !ok {
		return nil, ErrNoPriceForDuration
	}

	return &Resolution{
		PackageVersion:    pkg.Version,
		Price:             cell.Price,
		PriceWasOnRequest: cell.Price.IsOnRequest(),
		TierIndex:         tierIndex,
		TierLabel:         pkg.GroupSizeTiers[tierIndex].Label,
		Period:            period.Period,
		PeriodType:        period.PeriodType,
		Currency:          pkg.Currency,
	}, nil
}

// matchTier returns the first tier in array order whose range contains the
// headcount. Overlapping tiers are an authoring mistake caught by
// ValidateTiers; here the first match simply wins.
func matchTier(tiers []GroupSizeTier, peopleCount int) (int, bool) {
	for i, tier := range tiers {
		if tier.Contains(peopleCount) {
			return i, true
		}
	}
	return 0, false
}

// matchPeriod picks the period covering the arrival date. Special periods are
// negotiated exceptions and take precedence over the monthly default rate;
// among overlapping specials the first in array order wins.
func matchPeriod(matrix PricingMatrix, date time.Time) (PricingPeriod, bool) {
	var firstMonth *PricingPeriod
	for i := range matrix {
		period := matrix[i]
		if !period.Matches(date) {
			continue
		}
		if period.PeriodType == PeriodTypeSpecial {
			return period, true
		}
		if firstMonth == nil {
			firstMonth = &matrix[i]
		}
	}
	if firstMonth != nil {
		return *firstMonth, true
	}
	return PricingPeriod{}, false
}
