package packages

import (
	"errors"
	"testing"
	"time"
)

func resolverPackage() *Package {
	return &Package{
		Version:  3,
		Currency: CurrencyEUR,
		GroupSizeTiers: GroupSizeTiers{
			{Label: "2-3", MinPeople: 2, MaxPeople: 3},
			{Label: "4-6", MinPeople: 4, MaxPeople: 6},
		},
		DurationOptions: DurationOptions{3, 5},
		PricingMatrix: PricingMatrix{
			monthPeriod("June",
				PriceCell{GroupSizeTierIndex: 0, Nights: 3, Price: NumericPrice(300)},
				PriceCell{GroupSizeTierIndex: 0, Nights: 5, Price: NumericPrice(450)},
				PriceCell{GroupSizeTierIndex: 1, Nights: 3, Price: NumericPrice(270)},
			),
			specialPeriod("Festival Week",
				time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC),
				time.Date(2026, 6, 17, 0, 0, 0, 0, time.UTC),
				PriceCell{GroupSizeTierIndex: 0, Nights: 3, Price: NumericPrice(520)},
				PriceCell{GroupSizeTierIndex: 0, Nights: 5, Price: OnRequestPrice()},
			),
		},
	}
}

func TestResolveMonthRate(t *testing.T) {
	pkg := resolverPackage()
	arrival := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)

	res, err := Resolve(pkg, 2, 5, arrival)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Price.Amount() != 450 {
		t.Errorf("price = %v, want 450", res.Price.Amount())
	}
	if res.TierLabel != "2-3" || res.TierIndex != 0 {
		t.Errorf("tier = %s/%d, want 2-3/0", res.TierLabel, res.TierIndex)
	}
	if res.Period != "June" || res.PeriodType != PeriodTypeMonth {
		t.Errorf("period = %s/%s, want June/month", res.Period, res.PeriodType)
	}
	if res.PackageVersion != 3 {
		t.Errorf("package version = %d, want 3", res.PackageVersion)
	}
	if res.Currency != CurrencyEUR {
		t.Errorf("currency = %s, want EUR", res.Currency)
	}
}

func TestResolveSpecialPrecedence(t *testing.T) {
	pkg := resolverPackage()

	// Arrival inside both June and Festival Week: the special wins
	arrival := time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)
	res, err := Resolve(pkg, 2, 3, arrival)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Period != "Festival Week" {
		t.Errorf("period = %s, want Festival Week", res.Period)
	}
	if res.Price.Amount() != 520 {
		t.Errorf("price = %v, want 520", res.Price.Amount())
	}
}

func TestResolveOnRequest(t *testing.T) {
	pkg := resolverPackage()
	arrival := time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)

	res, err := Resolve(pkg, 2, 5, arrival)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if !res.PriceWasOnRequest {
		t.Error("ON_REQUEST cell should resolve with PriceWasOnRequest set")
	}
	if !res.Price.IsOnRequest() {
		t.Error("resolved price should be the ON_REQUEST sentinel")
	}
}

func TestResolveFailures(t *testing.T) {
	pkg := resolverPackage()
	june := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		people  int
		nights  int
		arrival time.Time
		wantErr error
	}{
		{"no tier for headcount", 12, 3, june, ErrNoMatchingTier},
		{"headcount in tier gap", 1, 3, june, ErrNoMatchingTier},
		{"no period for date", 2, 3, time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC), ErrNoMatchingPeriod},
		{"no cell for duration", 4, 5, june, ErrNoPriceForDuration},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(pkg, tt.people, tt.nights, tt.arrival)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Resolve() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveOverlappingSpecialsFirstWins(t *testing.T) {
	pkg := resolverPackage()
	pkg.PricingMatrix = append(pkg.PricingMatrix, specialPeriod("Late Festival",
		time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 20, 0, 0, 0, 0, time.UTC),
		PriceCell{GroupSizeTierIndex: 0, Nights: 3, Price: NumericPrice(999)},
	))

	// 2026-06-16 is inside both specials; the one earlier in the array wins
	res, err := Resolve(pkg, 2, 3, time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if res.Period != "Festival Week" {
		t.Errorf("period = %s, want Festival Week (first special in array order)", res.Period)
	}
}
