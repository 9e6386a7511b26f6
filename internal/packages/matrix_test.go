package packages

import (
	"errors"
	"testing"
	"time"
)

func testTiers() []GroupSizeTier {
	return []GroupSizeTier{
		{Label: "2-3", MinPeople: 2, MaxPeople: 3},
		{Label: "4-6", MinPeople: 4, MaxPeople: 6},
	}
}

func monthPeriod(month string, cells ...PriceCell) PricingPeriod {
	return PricingPeriod{Period: month, PeriodType: PeriodTypeMonth, Prices: cells}
}

func specialPeriod(name string, start, end time.Time, cells ...PriceCell) PricingPeriod {
	return PricingPeriod{
		Period:     name,
		PeriodType: PeriodTypeSpecial,
		StartDate:  &start,
		EndDate:    &end,
		Prices:     cells,
	}
}

func TestPricingPeriodMatches(t *testing.T) {
	june := monthPeriod("June")
	if !june.Matches(time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)) {
		t.Error("June period should match a June date")
	}
	if !june.Matches(time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("month periods should match their month in any year")
	}
	if june.Matches(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("June period should not match July")
	}

	easter := specialPeriod("Easter",
		time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC))

	if !easter.Matches(time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC)) {
		t.Error("special period should match its start date")
	}
	if !easter.Matches(time.Date(2026, 4, 10, 23, 0, 0, 0, time.UTC)) {
		t.Error("special period end date is inclusive")
	}
	if easter.Matches(time.Date(2026, 4, 11, 0, 0, 0, 0, time.UTC)) {
		t.Error("special period should not match past its end date")
	}
}

func TestPricingPeriodValidate(t *testing.T) {
	start := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		period  PricingPeriod
		wantErr bool
	}{
		{"valid month", monthPeriod("June"), false},
		{"month case insensitive", monthPeriod("june"), false},
		{"not a month", monthPeriod("Junne"), true},
		{"valid special", specialPeriod("Easter", end, start), false},
		{"special without dates", PricingPeriod{Period: "Easter", PeriodType: PeriodTypeSpecial}, true},
		{"special ends before start", specialPeriod("Easter", start, end), true},
		{"unknown type", PricingPeriod{Period: "x", PeriodType: "weekly"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.period.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMatrixSetCell(t *testing.T) {
	matrix := PricingMatrix{monthPeriod("June")}

	if err := matrix.SetCell(0, 0, 7, NumericPrice(500)); err != nil {
		t.Fatalf("SetCell() error = %v", err)
	}
	cell, ok := matrix[0].Cell(0, 7)
	if !ok {
		t.Fatal("cell not found after SetCell")
	}
	if cell.Price.Amount() != 500 {
		t.Errorf("cell price = %v, want 500", cell.Price.Amount())
	}

	// Overwrite instead of appending a duplicate
	if err := matrix.SetCell(0, 0, 7, OnRequestPrice()); err != nil {
		t.Fatalf("SetCell() overwrite error = %v", err)
	}
	if len(matrix[0].Prices) != 1 {
		t.Errorf("expected 1 cell after overwrite, got %d", len(matrix[0].Prices))
	}
	cell, _ = matrix[0].Cell(0, 7)
	if !cell.Price.IsOnRequest() {
		t.Error("overwrite to ON_REQUEST did not stick")
	}

	if err := matrix.SetCell(5, 0, 7, NumericPrice(1)); !errors.Is(err, ErrPeriodIndexOutOfRange) {
		t.Errorf("SetCell() bad period = %v, want ErrPeriodIndexOutOfRange", err)
	}
	if err := matrix.SetCell(0, -1, 7, NumericPrice(1)); !errors.Is(err, ErrTierIndexOutOfRange) {
		t.Errorf("SetCell() bad tier = %v, want ErrTierIndexOutOfRange", err)
	}
}

func TestMatrixAddRemovePeriod(t *testing.T) {
	matrix := PricingMatrix{}

	if err := matrix.AddPeriod(monthPeriod("June")); err != nil {
		t.Fatalf("AddPeriod() error = %v", err)
	}
	if err := matrix.AddPeriod(monthPeriod("Juneish")); err == nil {
		t.Error("AddPeriod() should reject an invalid month name")
	}
	if len(matrix) != 1 {
		t.Fatalf("expected 1 period, got %d", len(matrix))
	}

	if err := matrix.RemovePeriod(3); !errors.Is(err, ErrPeriodIndexOutOfRange) {
		t.Errorf("RemovePeriod() out of range = %v, want ErrPeriodIndexOutOfRange", err)
	}
	if err := matrix.RemovePeriod(0); err != nil {
		t.Fatalf("RemovePeriod() error = %v", err)
	}
	if len(matrix) != 0 {
		t.Errorf("expected empty matrix, got %d periods", len(matrix))
	}
}

func TestMatrixIsComplete(t *testing.T) {
	tiers := testTiers()
	durations := []int{3, 5}

	empty := PricingMatrix{}
	if result := empty.IsComplete(tiers, durations); result.IsValid {
		t.Error("empty matrix should not be complete")
	}

	full := PricingMatrix{monthPeriod("June",
		PriceCell{GroupSizeTierIndex: 0, Nights: 3, Price: NumericPrice(100)},
		PriceCell{GroupSizeTierIndex: 0, Nights: 5, Price: NumericPrice(150)},
		PriceCell{GroupSizeTierIndex: 1, Nights: 3, Price: NumericPrice(90)},
		PriceCell{GroupSizeTierIndex: 1, Nights: 5, Price: OnRequestPrice()},
	)}
	result := full.IsComplete(tiers, durations)
	if !result.IsValid {
		t.Errorf("fully priced matrix reported incomplete: %v", result.Errors)
	}

	// Drop one cell: completeness must name the gap
	partial := PricingMatrix{monthPeriod("June",
		PriceCell{GroupSizeTierIndex: 0, Nights: 3, Price: NumericPrice(100)},
		PriceCell{GroupSizeTierIndex: 0, Nights: 5, Price: NumericPrice(150)},
		PriceCell{GroupSizeTierIndex: 1, Nights: 3, Price: NumericPrice(90)},
	)}
	result = partial.IsComplete(tiers, durations)
	if result.IsValid {
		t.Error("matrix with missing cell reported complete")
	}
	if len(result.Errors) != 1 {
		t.Errorf("expected 1 completeness error, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestValidateTiers(t *testing.T) {
	if errs := ValidateTiers(testTiers()); len(errs) != 0 {
		t.Errorf("valid tiers produced errors: %v", errs)
	}

	inverted := []GroupSizeTier{{Label: "bad", MinPeople: 5, MaxPeople: 2}}
	if errs := ValidateTiers(inverted); len(errs) == 0 {
		t.Error("inverted tier range not flagged")
	}

	overlapping := []GroupSizeTier{
		{Label: "2-4", MinPeople: 2, MaxPeople: 4},
		{Label: "4-6", MinPeople: 4, MaxPeople: 6},
	}
	if errs := ValidateTiers(overlapping); len(errs) == 0 {
		t.Error("overlapping tiers not flagged")
	}

	// Gaps are allowed
	gapped := []GroupSizeTier{
		{Label: "2-3", MinPeople: 2, MaxPeople: 3},
		{Label: "7-10", MinPeople: 7, MaxPeople: 10},
	}
	if errs := ValidateTiers(gapped); len(errs) != 0 {
		t.Errorf("gapped tiers should be valid, got: %v", errs)
	}
}

func TestValidatePeriodsOverlappingSpecials(t *testing.T) {
	matrix := PricingMatrix{
		specialPeriod("Easter",
			time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)),
		specialPeriod("Spring Fair",
			time.Date(2026, 4, 8, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 4, 14, 0, 0, 0, 0, time.UTC)),
	}
	if errs := matrix.ValidatePeriods(); len(errs) == 0 {
		t.Error("overlapping special periods not flagged")
	}

	// A special overlapping a month is fine; that's the whole point
	mixed := PricingMatrix{
		monthPeriod("April"),
		specialPeriod("Easter",
			time.Date(2026, 4, 3, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)),
	}
	if errs := mixed.ValidatePeriods(); len(errs) != 0 {
		t.Errorf("special over month should be valid, got: %v", errs)
	}
}
