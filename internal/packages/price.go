package packages

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// OnRequestLiteral is the wire representation of an on-request price.
const OnRequestLiteral = "ON_REQUEST"

// Price is either a numeric per-person amount or the ON_REQUEST sentinel.
// A combination that has never been priced is represented by the absence of
// its PriceCell, never by a Price value, so "not yet priced" and "priced as
// on-request" stay distinguishable.
type Price struct {
	amount    float64
	onRequest bool
}

// NumericPrice creates a numeric per-person price.
func NumericPrice(amount float64) Price {
	return Price{amount: amount}
}

// OnRequestPrice creates the ON_REQUEST sentinel price.
func OnRequestPrice() Price {
	return Price{onRequest: true}
}

// IsOnRequest reports whether the price is the ON_REQUEST sentinel.
func (p Price) IsOnRequest() bool {
	return p.onRequest
}

// Amount returns the numeric amount. Zero for ON_REQUEST prices.
func (p Price) Amount() float64 {
	if p.onRequest {
		return 0
	}
	return p.amount
}

// IsValid reports whether the price is ON_REQUEST or a finite non-negative number.
func (p Price) IsValid() bool {
	if p.onRequest {
		return true
	}
	return p.amount >= 0 && !math.IsNaN(p.amount) && !math.IsInf(p.amount, 0)
}

func (p Price) String() string {
	if p.onRequest {
		return OnRequestLiteral
	}
	return strconv.FormatFloat(p.amount, 'f', -1, 64)
}

// MarshalJSON encodes the price as a number, or the literal "ON_REQUEST" string.
func (p Price) MarshalJSON() ([]byte, error) {
	if p.onRequest {
		return json.Marshal(OnRequestLiteral)
	}
	return json.Marshal(p.amount)
}

// UnmarshalJSON accepts either a non-negative number or the "ON_REQUEST" string.
func (p *Price) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != OnRequestLiteral {
			return fmt.Errorf("invalid price string %q", s)
		}
		*p = OnRequestPrice()
		return nil
	}

	var amount float64
	if err := json.Unmarshal(data, &amount); err != nil {
		return fmt.Errorf("invalid price value: %w", err)
	}

	candidate := NumericPrice(amount)
	if !candidate.IsValid() {
		return fmt.Errorf("invalid price amount %v", amount)
	}
	*p = candidate
	return nil
}
