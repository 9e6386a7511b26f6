package packages

// Currency is an ISO-4217 three letter currency code.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyUSD Currency = "USD"
	CurrencyCHF Currency = "CHF"
	CurrencyAUD Currency = "AUD"
	CurrencyCAD Currency = "CAD"
)

// IsValid checks if the currency is one of the supported codes
func (c Currency) IsValid() bool {
	switch c {
	case CurrencyEUR, CurrencyGBP, CurrencyUSD, CurrencyCHF, CurrencyAUD, CurrencyCAD:
		return true
	}
	return false
}

// String returns the string representation of Currency
func (c Currency) String() string {
	return string(c)
}
