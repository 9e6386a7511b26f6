package packages

import (
	"encoding/json"
	"testing"
)

func TestPriceMarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		price Price
		want  string
	}{
		{"numeric", NumericPrice(450), "450"},
		{"numeric with decimals", NumericPrice(99.5), "99.5"},
		{"zero", NumericPrice(0), "0"},
		{"on request", OnRequestPrice(), `"ON_REQUEST"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.price)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal() = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestPriceUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantErr       bool
		wantOnRequest bool
		wantAmount    float64
	}{
		{"numeric", "450", false, false, 450},
		{"zero", "0", false, false, 0},
		{"on request literal", `"ON_REQUEST"`, false, true, 0},
		{"negative", "-10", true, false, 0},
		{"other string", `"free"`, true, false, 0},
		{"null", "null", true, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Price
			err := json.Unmarshal([]byte(tt.input), &p)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if p.IsOnRequest() != tt.wantOnRequest {
				t.Errorf("IsOnRequest() = %v, want %v", p.IsOnRequest(), tt.wantOnRequest)
			}
			if p.Amount() != tt.wantAmount {
				t.Errorf("Amount() = %v, want %v", p.Amount(), tt.wantAmount)
			}
		})
	}
}

func TestPriceRoundTrip(t *testing.T) {
	original := OnRequestPrice()
	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var decoded Price
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !decoded.IsOnRequest() {
		t.Error("on-request price lost through round trip")
	}
}

func TestParsePriceInput(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantErr       bool
		wantOnRequest bool
		wantAmount    float64
	}{
		{"plain number", "450", false, false, 450},
		{"decimal", "99.50", false, false, 99.5},
		{"zero", "0", false, false, 0},
		{"whitespace around number", "  450  ", false, false, 450},
		{"on request", "ON REQUEST", false, true, 0},
		{"on request lowercase", "on request", false, true, 0},
		{"on request underscore", "ON_REQUEST", false, true, 0},
		{"on request extra spaces", "  on   request ", false, true, 0},
		{"empty", "", true, false, 0},
		{"blank", "   ", true, false, 0},
		{"negative", "-5", true, false, 0},
		{"garbage", "abc", true, false, 0},
		{"infinity", "Inf", true, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			price, err := ParsePriceInput(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePriceInput(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if price.IsOnRequest() != tt.wantOnRequest {
				t.Errorf("IsOnRequest() = %v, want %v", price.IsOnRequest(), tt.wantOnRequest)
			}
			if price.Amount() != tt.wantAmount {
				t.Errorf("Amount() = %v, want %v", price.Amount(), tt.wantAmount)
			}
		})
	}
}
