package services

import "testing"

func TestConvertToXOF(t *testing.T) {
	rates := DefaultRates()

	tests := []struct {
		amount   float64
		currency string
		want     int64
	}{
		{100, "EUR", 65596}, // 655.957 per EUR, rounded
		{50, "USD", 30000},
		{1234.4, "XOF", 1234},
		{0.5, "XOF", 1}, // rounds half up
	}
	for _, tt := range tests {
		got, err := ConvertToXOF(rates, tt.amount, tt.currency)
		if err != nil {
			t.Fatalf("ConvertToXOF(%v %s): %v", tt.amount, tt.currency, err)
		}
		if got != tt.want {
			t.Errorf("ConvertToXOF(%v %s) = %d, want %d", tt.amount, tt.currency, got, tt.want)
		}
	}
}

func TestConvertToXOFRejectsUnknownCurrency(t *testing.T) {
	_, err := ConvertToXOF(DefaultRates(), 100, "GBP")
	if err == nil {
		t.Fatal("expected an error for an unknown currency")
	}
	if !IsValidation(err) {
		t.Fatalf("expected a validation error, got %T", err)
	}
}

func TestStaticRatesNeverDefault(t *testing.T) {
	rates := StaticRates{"EUR": 655.957}
	if _, ok := rates.Rate("JPY"); ok {
		t.Fatal("unknown currency must report ok=false")
	}
}
