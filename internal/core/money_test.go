package core

import "testing"

func TestParseAmountToCents(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "dot separator", input: "12.34", want: 1234},
		{name: "comma separator", input: "12,34", want: 1234},
		{name: "no fraction", input: "12", want: 1200},
		{name: "single fractional digit", input: "12.3", want: 1230},
		{name: "leading dot", input: ".50", want: 50},
		{name: "max value", input: "99999.99", want: 9999999},
		{name: "whitespace trimmed", input: "  7.00 ", want: 700},
		{name: "empty", input: "", wantErr: true},
		{name: "three fractional digits", input: "12.345", wantErr: true},
		{name: "over max", input: "100000.00", wantErr: true},
		{name: "over max integer part", input: "100000", wantErr: true},
		{name: "negative", input: "-5.00", wantErr: true},
		{name: "explicit plus", input: "+5.00", wantErr: true},
		{name: "zero", input: "0.00", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "two dots", input: "1.2.3", wantErr: true},
		{name: "digits with letters", input: "12a.34", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmountToCents(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAmountToCents(%q) = %d, want error", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmountToCents(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseAmountToCents(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestMoneyString(t *testing.T) {
	tests := []struct {
		cents int64
		want  string
	}{
		{1234, "12.34"},
		{100, "1.00"},
		{5, "0.05"},
		{9999999, "99999.99"},
	}
	for _, tt := range tests {
		if got := (Money{Cents: tt.cents}).String(); got != tt.want {
			t.Errorf("Money{%d}.String() = %q, want %q", tt.cents, got, tt.want)
		}
	}
}

func TestMoneyValidate(t *testing.T) {
	if err := (Money{Cents: 1234}).Validate(); err != nil {
		t.Errorf("valid amount rejected: %v", err)
	}
	if err := (Money{Cents: 0}).Validate(); err == nil {
		t.Error("zero amount accepted")
	}
	if err := (Money{Cents: MaxAmountCents + 1}).Validate(); err == nil {
		t.Error("amount above 99999.99 accepted")
	}
}
