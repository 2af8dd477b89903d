package errors

import (
	"math"
	"strings"
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "api", false},
		{"valid scoped", "cell-a.api", false},
		{"valid unicode", "サービス", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 300), true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
		{"control char", "foo\x01bar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID("component", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidInput) {
				t.Errorf("ValidateID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidInput)
			}
		})
	}
}

func TestValidateSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		wantCode      Code
	}{
		{"valid", 100, 50, ""},
		{"zero", 0, 0, ""},
		{"negative width", -1, 50, ErrCodeInvalidDimensions},
		{"negative height", 10, -0.5, ErrCodeInvalidDimensions},
		{"nan", math.NaN(), 10, ErrCodeInvalidCoordinate},
		{"inf", 10, math.Inf(1), ErrCodeInvalidCoordinate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSize("component", "x", tt.width, tt.height)
			if got := GetCode(err); got != tt.wantCode {
				t.Errorf("ValidateSize() code = %q, want %q (err=%v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestValidateNonNegative(t *testing.T) {
	tests := []struct {
		name    string
		input   float64
		wantErr bool
	}{
		{"zero", 0, false},
		{"positive", 12.5, false},
		{"negative", -1, true},
		{"nan", math.NaN(), true},
		{"inf", math.Inf(-1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNonNegative("nodeSpacing", tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNonNegative(%v) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidOption) {
				t.Errorf("ValidateNonNegative(%v) code = %v", tt.input, GetCode(err))
			}
		})
	}
}
