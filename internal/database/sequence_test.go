package database

import (
	"errors"
	"testing"
	"time"
)

func TestMonthPrefix(t *testing.T) {
	jan := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	if got := MonthPrefix("PN", jan); got != "PN202401" {
		t.Errorf("MonthPrefix = %q, want PN202401", got)
	}
	dec := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	if got := MonthPrefix("SN", dec); got != "SN202512" {
		t.Errorf("MonthPrefix = %q, want SN202512", got)
	}
}

func TestNextSequence(t *testing.T) {
	tests := []struct {
		name    string
		last    string
		want    int
		wantErr bool
	}{
		{name: "empty starts at one", last: "", want: 1},
		{name: "increments", last: "PN2024010007", want: 8},
		{name: "crosses padding boundary", last: "PN2024010099", want: 100},
		{name: "last valid value", last: "PN2024019998", want: 9999},
		{name: "exhausted", last: "PN2024019999", wantErr: true},
		{name: "malformed suffix", last: "PN202401XYZA", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := nextSequence("PN202401", tt.last)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("nextSequence(%q) expected error, got %d", tt.last, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("nextSequence(%q): %v", tt.last, err)
			}
			if got != tt.want {
				t.Errorf("nextSequence(%q) = %d, want %d", tt.last, got, tt.want)
			}
		})
	}
}

func TestNextSequenceExhaustedIsSentinel(t *testing.T) {
	_, err := nextSequence("PN202401", "PN2024019999")
	if !errors.Is(err, ErrSequenceExhausted) {
		t.Errorf("expected ErrSequenceExhausted, got %v", err)
	}
}

func TestFormatCode(t *testing.T) {
	if got := formatCode("PN202401", 7); got != "PN2024010007" {
		t.Errorf("formatCode = %q, want PN2024010007", got)
	}
	if got := formatCode("SN202512", 9999); got != "SN2025129999" {
		t.Errorf("formatCode = %q, want SN2025129999", got)
	}
}
