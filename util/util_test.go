package util

import "testing"

func TestFormatDouble(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.0"},
		{25, "25.0"},
		{50, "50.0"},
		{100.0048, "100.0048"},
		{492.2, "492.2"},
		{-3, "-3.0"},
		{0.5, "0.5"},
	}

	for _, tt := range tests {
		if got := FormatDouble(tt.in); got != tt.want {
			t.Errorf("FormatDouble(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatTenths(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{573.04, "573.0"},
		{42.2493, "42.2"},
		{0.75, "0.8"},
		{0.25, "0.3"},
		{-0.04, "0.0"},
		{1, "1.0"},
	}

	for _, tt := range tests {
		if got := FormatTenths(tt.in); got != tt.want {
			t.Errorf("FormatTenths(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(90); got != "90" {
		t.Errorf("FormatNumber(90) = %q, want 90", got)
	}
	if got := FormatNumber(12.5); got != "12.5" {
		t.Errorf("FormatNumber(12.5) = %q, want 12.5", got)
	}
}

func TestSeconds(t *testing.T) {
	if got := Seconds(50, 2); got != 25 {
		t.Errorf("Seconds(50, 2) = %v, want 25", got)
	}
	if got := Seconds(3, 2); got != 1.5 {
		t.Errorf("Seconds(3, 2) = %v, want 1.5", got)
	}
}
