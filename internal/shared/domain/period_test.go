package domain

import (
	"testing"
)

// TestNewPeriod vérifie la création des périodes valides
func TestNewPeriod(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month int
	}{
		{"empty", 0, 0},
		{"year only", 2023, 0},
		{"year and month", 2023, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			period, err := NewPeriod(tt.year, tt.month)
			if err != nil {
				t.Fatalf("NewPeriod(%d, %d) error = %v", tt.year, tt.month, err)
			}
			if period.Year() != tt.year || period.Month() != tt.month {
				t.Errorf("NewPeriod(%d, %d) = (%d, %d)", tt.year, tt.month, period.Year(), period.Month())
			}
		})
	}
}

// TestNewPeriod_InvalidMonth vérifie le rejet des mois hors bornes
func TestNewPeriod_InvalidMonth(t *testing.T) {
	if _, err := NewPeriod(2023, 13); err == nil {
		t.Error("NewPeriod(2023, 13) should return an error")
	}
	if _, err := NewPeriod(2023, -1); err == nil {
		t.Error("NewPeriod(2023, -1) should return an error")
	}
}

// TestPeriod_Contains vérifie la combinaison ET des filtres année/mois
func TestPeriod_Contains(t *testing.T) {
	empty, _ := NewPeriod(0, 0)
	yearOnly, _ := NewYearPeriod(2023)
	yearMonth, _ := NewPeriod(2023, 5)

	tests := []struct {
		name   string
		period Period
		year   int
		month  int
		want   bool
	}{
		{"empty matches everything", empty, 2019, 12, true},
		{"year filter matches same year", yearOnly, 2023, 1, true},
		{"year filter rejects other year", yearOnly, 2022, 1, false},
		{"year+month matches both", yearMonth, 2023, 5, true},
		{"year+month rejects other month", yearMonth, 2023, 6, false},
		{"year+month rejects other year", yearMonth, 2022, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.period.Contains(tt.year, tt.month); got != tt.want {
				t.Errorf("Contains(%d, %d) = %v, want %v", tt.year, tt.month, got, tt.want)
			}
		})
	}
}

// TestPeriod_IsEmpty vérifie la détection d'une période sans filtre
func TestPeriod_IsEmpty(t *testing.T) {
	empty, _ := NewPeriod(0, 0)
	if !empty.IsEmpty() {
		t.Error("IsEmpty() = false for empty period")
	}

	year, _ := NewYearPeriod(2023)
	if year.IsEmpty() {
		t.Error("IsEmpty() = true for year period")
	}
}
