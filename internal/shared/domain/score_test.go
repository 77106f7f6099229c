package domain

import (
	"testing"
)

// TestNewReviewScore vérifie les bornes de validité d'une note
func TestNewReviewScore(t *testing.T) {
	for _, value := range []float64{1, 2.5, 5} {
		score, err := NewReviewScore(value)
		if err != nil {
			t.Errorf("NewReviewScore(%v) error = %v", value, err)
			continue
		}
		if score.Value() != value {
			t.Errorf("Value() = %v, want %v", score.Value(), value)
		}
	}

	for _, value := range []float64{0, 0.9, 5.1, -3} {
		if _, err := NewReviewScore(value); err == nil {
			t.Errorf("NewReviewScore(%v) should return an error", value)
		}
	}
}
