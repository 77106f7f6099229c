package domain

import (
	"errors"
	"fmt"
)

// ReviewScore représente une note client avec validation
// L'échelle valide est [1, 5]; toute autre valeur est rejetée
type ReviewScore struct {
	value float64
}

// NewReviewScore crée une nouvelle instance de ReviewScore avec validation
func NewReviewScore(value float64) (ReviewScore, error) {
	if value < 1 || value > 5 {
		return ReviewScore{}, errors.New("review score must be between 1 and 5")
	}
	return ReviewScore{value: value}, nil
}

// MustNewReviewScore crée un ReviewScore en paniquant si invalide
func MustNewReviewScore(value float64) ReviewScore {
	s, err := NewReviewScore(value)
	if err != nil {
		panic(fmt.Sprintf("invalid review score: %v", err))
	}
	return s
}

// Value retourne la note
func (s ReviewScore) Value() float64 {
	return s.value
}
