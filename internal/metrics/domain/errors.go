package domain

import (
	"errors"
	"fmt"
)

// ErrEmptyAggregate signale une moyenne calculée sur zéro ligne
// qualifiée: un résultat "indisponible", distinct d'un vrai zéro
var ErrEmptyAggregate = errors.New("aggregate computed over zero qualifying rows")

// MissingColumnError signale qu'une colonne requise par une analyse est
// absente du dataset de ventes. L'analyse répond "indisponible"; l'erreur
// n'est jamais propagée comme un échec du lot de métriques
type MissingColumnError struct {
	Column string
}

// Error implémente l'interface error
func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q is not present in the sales dataset", e.Column)
}

// NewMissingColumnError crée une nouvelle erreur de colonne absente
func NewMissingColumnError(column string) *MissingColumnError {
	return &MissingColumnError{Column: column}
}

// IsUnavailable indique si une erreur représente un résultat
// indisponible (colonne absente ou agrégat vide) plutôt qu'un véritable
// échec. La couche de présentation affiche alors un placeholder
func IsUnavailable(err error) bool {
	if errors.Is(err, ErrEmptyAggregate) {
		return true
	}
	var missing *MissingColumnError
	return errors.As(err, &missing)
}

// UnavailableReason retourne le libellé à afficher pour un résultat
// indisponible
func UnavailableReason(err error) string {
	var missing *MissingColumnError
	if errors.As(err, &missing) {
		return fmt.Sprintf("column %s not available", missing.Column)
	}
	if errors.Is(err, ErrEmptyAggregate) {
		return "no qualifying data"
	}
	return ""
}
