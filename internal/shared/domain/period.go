package domain

import "errors"

// Period représente un filtre temporel optionnel (année et/ou mois)
// DESIGN PATTERN: Value Object (DDD)
//   - Immutable: pas de setters, valeurs fixées à la création
//   - Validation dans le constructeur (NewPeriod)
//   - La valeur zéro signifie "aucun filtre"
type Period struct {
	year  int // 0 = pas de filtre sur l'année
	month int // 0 = pas de filtre sur le mois
}

// NewPeriod crée un Period avec validation
// year <= 0 et month <= 0 désactivent le filtre correspondant
func NewPeriod(year, month int) (Period, error) {
	if year < 0 {
		return Period{}, errors.New("year cannot be negative")
	}
	if month < 0 || month > 12 {
		return Period{}, errors.New("month must be between 1 and 12")
	}
	return Period{year: year, month: month}, nil
}

// NewYearPeriod crée un Period filtrant uniquement sur une année
func NewYearPeriod(year int) (Period, error) {
	return NewPeriod(year, 0)
}

// Year retourne l'année filtrée (0 si aucune)
func (p Period) Year() int {
	return p.year
}

// Month retourne le mois filtré (0 si aucun)
func (p Period) Month() int {
	return p.month
}

// FiltersYear indique si le filtre d'année est actif
func (p Period) FiltersYear() bool {
	return p.year > 0
}

// FiltersMonth indique si le filtre de mois est actif
func (p Period) FiltersMonth() bool {
	return p.month > 0
}

// IsEmpty indique si aucun filtre n'est actif
func (p Period) IsEmpty() bool {
	return p.year == 0 && p.month == 0
}

// Contains vérifie si une paire (année, mois) satisfait le filtre
// Les deux conditions se combinent en ET logique
func (p Period) Contains(year, month int) bool {
	if p.FiltersYear() && year != p.year {
		return false
	}
	if p.FiltersMonth() && month != p.month {
		return false
	}
	return true
}
