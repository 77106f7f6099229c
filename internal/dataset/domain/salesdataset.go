package domain

import "sort"

// SalesRow représente une ligne du dataset de ventes: un couple
// (commande, ligne de commande) ayant survécu à la jointure
// Les champs pointeurs sont absents (nil) quand la donnée source manque
type SalesRow struct {
	OrderID         string
	Price           float64
	PurchaseYear    int
	PurchaseMonth   int // 1..12
	OrderStatus     string
	CustomerState   string // "" = absent pour cette ligne
	ProductCategory string // "" = absent pour cette ligne
	ReviewScore     *float64
	DeliveryDays    *int
}

// ColumnSet indique quelles colonnes optionnelles existent dans le
// dataset. Les drapeaux sont fixés une seule fois à la construction:
// un drapeau à false signifie que la source correspondante était absente
// et que les analyses qui en dépendent doivent répondre "indisponible"
type ColumnSet struct {
	CustomerState   bool
	ProductCategory bool
	ReviewScore     bool
	DeliveryDays    bool
}

// SalesDataset est la table de faits dénormalisée, immuable après
// construction. Tout filtrage d'analyse passe par des vues en lecture
// seule, jamais par mutation
type SalesDataset struct {
	rows    []SalesRow
	columns ColumnSet
	years   []int // tri décroissant
}

// NewSalesDataset crée un nouveau dataset de ventes
func NewSalesDataset(rows []SalesRow, columns ColumnSet) *SalesDataset {
	seen := make(map[int]bool)
	for _, row := range rows {
		seen[row.PurchaseYear] = true
	}
	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	return &SalesDataset{
		rows:    rows,
		columns: columns,
		years:   years,
	}
}

// Rows retourne toutes les lignes (vue en lecture seule)
func (d *SalesDataset) Rows() []SalesRow {
	return d.rows
}

// Len retourne le nombre de lignes
func (d *SalesDataset) Len() int {
	return len(d.rows)
}

// Columns retourne les drapeaux de présence des colonnes optionnelles
func (d *SalesDataset) Columns() ColumnSet {
	return d.columns
}

// Years retourne les années présentes, triées de la plus récente à la
// plus ancienne
func (d *SalesDataset) Years() []int {
	return append([]int{}, d.years...)
}

// HasYear vérifie si une année est présente dans le dataset
func (d *SalesDataset) HasYear(year int) bool {
	for _, y := range d.years {
		if y == year {
			return true
		}
	}
	return false
}

// YearRows retourne les lignes d'une année (vue en lecture seule)
func (d *SalesDataset) YearRows(year int) []SalesRow {
	var rows []SalesRow
	for _, row := range d.rows {
		if row.PurchaseYear == year {
			rows = append(rows, row)
		}
	}
	return rows
}
