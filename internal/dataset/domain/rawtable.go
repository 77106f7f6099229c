package domain

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// Noms des colonnes attendues dans les sources brutes
const (
	ColOrderID            = "order_id"
	ColCustomerID         = "customer_id"
	ColProductID          = "product_id"
	ColOrderStatus        = "order_status"
	ColPurchaseTimestamp  = "purchase_timestamp"
	ColDeliveredTimestamp = "delivered_timestamp"
	ColPrice              = "price"
	ColCustomerState      = "customer_state"
	ColProductCategory    = "product_category_name"
	ColReviewScore        = "review_score"
)

// Record représente une ligne brute: nom de colonne -> valeur scalaire
// (string, nombre ou timestamp). Une valeur absente n'est pas présente
// dans la map
type Record map[string]interface{}

// StringAt retourne la valeur texte d'une colonne
// Retourne false si la valeur est absente, nil ou vide
func (r Record) StringAt(col string) (string, bool) {
	raw, exists := r[col]
	if !exists || raw == nil {
		return "", false
	}
	value, err := cast.ToStringE(raw)
	if err != nil || value == "" {
		return "", false
	}
	return value, true
}

// FloatAt retourne la valeur numérique d'une colonne
func (r Record) FloatAt(col string) (float64, bool) {
	raw, exists := r[col]
	if !exists || raw == nil {
		return 0, false
	}
	value, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, false
	}
	return value, true
}

// TimeAt retourne la valeur temporelle d'une colonne
func (r Record) TimeAt(col string) (time.Time, bool) {
	raw, exists := r[col]
	if !exists || raw == nil {
		return time.Time{}, false
	}
	value, err := cast.ToTimeE(raw)
	if err != nil || value.IsZero() {
		return time.Time{}, false
	}
	return value, true
}

// RawTable représente une table source chargée en mémoire
type RawTable struct {
	name    string
	columns map[string]bool
	rows    []Record
}

// NewRawTable crée une nouvelle instance de RawTable
func NewRawTable(name string, columns []string, rows []Record) *RawTable {
	colSet := make(map[string]bool, len(columns))
	for _, col := range columns {
		colSet[col] = true
	}
	return &RawTable{
		name:    name,
		columns: colSet,
		rows:    rows,
	}
}

// Name retourne le nom de la table
func (t *RawTable) Name() string {
	return t.name
}

// Len retourne le nombre de lignes
func (t *RawTable) Len() int {
	return len(t.rows)
}

// Rows retourne les lignes (vue en lecture seule)
func (t *RawTable) Rows() []Record {
	return t.rows
}

// HasColumn vérifie si une colonne est déclarée dans la table
func (t *RawTable) HasColumn(col string) bool {
	return t.columns[col]
}

// RequireColumns valide la présence des colonnes obligatoires
func (t *RawTable) RequireColumns(cols ...string) error {
	for _, col := range cols {
		if !t.columns[col] {
			return fmt.Errorf("table %s: required column %q is missing", t.name, col)
		}
	}
	return nil
}

// RawTables regroupe les sources brutes d'une session
// Orders et OrderItems sont obligatoires; Customers, Products et Reviews
// sont optionnelles; leur absence dégrade les colonnes correspondantes
// du dataset de ventes sans jamais échouer
type RawTables struct {
	orders     *RawTable
	orderItems *RawTable
	customers  *RawTable
	products   *RawTable
	reviews    *RawTable
}

// NewRawTables crée une nouvelle instance de RawTables avec validation
// Une clé de jointure absente d'une source présente est une erreur fatale
// de construction
func NewRawTables(orders, orderItems, customers, products, reviews *RawTable) (*RawTables, error) {
	if orders == nil {
		return nil, fmt.Errorf("orders table is required")
	}
	if orderItems == nil {
		return nil, fmt.Errorf("order_items table is required")
	}
	if err := orders.RequireColumns(ColOrderID, ColCustomerID, ColOrderStatus, ColPurchaseTimestamp); err != nil {
		return nil, err
	}
	if err := orderItems.RequireColumns(ColOrderID, ColPrice); err != nil {
		return nil, err
	}
	if customers != nil {
		if err := customers.RequireColumns(ColCustomerID, ColCustomerState); err != nil {
			return nil, err
		}
	}
	if products != nil {
		if err := products.RequireColumns(ColProductID, ColProductCategory); err != nil {
			return nil, err
		}
	}
	if reviews != nil {
		if err := reviews.RequireColumns(ColOrderID, ColReviewScore); err != nil {
			return nil, err
		}
	}

	return &RawTables{
		orders:     orders,
		orderItems: orderItems,
		customers:  customers,
		products:   products,
		reviews:    reviews,
	}, nil
}

// Orders retourne la table des commandes
func (rt *RawTables) Orders() *RawTable {
	return rt.orders
}

// OrderItems retourne la table des lignes de commande
func (rt *RawTables) OrderItems() *RawTable {
	return rt.orderItems
}

// Customers retourne la table des clients (peut être nil)
func (rt *RawTables) Customers() *RawTable {
	return rt.customers
}

// Products retourne la table des produits (peut être nil)
func (rt *RawTables) Products() *RawTable {
	return rt.products
}

// Reviews retourne la table des avis (peut être nil)
func (rt *RawTables) Reviews() *RawTable {
	return rt.reviews
}
