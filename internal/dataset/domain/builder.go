package domain

import (
	"errors"
	"time"

	shareddomain "dashboard/internal/shared/domain"
)

// BuildOptions paramètre la construction du dataset de ventes
// Status restreint aux commandes d'un statut donné (vide = tous);
// Period restreint aux lignes dont l'année/mois d'achat correspond
// Les filtres se combinent en ET logique
type BuildOptions struct {
	Status string
	Period shareddomain.Period
}

// BuildSalesDataset joint les sources brutes en une table de faits à la
// granularité (commande, ligne de commande)
//
// Règles de jointure:
//   - une ligne de commande sans commande parente est abandonnée, jamais
//     complétée par des valeurs nulles (les sommes de revenus restent
//     exactes)
//   - un lien optionnel (client, produit, avis) non résolu laisse le
//     champ absent sans abandonner la ligne
//
// Le résultat est déterministe pour des sources et filtres identiques
func BuildSalesDataset(tables *RawTables, opts BuildOptions) (*SalesDataset, error) {
	if tables == nil {
		return nil, errors.New("raw tables are required")
	}

	columns := ColumnSet{
		CustomerState:   tables.Customers() != nil,
		ProductCategory: tables.Products() != nil && tables.OrderItems().HasColumn(ColProductID),
		ReviewScore:     tables.Reviews() != nil,
		DeliveryDays:    tables.Orders().HasColumn(ColDeliveredTimestamp),
	}

	orderIdx := indexByKey(tables.Orders(), ColOrderID)

	var stateIdx map[string]string
	if columns.CustomerState {
		stateIdx = indexValue(tables.Customers(), ColCustomerID, ColCustomerState)
	}

	var categoryIdx map[string]string
	if columns.ProductCategory {
		categoryIdx = indexValue(tables.Products(), ColProductID, ColProductCategory)
	}

	var reviewIdx map[string]float64
	if columns.ReviewScore {
		reviewIdx = indexReviews(tables.Reviews())
	}

	rows := make([]SalesRow, 0, tables.OrderItems().Len())
	for _, item := range tables.OrderItems().Rows() {
		orderID, ok := item.StringAt(ColOrderID)
		if !ok {
			continue
		}
		price, ok := item.FloatAt(ColPrice)
		if !ok || price < 0 {
			continue
		}
		order, ok := orderIdx[orderID]
		if !ok {
			// Pas de commande parente: ligne abandonnée
			continue
		}
		purchase, ok := order.TimeAt(ColPurchaseTimestamp)
		if !ok {
			// Sans horodatage d'achat, impossible de dériver l'année
			continue
		}

		status, _ := order.StringAt(ColOrderStatus)
		if opts.Status != "" && status != opts.Status {
			continue
		}

		year, month := purchase.Year(), int(purchase.Month())
		if !opts.Period.Contains(year, month) {
			continue
		}

		row := SalesRow{
			OrderID:       orderID,
			Price:         price,
			PurchaseYear:  year,
			PurchaseMonth: month,
			OrderStatus:   status,
		}

		if columns.DeliveryDays {
			if delivered, ok := order.TimeAt(ColDeliveredTimestamp); ok {
				if days := wholeDays(purchase, delivered); days >= 0 {
					row.DeliveryDays = &days
				}
			}
		}
		if columns.CustomerState {
			if customerID, ok := order.StringAt(ColCustomerID); ok {
				row.CustomerState = stateIdx[customerID]
			}
		}
		if columns.ProductCategory {
			if productID, ok := item.StringAt(ColProductID); ok {
				row.ProductCategory = categoryIdx[productID]
			}
		}
		if columns.ReviewScore {
			if score, ok := reviewIdx[orderID]; ok {
				value := score
				row.ReviewScore = &value
			}
		}

		rows = append(rows, row)
	}

	return NewSalesDataset(rows, columns), nil
}

// indexByKey indexe les lignes d'une table par une colonne clé
// En cas de doublon, la première ligne rencontrée gagne
func indexByKey(table *RawTable, keyCol string) map[string]Record {
	idx := make(map[string]Record, table.Len())
	for _, record := range table.Rows() {
		key, ok := record.StringAt(keyCol)
		if !ok {
			continue
		}
		if _, exists := idx[key]; !exists {
			idx[key] = record
		}
	}
	return idx
}

// indexValue indexe la valeur texte d'une colonne par une colonne clé
func indexValue(table *RawTable, keyCol, valueCol string) map[string]string {
	idx := make(map[string]string, table.Len())
	for _, record := range table.Rows() {
		key, ok := record.StringAt(keyCol)
		if !ok {
			continue
		}
		value, ok := record.StringAt(valueCol)
		if !ok {
			continue
		}
		if _, exists := idx[key]; !exists {
			idx[key] = value
		}
	}
	return idx
}

// indexReviews indexe une note valide par commande
// Un avis appartient à la commande: le premier avis valide gagne, et une
// note hors échelle est traitée comme absente
func indexReviews(table *RawTable) map[string]float64 {
	idx := make(map[string]float64, table.Len())
	for _, record := range table.Rows() {
		orderID, ok := record.StringAt(ColOrderID)
		if !ok {
			continue
		}
		raw, ok := record.FloatAt(ColReviewScore)
		if !ok {
			continue
		}
		score, err := shareddomain.NewReviewScore(raw)
		if err != nil {
			continue
		}
		if _, exists := idx[orderID]; !exists {
			idx[orderID] = score.Value()
		}
	}
	return idx
}

// wholeDays retourne la différence en jours entiers entre deux dates
func wholeDays(from, to time.Time) int {
	return int(to.Sub(from) / (24 * time.Hour))
}
