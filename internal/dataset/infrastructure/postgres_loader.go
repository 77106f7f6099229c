package infrastructure

import (
	"database/sql"
	"fmt"

	"dashboard/internal/dataset/domain"
)

// PostgresLoader charge les tables brutes depuis PostgreSQL
// Les tables optionnelles absentes du schéma sont ignorées sans erreur
type PostgresLoader struct {
	db *sql.DB
}

// NewPostgresLoader crée un nouveau loader PostgreSQL
func NewPostgresLoader(db *sql.DB) *PostgresLoader {
	return &PostgresLoader{db: db}
}

// Load lit toutes les sources et les valide
func (l *PostgresLoader) Load() (*domain.RawTables, error) {
	orders, err := l.loadOrders()
	if err != nil {
		return nil, err
	}
	orderItems, err := l.loadOrderItems()
	if err != nil {
		return nil, err
	}
	customers, err := l.loadOptional("customers", l.loadCustomers)
	if err != nil {
		return nil, err
	}
	products, err := l.loadOptional("products", l.loadProducts)
	if err != nil {
		return nil, err
	}
	reviews, err := l.loadOptional("reviews", l.loadReviews)
	if err != nil {
		return nil, err
	}

	return domain.NewRawTables(orders, orderItems, customers, products, reviews)
}

// loadOptional charge une table si elle existe dans le schéma
func (l *PostgresLoader) loadOptional(table string, load func() (*domain.RawTable, error)) (*domain.RawTable, error) {
	exists, err := l.tableExists(table)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	return load()
}

// tableExists vérifie la présence d'une table dans le schéma public
func (l *PostgresLoader) tableExists(table string) (bool, error) {
	var regclass sql.NullString
	err := l.db.QueryRow("SELECT to_regclass($1)", "public."+table).Scan(&regclass)
	if err != nil {
		return false, fmt.Errorf("check table %s: %w", table, err)
	}
	return regclass.Valid, nil
}

func (l *PostgresLoader) loadOrders() (*domain.RawTable, error) {
	rows, err := l.db.Query(`
		SELECT order_id, customer_id, order_status, purchase_timestamp, delivered_timestamp
		FROM orders
	`)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var (
			orderID    string
			customerID sql.NullString
			status     sql.NullString
			purchased  sql.NullTime
			delivered  sql.NullTime
		)
		if err := rows.Scan(&orderID, &customerID, &status, &purchased, &delivered); err != nil {
			return nil, fmt.Errorf("scan orders: %w", err)
		}

		record := domain.Record{domain.ColOrderID: orderID}
		if customerID.Valid {
			record[domain.ColCustomerID] = customerID.String
		}
		if status.Valid {
			record[domain.ColOrderStatus] = status.String
		}
		if purchased.Valid {
			record[domain.ColPurchaseTimestamp] = purchased.Time
		}
		if delivered.Valid {
			record[domain.ColDeliveredTimestamp] = delivered.Time
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	columns := []string{
		domain.ColOrderID,
		domain.ColCustomerID,
		domain.ColOrderStatus,
		domain.ColPurchaseTimestamp,
		domain.ColDeliveredTimestamp,
	}
	return domain.NewRawTable("orders", columns, records), nil
}

func (l *PostgresLoader) loadOrderItems() (*domain.RawTable, error) {
	rows, err := l.db.Query(`
		SELECT order_id, product_id, price
		FROM order_items
	`)
	if err != nil {
		return nil, fmt.Errorf("load order_items: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var (
			orderID   string
			productID sql.NullString
			price     sql.NullFloat64
		)
		if err := rows.Scan(&orderID, &productID, &price); err != nil {
			return nil, fmt.Errorf("scan order_items: %w", err)
		}

		record := domain.Record{domain.ColOrderID: orderID}
		if productID.Valid {
			record[domain.ColProductID] = productID.String
		}
		if price.Valid {
			record[domain.ColPrice] = price.Float64
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order_items: %w", err)
	}

	columns := []string{domain.ColOrderID, domain.ColProductID, domain.ColPrice}
	return domain.NewRawTable("order_items", columns, records), nil
}

func (l *PostgresLoader) loadCustomers() (*domain.RawTable, error) {
	return l.loadKeyValue("customers", domain.ColCustomerID, domain.ColCustomerState)
}

func (l *PostgresLoader) loadProducts() (*domain.RawTable, error) {
	return l.loadKeyValue("products", domain.ColProductID, domain.ColProductCategory)
}

func (l *PostgresLoader) loadReviews() (*domain.RawTable, error) {
	rows, err := l.db.Query(`SELECT order_id, review_score FROM reviews`)
	if err != nil {
		return nil, fmt.Errorf("load reviews: %w", err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var (
			orderID string
			score   sql.NullFloat64
		)
		if err := rows.Scan(&orderID, &score); err != nil {
			return nil, fmt.Errorf("scan reviews: %w", err)
		}

		record := domain.Record{domain.ColOrderID: orderID}
		if score.Valid {
			record[domain.ColReviewScore] = score.Float64
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}

	return domain.NewRawTable("reviews", []string{domain.ColOrderID, domain.ColReviewScore}, records), nil
}

// loadKeyValue charge une table à deux colonnes (clé, valeur texte)
func (l *PostgresLoader) loadKeyValue(table, keyCol, valueCol string) (*domain.RawTable, error) {
	rows, err := l.db.Query(fmt.Sprintf("SELECT %s, %s FROM %s", keyCol, valueCol, table))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", table, err)
	}
	defer rows.Close()

	var records []domain.Record
	for rows.Next() {
		var (
			key   string
			value sql.NullString
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}

		record := domain.Record{keyCol: key}
		if value.Valid {
			record[valueCol] = value.String
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", table, err)
	}

	return domain.NewRawTable(table, []string{keyCol, valueCol}, records), nil
}
