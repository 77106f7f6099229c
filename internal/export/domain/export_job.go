package domain

import (
	"errors"
	"strconv"
	"time"

	datasetdomain "dashboard/internal/dataset/domain"
)

// ExportFormat représente le format d'export
type ExportFormat string

const (
	ExportFormatCSV     ExportFormat = "CSV"
	ExportFormatParquet ExportFormat = "Parquet"
)

// ExportJob représente un job d'export du dataset de ventes
type ExportJob struct {
	format    ExportFormat
	year      int // 0 = toutes les années
	createdAt time.Time
}

// NewExportJob crée un nouveau job d'export avec validation
func NewExportJob(format ExportFormat, year int) (*ExportJob, error) {
	if format != ExportFormatCSV && format != ExportFormatParquet {
		return nil, errors.New("invalid export format")
	}
	if year < 0 {
		return nil, errors.New("year cannot be negative")
	}
	return &ExportJob{
		format:    format,
		year:      year,
		createdAt: time.Now(),
	}, nil
}

// Format retourne le format d'export
func (j *ExportJob) Format() ExportFormat {
	return j.format
}

// Year retourne l'année exportée (0 = toutes)
func (j *ExportJob) Year() int {
	return j.year
}

// CreatedAt retourne la date de création du job
func (j *ExportJob) CreatedAt() time.Time {
	return j.createdAt
}

// CSVHeaders retourne les en-têtes CSV du dataset de ventes
func CSVHeaders() []string {
	return []string{
		"order_id",
		"price",
		"purchase_year",
		"purchase_month",
		"order_status",
		"customer_state",
		"product_category_name",
		"review_score",
		"delivery_days",
	}
}

// RowToCSV convertit une ligne du dataset en ligne CSV
// Les champs absents deviennent des cellules vides
func RowToCSV(row datasetdomain.SalesRow) []string {
	var score, days string
	if row.ReviewScore != nil {
		score = strconv.FormatFloat(*row.ReviewScore, 'f', -1, 64)
	}
	if row.DeliveryDays != nil {
		days = strconv.Itoa(*row.DeliveryDays)
	}

	return []string{
		row.OrderID,
		strconv.FormatFloat(row.Price, 'f', 2, 64),
		strconv.Itoa(row.PurchaseYear),
		strconv.Itoa(row.PurchaseMonth),
		row.OrderStatus,
		row.CustomerState,
		row.ProductCategory,
		score,
		days,
	}
}

// SalesParquetRow représente une ligne du dataset dans le schéma parquet
type SalesParquetRow struct {
	OrderID         string   `parquet:"order_id"`
	Price           float64  `parquet:"price"`
	PurchaseYear    int32    `parquet:"purchase_year"`
	PurchaseMonth   int32    `parquet:"purchase_month"`
	OrderStatus     string   `parquet:"order_status"`
	CustomerState   string   `parquet:"customer_state,optional"`
	ProductCategory string   `parquet:"product_category_name,optional"`
	ReviewScore     *float64 `parquet:"review_score,optional"`
	DeliveryDays    *int32   `parquet:"delivery_days,optional"`
}

// NewSalesParquetRow convertit une ligne du dataset en ligne parquet
func NewSalesParquetRow(row datasetdomain.SalesRow) SalesParquetRow {
	out := SalesParquetRow{
		OrderID:         row.OrderID,
		Price:           row.Price,
		PurchaseYear:    int32(row.PurchaseYear),
		PurchaseMonth:   int32(row.PurchaseMonth),
		OrderStatus:     row.OrderStatus,
		CustomerState:   row.CustomerState,
		ProductCategory: row.ProductCategory,
	}
	if row.ReviewScore != nil {
		score := *row.ReviewScore
		out.ReviewScore = &score
	}
	if row.DeliveryDays != nil {
		days := int32(*row.DeliveryDays)
		out.DeliveryDays = &days
	}
	return out
}
