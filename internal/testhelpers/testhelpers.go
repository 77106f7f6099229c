package testhelpers

import (
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	datasetdomain "dashboard/internal/dataset/domain"
)

// FixtureRawTables construit un petit jeu de tables brutes couvrant les
// cas remarquables des analyses:
//   - order-a (2023, livrée en 2 jours): deux articles 50 + 30, note 5
//   - order-b (2023, livrée en 9 jours): un article 20, note 3
//   - order-c (2022, livrée en 5 jours): un article 40, note 4
//   - order-d (2023, expédiée, non livrée): exclue du dataset de base
//   - un article orphelin dont la commande n'existe pas
func FixtureRawTables(tb testing.TB) *datasetdomain.RawTables {
	tb.Helper()

	orders := datasetdomain.NewRawTable("orders",
		[]string{
			datasetdomain.ColOrderID,
			datasetdomain.ColCustomerID,
			datasetdomain.ColOrderStatus,
			datasetdomain.ColPurchaseTimestamp,
			datasetdomain.ColDeliveredTimestamp,
		},
		[]datasetdomain.Record{
			{
				datasetdomain.ColOrderID:            "order-a",
				datasetdomain.ColCustomerID:         "customer-1",
				datasetdomain.ColOrderStatus:        "delivered",
				datasetdomain.ColPurchaseTimestamp:  time.Date(2023, 3, 1, 10, 0, 0, 0, time.UTC),
				datasetdomain.ColDeliveredTimestamp: time.Date(2023, 3, 3, 10, 0, 0, 0, time.UTC),
			},
			{
				datasetdomain.ColOrderID:            "order-b",
				datasetdomain.ColCustomerID:         "customer-2",
				datasetdomain.ColOrderStatus:        "delivered",
				datasetdomain.ColPurchaseTimestamp:  time.Date(2023, 5, 10, 9, 0, 0, 0, time.UTC),
				datasetdomain.ColDeliveredTimestamp: time.Date(2023, 5, 19, 9, 0, 0, 0, time.UTC),
			},
			{
				datasetdomain.ColOrderID:            "order-c",
				datasetdomain.ColCustomerID:         "customer-1",
				datasetdomain.ColOrderStatus:        "delivered",
				datasetdomain.ColPurchaseTimestamp:  time.Date(2022, 6, 1, 8, 0, 0, 0, time.UTC),
				datasetdomain.ColDeliveredTimestamp: time.Date(2022, 6, 6, 8, 0, 0, 0, time.UTC),
			},
			{
				datasetdomain.ColOrderID:           "order-d",
				datasetdomain.ColCustomerID:        "customer-2",
				datasetdomain.ColOrderStatus:       "shipped",
				datasetdomain.ColPurchaseTimestamp: time.Date(2023, 7, 1, 12, 0, 0, 0, time.UTC),
			},
		})

	orderItems := datasetdomain.NewRawTable("order_items",
		[]string{
			datasetdomain.ColOrderID,
			datasetdomain.ColProductID,
			datasetdomain.ColPrice,
		},
		[]datasetdomain.Record{
			{datasetdomain.ColOrderID: "order-a", datasetdomain.ColProductID: "product-1", datasetdomain.ColPrice: 50.0},
			{datasetdomain.ColOrderID: "order-a", datasetdomain.ColProductID: "product-2", datasetdomain.ColPrice: 30.0},
			{datasetdomain.ColOrderID: "order-b", datasetdomain.ColProductID: "product-1", datasetdomain.ColPrice: 20.0},
			{datasetdomain.ColOrderID: "order-c", datasetdomain.ColProductID: "product-2", datasetdomain.ColPrice: 40.0},
			{datasetdomain.ColOrderID: "order-d", datasetdomain.ColProductID: "product-1", datasetdomain.ColPrice: 15.0},
			// Article orphelin: aucune commande correspondante
			{datasetdomain.ColOrderID: "order-zz", datasetdomain.ColProductID: "product-1", datasetdomain.ColPrice: 99.0},
		})

	customers := datasetdomain.NewRawTable("customers",
		[]string{datasetdomain.ColCustomerID, datasetdomain.ColCustomerState},
		[]datasetdomain.Record{
			{datasetdomain.ColCustomerID: "customer-1", datasetdomain.ColCustomerState: "SP"},
			{datasetdomain.ColCustomerID: "customer-2", datasetdomain.ColCustomerState: "RJ"},
		})

	products := datasetdomain.NewRawTable("products",
		[]string{datasetdomain.ColProductID, datasetdomain.ColProductCategory},
		[]datasetdomain.Record{
			{datasetdomain.ColProductID: "product-1", datasetdomain.ColProductCategory: "electronics"},
			{datasetdomain.ColProductID: "product-2", datasetdomain.ColProductCategory: "furniture"},
		})

	reviews := datasetdomain.NewRawTable("reviews",
		[]string{datasetdomain.ColOrderID, datasetdomain.ColReviewScore},
		[]datasetdomain.Record{
			{datasetdomain.ColOrderID: "order-a", datasetdomain.ColReviewScore: 5.0},
			{datasetdomain.ColOrderID: "order-b", datasetdomain.ColReviewScore: 3.0},
			{datasetdomain.ColOrderID: "order-c", datasetdomain.ColReviewScore: 4.0},
		})

	raw, err := datasetdomain.NewRawTables(orders, orderItems, customers, products, reviews)
	if err != nil {
		tb.Fatalf("FixtureRawTables: %v", err)
	}
	return raw
}

// FixtureDataset construit le dataset de base du fixture (commandes
// livrées uniquement)
func FixtureDataset(tb testing.TB) *datasetdomain.SalesDataset {
	tb.Helper()

	dataset, err := datasetdomain.BuildSalesDataset(FixtureRawTables(tb), datasetdomain.BuildOptions{Status: "delivered"})
	if err != nil {
		tb.Fatalf("FixtureDataset: %v", err)
	}
	return dataset
}

// SetupTestDB initialise une connexion à la base de données de test
func SetupTestDB(tb testing.TB) *sql.DB {
	tb.Helper()

	_ = godotenv.Load("../../.env")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "dashuser"),
		getEnv("DB_PASSWORD", "dashpass"),
		getEnv("DB_NAME", "dashdb"),
		getEnv("DB_SSLMODE", "disable"),
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		tb.Fatalf("Failed to open database: %v", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		tb.Fatalf("Failed to ping database: %v", err)
	}

	return db
}

// SkipIfNoDatabase skip le test/benchmark si la DB n'est pas disponible
func SkipIfNoDatabase(tb testing.TB) {
	tb.Helper()

	_ = godotenv.Load("../../.env")

	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		getEnv("DB_HOST", "localhost"),
		getEnv("DB_PORT", "5432"),
		getEnv("DB_USER", "dashuser"),
		getEnv("DB_PASSWORD", "dashpass"),
		getEnv("DB_NAME", "dashdb"),
		getEnv("DB_SSLMODE", "disable"),
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		tb.Skipf("Database not available: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		tb.Skipf("Database not available: %v", err)
	}
}

// getEnv récupère une variable d'environnement avec fallback
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
