package database

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// SeedDatabase crée le schéma et le peuple avec des données de ventes
// réparties sur les `years` dernières années
func SeedDatabase(years int) error {
	if years <= 0 {
		years = 3
	}

	fmt.Println("🌱 Création du schéma...")
	if err := createSchema(); err != nil {
		return fmt.Errorf("erreur création schéma: %w", err)
	}

	fmt.Println("🌱 Génération des données de référence...")
	customerIDs, err := seedCustomers(500)
	if err != nil {
		return fmt.Errorf("erreur génération clients: %w", err)
	}

	productIDs, err := seedProducts(80)
	if err != nil {
		return fmt.Errorf("erreur génération produits: %w", err)
	}

	fmt.Println("🌱 Génération des commandes et avis...")
	if err := seedOrders(years, customerIDs, productIDs); err != nil {
		return fmt.Errorf("erreur génération commandes: %w", err)
	}

	fmt.Println("🔍 Analyse des tables...")
	if _, err := DB.Exec("ANALYZE"); err != nil {
		fmt.Println("⚠️ Attention: échec de l'analyse:", err)
	}

	return nil
}

func createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS customers (
			customer_id TEXT PRIMARY KEY,
			customer_state TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			product_id TEXT PRIMARY KEY,
			product_category_name TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			order_id TEXT PRIMARY KEY,
			customer_id TEXT REFERENCES customers(customer_id),
			order_status TEXT,
			purchase_timestamp TIMESTAMP,
			delivered_timestamp TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_id TEXT REFERENCES orders(order_id),
			product_id TEXT REFERENCES products(product_id),
			price NUMERIC(10,2)
		)`,
		`CREATE TABLE IF NOT EXISTS reviews (
			order_id TEXT REFERENCES orders(order_id),
			review_score NUMERIC(2,1)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_purchase ON orders(purchase_timestamp)`,
	}
	for _, stmt := range statements {
		if _, err := DB.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// seedCustomers génère les clients
func seedCustomers(count int) ([]string, error) {
	fmt.Printf("   👥 Génération de %d clients...\n", count)

	states := []string{"SP", "RJ", "MG", "RS", "PR", "SC", "BA", "DF", "GO", "PE"}

	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.NewString()

		// Quelques clients sans état renseigné
		var state interface{}
		if rand.Intn(20) != 0 {
			state = states[rand.Intn(len(states))]
		}

		if _, err := DB.Exec(
			`INSERT INTO customers (customer_id, customer_state) VALUES ($1, $2)`,
			id, state,
		); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	fmt.Printf("   ✅ %d clients créés\n", len(ids))
	return ids, nil
}

// seedProducts génère les produits
func seedProducts(count int) ([]string, error) {
	fmt.Printf("   📦 Génération de %d produits...\n", count)

	categories := []string{
		"electronics", "furniture", "toys", "books", "sports",
		"beauty", "fashion", "garden", "grocery", "automotive",
	}

	ids := make([]string, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.NewString()

		// Quelques produits sans catégorie
		var category interface{}
		if rand.Intn(15) != 0 {
			category = categories[rand.Intn(len(categories))]
		}

		if _, err := DB.Exec(
			`INSERT INTO products (product_id, product_category_name) VALUES ($1, $2)`,
			id, category,
		); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	fmt.Printf("   ✅ %d produits créés\n", len(ids))
	return ids, nil
}

// seedOrders génère commandes, lignes de commande et avis
func seedOrders(years int, customerIDs, productIDs []string) error {
	now := time.Now()
	start := now.AddDate(-years, 0, 0)
	span := now.Sub(start)

	statuses := []string{"delivered", "delivered", "delivered", "delivered", "shipped", "canceled"}

	ordersCreated := 0
	reviewsCreated := 0

	perYear := 1200
	total := perYear * years

	for i := 0; i < total; i++ {
		orderID := uuid.NewString()
		customerID := customerIDs[rand.Intn(len(customerIDs))]
		status := statuses[rand.Intn(len(statuses))]
		purchased := start.Add(time.Duration(rand.Int63n(int64(span))))

		// Seules les commandes livrées ont une date de livraison
		var delivered interface{}
		if status == "delivered" {
			delivered = purchased.Add(time.Duration(1+rand.Intn(14)) * 24 * time.Hour)
		}

		if _, err := DB.Exec(`
			INSERT INTO orders (order_id, customer_id, order_status, purchase_timestamp, delivered_timestamp)
			VALUES ($1, $2, $3, $4, $5)
		`, orderID, customerID, status, purchased, delivered); err != nil {
			return err
		}

		itemCount := 1 + rand.Intn(3)
		for j := 0; j < itemCount; j++ {
			productID := productIDs[rand.Intn(len(productIDs))]
			price := 10.0 + rand.Float64()*290.0

			if _, err := DB.Exec(`
				INSERT INTO order_items (order_id, product_id, price)
				VALUES ($1, $2, $3)
			`, orderID, productID, price); err != nil {
				return err
			}
		}

		// Environ deux tiers des commandes livrées ont un avis
		if status == "delivered" && rand.Intn(3) != 0 {
			score := 1 + rand.Intn(5)
			if _, err := DB.Exec(
				`INSERT INTO reviews (order_id, review_score) VALUES ($1, $2)`,
				orderID, score,
			); err != nil {
				return err
			}
			reviewsCreated++
		}

		ordersCreated++
		if ordersCreated%1000 == 0 {
			fmt.Printf("   📈 %d/%d commandes...\n", ordersCreated, total)
		}
	}

	fmt.Printf("   ✅ %d commandes et %d avis créés\n", ordersCreated, reviewsCreated)
	return nil
}
