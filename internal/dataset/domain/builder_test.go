package domain

import (
	"reflect"
	"testing"
	"time"

	shareddomain "dashboard/internal/shared/domain"
)

func fixtureTables(t testing.TB) *RawTables {
	t.Helper()

	orders := NewRawTable("orders",
		[]string{ColOrderID, ColCustomerID, ColOrderStatus, ColPurchaseTimestamp, ColDeliveredTimestamp},
		[]Record{
			{
				ColOrderID:            "order-a",
				ColCustomerID:         "customer-1",
				ColOrderStatus:        "delivered",
				ColPurchaseTimestamp:  time.Date(2023, 3, 1, 10, 0, 0, 0, time.UTC),
				ColDeliveredTimestamp: time.Date(2023, 3, 3, 10, 0, 0, 0, time.UTC),
			},
			{
				ColOrderID:            "order-b",
				ColCustomerID:         "customer-2",
				ColOrderStatus:        "delivered",
				ColPurchaseTimestamp:  time.Date(2023, 5, 10, 9, 0, 0, 0, time.UTC),
				ColDeliveredTimestamp: time.Date(2023, 5, 19, 9, 0, 0, 0, time.UTC),
			},
			{
				ColOrderID:           "order-d",
				ColCustomerID:        "customer-2",
				ColOrderStatus:       "shipped",
				ColPurchaseTimestamp: time.Date(2023, 7, 1, 12, 0, 0, 0, time.UTC),
			},
		})

	items := NewRawTable("order_items",
		[]string{ColOrderID, ColProductID, ColPrice},
		[]Record{
			{ColOrderID: "order-a", ColProductID: "product-1", ColPrice: 50.0},
			{ColOrderID: "order-a", ColProductID: "product-2", ColPrice: 30.0},
			{ColOrderID: "order-b", ColProductID: "product-1", ColPrice: 20.0},
			{ColOrderID: "order-d", ColProductID: "product-1", ColPrice: 15.0},
			{ColOrderID: "order-zz", ColProductID: "product-1", ColPrice: 99.0},
		})

	customers := NewRawTable("customers",
		[]string{ColCustomerID, ColCustomerState},
		[]Record{
			{ColCustomerID: "customer-1", ColCustomerState: "SP"},
			{ColCustomerID: "customer-2", ColCustomerState: "RJ"},
		})

	products := NewRawTable("products",
		[]string{ColProductID, ColProductCategory},
		[]Record{
			{ColProductID: "product-1", ColProductCategory: "electronics"},
			{ColProductID: "product-2", ColProductCategory: "furniture"},
		})

	reviews := NewRawTable("reviews",
		[]string{ColOrderID, ColReviewScore},
		[]Record{
			{ColOrderID: "order-a", ColReviewScore: 5.0},
			{ColOrderID: "order-b", ColReviewScore: 3.0},
		})

	tables, err := NewRawTables(orders, items, customers, products, reviews)
	if err != nil {
		t.Fatalf("NewRawTables() error = %v", err)
	}
	return tables
}

// TestBuildSalesDataset vérifie la jointure complète avec filtre de statut
func TestBuildSalesDataset(t *testing.T) {
	dataset, err := BuildSalesDataset(fixtureTables(t), BuildOptions{Status: "delivered"})
	if err != nil {
		t.Fatalf("BuildSalesDataset() error = %v", err)
	}

	// order-d (shipped) et l'article orphelin sont exclus
	if dataset.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", dataset.Len())
	}

	columns := dataset.Columns()
	if !columns.CustomerState || !columns.ProductCategory || !columns.ReviewScore || !columns.DeliveryDays {
		t.Errorf("Columns() = %+v, want all flags true", columns)
	}

	rows := dataset.Rows()
	first := rows[0]
	if first.OrderID != "order-a" || first.Price != 50.0 {
		t.Errorf("rows[0] = %+v, want order-a at 50.0", first)
	}
	if first.PurchaseYear != 2023 || first.PurchaseMonth != 3 {
		t.Errorf("rows[0] period = %d-%d, want 2023-3", first.PurchaseYear, first.PurchaseMonth)
	}
	if first.CustomerState != "SP" || first.ProductCategory != "electronics" {
		t.Errorf("rows[0] joins = %q/%q, want SP/electronics", first.CustomerState, first.ProductCategory)
	}
	if first.ReviewScore == nil || *first.ReviewScore != 5.0 {
		t.Errorf("rows[0].ReviewScore = %v, want 5.0", first.ReviewScore)
	}
	if first.DeliveryDays == nil || *first.DeliveryDays != 2 {
		t.Errorf("rows[0].DeliveryDays = %v, want 2", first.DeliveryDays)
	}
}

// TestBuildSalesDataset_OrphanItemDropped vérifie qu'un article sans
// commande parente est abandonné, jamais complété par des valeurs nulles
func TestBuildSalesDataset_OrphanItemDropped(t *testing.T) {
	dataset, err := BuildSalesDataset(fixtureTables(t), BuildOptions{})
	if err != nil {
		t.Fatalf("BuildSalesDataset() error = %v", err)
	}

	var total float64
	for _, row := range dataset.Rows() {
		if row.OrderID == "order-zz" {
			t.Fatal("orphan item should be dropped")
		}
		total += row.Price
	}
	// 50 + 30 + 20 + 15: l'article orphelin à 99 n'apparaît jamais
	if total != 115.0 {
		t.Errorf("total price = %v, want 115.0", total)
	}
}

// TestBuildSalesDataset_PeriodFilter vérifie la combinaison ET des
// filtres statut + période
func TestBuildSalesDataset_PeriodFilter(t *testing.T) {
	period, _ := shareddomain.NewPeriod(2023, 3)
	dataset, err := BuildSalesDataset(fixtureTables(t), BuildOptions{Status: "delivered", Period: period})
	if err != nil {
		t.Fatalf("BuildSalesDataset() error = %v", err)
	}

	if dataset.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (order-a only)", dataset.Len())
	}
	for _, row := range dataset.Rows() {
		if row.OrderID != "order-a" {
			t.Errorf("unexpected row %s", row.OrderID)
		}
	}
}

// TestBuildSalesDataset_MissingOptionalTables vérifie la dégradation des
// colonnes quand les sources optionnelles manquent
func TestBuildSalesDataset_MissingOptionalTables(t *testing.T) {
	full := fixtureTables(t)
	tables, err := NewRawTables(full.Orders(), full.OrderItems(), nil, nil, nil)
	if err != nil {
		t.Fatalf("NewRawTables() error = %v", err)
	}

	dataset, err := BuildSalesDataset(tables, BuildOptions{Status: "delivered"})
	if err != nil {
		t.Fatalf("BuildSalesDataset() error = %v", err)
	}

	columns := dataset.Columns()
	if columns.CustomerState || columns.ProductCategory || columns.ReviewScore {
		t.Errorf("Columns() = %+v, want optional flags false", columns)
	}
	// Les lignes sont conservées malgré les colonnes absentes
	if dataset.Len() != 3 {
		t.Errorf("Len() = %d, want 3", dataset.Len())
	}
}

// TestBuildSalesDataset_NoDeliveredColumn vérifie le flag DeliveryDays
// quand la colonne de livraison n'existe pas dans la source
func TestBuildSalesDataset_NoDeliveredColumn(t *testing.T) {
	orders := NewRawTable("orders",
		[]string{ColOrderID, ColCustomerID, ColOrderStatus, ColPurchaseTimestamp},
		[]Record{
			{
				ColOrderID:           "order-a",
				ColCustomerID:        "customer-1",
				ColOrderStatus:       "delivered",
				ColPurchaseTimestamp: time.Date(2023, 3, 1, 10, 0, 0, 0, time.UTC),
			},
		})
	items := NewRawTable("order_items",
		[]string{ColOrderID, ColPrice},
		[]Record{{ColOrderID: "order-a", ColPrice: 50.0}})

	tables, err := NewRawTables(orders, items, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewRawTables() error = %v", err)
	}

	dataset, err := BuildSalesDataset(tables, BuildOptions{})
	if err != nil {
		t.Fatalf("BuildSalesDataset() error = %v", err)
	}
	if dataset.Columns().DeliveryDays {
		t.Error("Columns().DeliveryDays = true without delivered_timestamp column")
	}
}

// TestBuildSalesDataset_NegativeDeliveryInterval vérifie qu'une livraison
// antérieure à l'achat laisse le délai absent
func TestBuildSalesDataset_NegativeDeliveryInterval(t *testing.T) {
	orders := NewRawTable("orders",
		[]string{ColOrderID, ColCustomerID, ColOrderStatus, ColPurchaseTimestamp, ColDeliveredTimestamp},
		[]Record{
			{
				ColOrderID:            "order-x",
				ColCustomerID:         "customer-1",
				ColOrderStatus:        "delivered",
				ColPurchaseTimestamp:  time.Date(2023, 3, 10, 0, 0, 0, 0, time.UTC),
				ColDeliveredTimestamp: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC),
			},
		})
	items := NewRawTable("order_items",
		[]string{ColOrderID, ColPrice},
		[]Record{{ColOrderID: "order-x", ColPrice: 10.0}})

	tables, err := NewRawTables(orders, items, nil, nil, nil)
	if err != nil {
		t.Fatalf("NewRawTables() error = %v", err)
	}

	dataset, err := BuildSalesDataset(tables, BuildOptions{})
	if err != nil {
		t.Fatalf("BuildSalesDataset() error = %v", err)
	}
	if dataset.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", dataset.Len())
	}
	if dataset.Rows()[0].DeliveryDays != nil {
		t.Error("DeliveryDays should be absent for a negative interval")
	}
}

// TestBuildSalesDataset_InvalidReviewScore vérifie qu'une note hors
// bornes est ignorée et que la première note valide l'emporte
func TestBuildSalesDataset_InvalidReviewScore(t *testing.T) {
	full := fixtureTables(t)
	reviews := NewRawTable("reviews",
		[]string{ColOrderID, ColReviewScore},
		[]Record{
			{ColOrderID: "order-a", ColReviewScore: 9.0},
			{ColOrderID: "order-b", ColReviewScore: 4.0},
			{ColOrderID: "order-b", ColReviewScore: 1.0},
		})
	tables, err := NewRawTables(full.Orders(), full.OrderItems(), nil, nil, reviews)
	if err != nil {
		t.Fatalf("NewRawTables() error = %v", err)
	}

	dataset, err := BuildSalesDataset(tables, BuildOptions{Status: "delivered"})
	if err != nil {
		t.Fatalf("BuildSalesDataset() error = %v", err)
	}

	for _, row := range dataset.Rows() {
		switch row.OrderID {
		case "order-a":
			if row.ReviewScore != nil {
				t.Errorf("order-a score = %v, want absent (out of range)", *row.ReviewScore)
			}
		case "order-b":
			if row.ReviewScore == nil || *row.ReviewScore != 4.0 {
				t.Errorf("order-b score = %v, want 4.0 (first valid wins)", row.ReviewScore)
			}
		}
	}
}

// TestBuildSalesDataset_Deterministic vérifie que deux constructions
// identiques produisent le même résultat
func TestBuildSalesDataset_Deterministic(t *testing.T) {
	tables := fixtureTables(t)

	first, err := BuildSalesDataset(tables, BuildOptions{Status: "delivered"})
	if err != nil {
		t.Fatalf("BuildSalesDataset() error = %v", err)
	}
	second, err := BuildSalesDataset(tables, BuildOptions{Status: "delivered"})
	if err != nil {
		t.Fatalf("BuildSalesDataset() error = %v", err)
	}

	if !reflect.DeepEqual(first.Rows(), second.Rows()) {
		t.Error("two builds from the same sources should be identical")
	}
	if !reflect.DeepEqual(first.Years(), second.Years()) {
		t.Error("years should be identical across builds")
	}
}

// BenchmarkBuildSalesDataset mesure la construction du dataset
func BenchmarkBuildSalesDataset(b *testing.B) {
	tables := fixtureTables(b)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, _ = BuildSalesDataset(tables, BuildOptions{Status: "delivered"})
	}
}
