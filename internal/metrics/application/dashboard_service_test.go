package application

import (
	"math"
	"testing"

	datasetapp "dashboard/internal/dataset/application"
	datasetdomain "dashboard/internal/dataset/domain"
	"dashboard/internal/metrics/domain"
	sharedinfra "dashboard/internal/shared/infrastructure"
	"dashboard/internal/testhelpers"
)

// fixtureLoader sert des tables brutes fixes et compte les chargements
type fixtureLoader struct {
	tables *datasetdomain.RawTables
	loads  int
}

func (l *fixtureLoader) Load() (*datasetdomain.RawTables, error) {
	l.loads++
	return l.tables, nil
}

func newDashboardService(t *testing.T, tables *datasetdomain.RawTables) *DashboardService {
	t.Helper()
	datasets := datasetapp.NewDatasetService(&fixtureLoader{tables: tables}, sharedinfra.NewInMemoryCache(), "delivered")
	return NewDashboardService(datasets, sharedinfra.NewInMemoryCache())
}

// TestDashboardService_Overview vérifie l'assemblage complet d'une année
func TestDashboardService_Overview(t *testing.T) {
	service := newDashboardService(t, testhelpers.FixtureRawTables(t))

	overview, err := service.Overview(2023)
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}

	if overview.Year() != 2023 {
		t.Errorf("Year() = %d, want 2023", overview.Year())
	}
	if overview.PreviousYear() != 2022 {
		t.Errorf("PreviousYear() = %d, want 2022", overview.PreviousYear())
	}

	revenue := overview.Revenue()
	if revenue == nil {
		t.Fatal("Revenue() = nil")
	}
	if revenue.TotalRevenue().Amount() != 100 {
		t.Errorf("TotalRevenue() = %v, want 100", revenue.TotalRevenue().Amount())
	}
	if revenue.Previous() == nil {
		t.Error("Previous() = nil, want 2022 comparison")
	}

	if len(overview.MonthlyTrends()) != 2 {
		t.Errorf("MonthlyTrends() = %d entries, want 2", len(overview.MonthlyTrends()))
	}
	if len(overview.PreviousTrends()) != 1 {
		t.Errorf("PreviousTrends() = %d entries, want 1", len(overview.PreviousTrends()))
	}
	if math.Abs(overview.AverageMonthlyGrowth()+37.5) > 1e-9 {
		t.Errorf("AverageMonthlyGrowth() = %v, want -37.5", overview.AverageMonthlyGrowth())
	}

	if overview.Satisfaction() == nil || overview.Satisfaction().AverageReviewScore() != 4.0 {
		t.Errorf("Satisfaction() = %+v, want average 4.0", overview.Satisfaction())
	}
	if overview.Delivery() == nil || overview.Delivery().AverageDeliveryDays() != 5.5 {
		t.Errorf("Delivery() = %+v, want average 5.5", overview.Delivery())
	}
	if overview.PreviousDelivery() == nil || overview.PreviousDelivery().AverageDeliveryDays() != 5.0 {
		t.Errorf("PreviousDelivery() = %+v, want average 5.0", overview.PreviousDelivery())
	}

	buckets := overview.SatisfactionBySpeed()
	if buckets == nil {
		t.Fatal("SatisfactionBySpeed() = nil")
	}
	if buckets[domain.BucketFast] != 5.0 || buckets[domain.BucketSlow] != 3.0 {
		t.Errorf("SatisfactionBySpeed() = %v", buckets)
	}
	if _, present := buckets[domain.BucketMedium]; present {
		t.Error("bucket 4-7 days should be absent")
	}

	if len(overview.TopCategories()) != 2 {
		t.Errorf("TopCategories() = %d entries, want 2", len(overview.TopCategories()))
	}
	if len(overview.RevenueByState()) != 2 {
		t.Errorf("RevenueByState() = %d entries, want 2", len(overview.RevenueByState()))
	}
}

// TestDashboardService_Overview_DegradedSources vérifie que les sources
// optionnelles absentes laissent leurs métriques indisponibles sans
// bloquer les autres
func TestDashboardService_Overview_DegradedSources(t *testing.T) {
	full := testhelpers.FixtureRawTables(t)
	tables, err := datasetdomain.NewRawTables(full.Orders(), full.OrderItems(), nil, nil, nil)
	if err != nil {
		t.Fatalf("NewRawTables() error = %v", err)
	}

	service := newDashboardService(t, tables)
	overview, err := service.Overview(2023)
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}

	// Les métriques de revenus restent calculables
	if overview.Revenue() == nil || overview.Revenue().TotalRevenue().Amount() != 100 {
		t.Errorf("Revenue() = %+v, want total 100", overview.Revenue())
	}

	// Les métriques dépendant des sources absentes sont indisponibles
	if overview.Satisfaction() != nil {
		t.Error("Satisfaction() should be nil without reviews")
	}
	if overview.SatisfactionBySpeed() != nil {
		t.Error("SatisfactionBySpeed() should be nil without reviews")
	}
	if overview.TopCategories() != nil {
		t.Error("TopCategories() should be nil without products")
	}
	if overview.RevenueByState() != nil {
		t.Error("RevenueByState() should be nil without customers")
	}

	// La colonne de livraison existe toujours dans orders
	if overview.Delivery() == nil {
		t.Error("Delivery() should be available")
	}
}

// TestDashboardService_Overview_Cached vérifie le cache de la vue
// d'ensemble
func TestDashboardService_Overview_Cached(t *testing.T) {
	service := newDashboardService(t, testhelpers.FixtureRawTables(t))

	first, err := service.Overview(2023)
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}
	second, err := service.Overview(2023)
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}
	if first != second {
		t.Error("Overview() should return the cached instance")
	}
}

// TestDashboardService_InvalidateYear vérifie l'invalidation ciblée
func TestDashboardService_InvalidateYear(t *testing.T) {
	service := newDashboardService(t, testhelpers.FixtureRawTables(t))

	first, err := service.Overview(2023)
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}

	service.InvalidateYear(2023)

	second, err := service.Overview(2023)
	if err != nil {
		t.Fatalf("Overview() error = %v", err)
	}
	if first == second {
		t.Error("Overview() after InvalidateYear() should recompute")
	}
}

// BenchmarkDashboardService_Overview mesure la vue d'ensemble sans cache
func BenchmarkDashboardService_Overview(b *testing.B) {
	datasets := datasetapp.NewDatasetService(
		&fixtureLoader{tables: testhelpers.FixtureRawTables(b)},
		sharedinfra.NewInMemoryCache(),
		"delivered",
	)
	service := NewDashboardService(datasets, sharedinfra.NewInMemoryCache())

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		service.InvalidateYear(2023)
		if _, err := service.Overview(2023); err != nil {
			b.Fatalf("Overview() error = %v", err)
		}
	}
}
