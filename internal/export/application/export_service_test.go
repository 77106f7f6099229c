package application

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/parquet-go/parquet-go"

	datasetapp "dashboard/internal/dataset/application"
	datasetdomain "dashboard/internal/dataset/domain"
	"dashboard/internal/export/domain"
	sharedinfra "dashboard/internal/shared/infrastructure"
	"dashboard/internal/testhelpers"
)

type fixtureLoader struct {
	tables *datasetdomain.RawTables
}

func (l *fixtureLoader) Load() (*datasetdomain.RawTables, error) {
	return l.tables, nil
}

func newExportService(tb testing.TB) *ExportService {
	tb.Helper()
	datasets := datasetapp.NewDatasetService(
		&fixtureLoader{tables: testhelpers.FixtureRawTables(tb)},
		sharedinfra.NewInMemoryCache(),
		"delivered",
	)
	return NewExportService(datasets)
}

// TestExportSalesToCSV vérifie l'export CSV complet et son parsing
func TestExportSalesToCSV(t *testing.T) {
	service := newExportService(t)

	data, err := service.ExportSalesToCSV(0)
	if err != nil {
		t.Fatalf("ExportSalesToCSV() error = %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse exported CSV: %v", err)
	}

	// En-tête + 4 lignes livrées (order-a x2, order-b, order-c)
	if len(records) != 5 {
		t.Fatalf("exported %d records, want 5", len(records))
	}

	headers := domain.CSVHeaders()
	for i, col := range headers {
		if records[0][i] != col {
			t.Errorf("header[%d] = %q, want %q", i, records[0][i], col)
		}
	}

	if records[1][0] != "order-a" || records[1][1] != "50.00" {
		t.Errorf("records[1] = %v, want order-a at 50.00", records[1])
	}
}

// TestExportSalesToCSV_Year vérifie la restriction annuelle
func TestExportSalesToCSV_Year(t *testing.T) {
	service := newExportService(t)

	data, err := service.ExportSalesToCSV(2022)
	if err != nil {
		t.Fatalf("ExportSalesToCSV() error = %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		t.Fatalf("parse exported CSV: %v", err)
	}

	// En-tête + order-c uniquement
	if len(records) != 2 {
		t.Fatalf("exported %d records, want 2", len(records))
	}
	if records[1][0] != "order-c" {
		t.Errorf("records[1][0] = %q, want order-c", records[1][0])
	}
}

// TestExportSalesToParquet vérifie l'export parquet et sa relecture
func TestExportSalesToParquet(t *testing.T) {
	service := newExportService(t)

	data, err := service.ExportSalesToParquet(2023)
	if err != nil {
		t.Fatalf("ExportSalesToParquet() error = %v", err)
	}

	rows, err := parquet.Read[domain.SalesParquetRow](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("read exported parquet: %v", err)
	}

	// order-a x2 + order-b
	if len(rows) != 3 {
		t.Fatalf("read %d rows, want 3", len(rows))
	}

	first := rows[0]
	if first.OrderID != "order-a" || first.Price != 50 {
		t.Errorf("rows[0] = %+v, want order-a at 50", first)
	}
	if first.ReviewScore == nil || *first.ReviewScore != 5.0 {
		t.Errorf("rows[0].ReviewScore = %v, want 5.0", first.ReviewScore)
	}
	if first.DeliveryDays == nil || *first.DeliveryDays != 2 {
		t.Errorf("rows[0].DeliveryDays = %v, want 2", first.DeliveryDays)
	}
}

// TestExportSales_InvalidYear vérifie le rejet des années négatives
func TestExportSales_InvalidYear(t *testing.T) {
	service := newExportService(t)

	if _, err := service.ExportSalesToCSV(-1); err == nil {
		t.Error("ExportSalesToCSV(-1) should return an error")
	}
	if _, err := service.ExportSalesToParquet(-1); err == nil {
		t.Error("ExportSalesToParquet(-1) should return an error")
	}
}

// BenchmarkExportSalesToCSV mesure l'export CSV complet
func BenchmarkExportSalesToCSV(b *testing.B) {
	service := newExportService(b)

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if _, err := service.ExportSalesToCSV(0); err != nil {
			b.Fatalf("ExportSalesToCSV() error = %v", err)
		}
	}
}
