package infrastructure

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"dashboard/internal/dataset/domain"
)

// Noms de fichiers attendus dans le répertoire source
const (
	ordersFile     = "orders.csv"
	orderItemsFile = "order_items.csv"
	customersFile  = "customers.csv"
	productsFile   = "products.csv"
	reviewsFile    = "reviews.csv"
)

// CSVLoader charge les tables brutes depuis des fichiers CSV
// Les fichiers des sources optionnelles peuvent manquer; les colonnes
// correspondantes seront alors absentes du dataset de ventes
type CSVLoader struct {
	dir string
}

// NewCSVLoader crée un nouveau loader CSV
func NewCSVLoader(dir string) *CSVLoader {
	return &CSVLoader{dir: dir}
}

// Load lit toutes les sources et les valide
func (l *CSVLoader) Load() (*domain.RawTables, error) {
	orders, err := l.readTable(ordersFile, true)
	if err != nil {
		return nil, err
	}
	orderItems, err := l.readTable(orderItemsFile, true)
	if err != nil {
		return nil, err
	}
	customers, err := l.readTable(customersFile, false)
	if err != nil {
		return nil, err
	}
	products, err := l.readTable(productsFile, false)
	if err != nil {
		return nil, err
	}
	reviews, err := l.readTable(reviewsFile, false)
	if err != nil {
		return nil, err
	}

	return domain.NewRawTables(orders, orderItems, customers, products, reviews)
}

// readTable lit un fichier CSV en table brute
// La première ligne porte les noms de colonnes; une cellule vide devient
// une valeur absente
func (l *CSVLoader) readTable(filename string, required bool) (*domain.RawTable, error) {
	path := filepath.Join(l.dir, filename)

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) && !required {
			return nil, nil
		}
		return nil, fmt.Errorf("open %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", filename, err)
	}

	var rows []domain.Record
	for {
		fields, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", filename, err)
		}

		record := make(domain.Record, len(header))
		for i, col := range header {
			if i >= len(fields) || fields[i] == "" {
				continue
			}
			record[col] = fields[i]
		}
		rows = append(rows, record)
	}

	name := filename[:len(filename)-len(filepath.Ext(filename))]
	return domain.NewRawTable(name, header, rows), nil
}
