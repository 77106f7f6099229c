package application

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/parquet-go/parquet-go"

	datasetapp "dashboard/internal/dataset/application"
	datasetdomain "dashboard/internal/dataset/domain"
	"dashboard/internal/export/domain"
	sharedinfra "dashboard/internal/shared/infrastructure"
)

// ExportService génère des exports CSV et parquet du dataset de ventes
type ExportService struct {
	datasets    *datasetapp.DatasetService
	workerCount int
	batchSize   int
}

// NewExportService crée une nouvelle instance de ExportService
func NewExportService(datasets *datasetapp.DatasetService) *ExportService {
	return &ExportService{
		datasets:    datasets,
		workerCount: 4,
		batchSize:   1000,
	}
}

// ExportSalesToCSV exporte le dataset de ventes en CSV, en mémoire
// year > 0 restreint à une année; le formatage des lignes est réparti
// par lots sur un pool de workers, l'écriture finale préserve l'ordre
func (s *ExportService) ExportSalesToCSV(year int) ([]byte, error) {
	job, err := domain.NewExportJob(domain.ExportFormatCSV, year)
	if err != nil {
		return nil, err
	}

	rows, err := s.exportRows(job.Year())
	if err != nil {
		return nil, err
	}

	batches := s.formatBatches(rows)

	buffer := bytes.NewBuffer(make([]byte, 0, 1024*1024)) // 1 MB initial
	writer := csv.NewWriter(buffer)

	if err := writer.Write(domain.CSVHeaders()); err != nil {
		return nil, err
	}
	for _, batch := range batches {
		for _, record := range batch {
			if err := writer.Write(record); err != nil {
				return nil, err
			}
		}
		writer.Flush()
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// formatBatches formate les lignes par lots en parallèle
// Chaque tâche du pool remplit son propre emplacement: l'ordre des lots
// est conservé
func (s *ExportService) formatBatches(rows []datasetdomain.SalesRow) [][][]string {
	if len(rows) == 0 {
		return nil
	}

	batchCount := (len(rows) + s.batchSize - 1) / s.batchSize
	batches := make([][][]string, batchCount)

	pool := sharedinfra.NewWorkerPool(s.workerCount)
	pool.Start()

	for i := 0; i < batchCount; i++ {
		i := i
		start := i * s.batchSize
		end := start + s.batchSize
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]

		_ = pool.Submit(func() error {
			records := make([][]string, 0, len(chunk))
			for _, row := range chunk {
				records = append(records, domain.RowToCSV(row))
			}
			batches[i] = records
			return nil
		})
	}

	// Le formatage n'échoue pas; Wait ne sert qu'à la synchronisation
	_ = pool.Wait()
	return batches
}

// ExportSalesToParquet exporte le dataset de ventes en parquet, en
// mémoire
func (s *ExportService) ExportSalesToParquet(year int) ([]byte, error) {
	job, err := domain.NewExportJob(domain.ExportFormatParquet, year)
	if err != nil {
		return nil, err
	}

	rows, err := s.exportRows(job.Year())
	if err != nil {
		return nil, err
	}

	buffer := bytes.NewBuffer(make([]byte, 0, 1024*1024))
	writer := parquet.NewGenericWriter[domain.SalesParquetRow](buffer)

	for start := 0; start < len(rows); start += s.batchSize {
		end := start + s.batchSize
		if end > len(rows) {
			end = len(rows)
		}

		batch := make([]domain.SalesParquetRow, 0, end-start)
		for _, row := range rows[start:end] {
			batch = append(batch, domain.NewSalesParquetRow(row))
		}
		if _, err := writer.Write(batch); err != nil {
			return nil, fmt.Errorf("write parquet rows: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close parquet writer: %w", err)
	}
	return buffer.Bytes(), nil
}

// exportRows retourne les lignes à exporter (vue sur le dataset de base)
func (s *ExportService) exportRows(year int) ([]datasetdomain.SalesRow, error) {
	dataset, err := s.datasets.Base()
	if err != nil {
		return nil, err
	}
	if year > 0 {
		return dataset.YearRows(year), nil
	}
	return dataset.Rows(), nil
}
