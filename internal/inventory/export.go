package inventory

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Albierrto/borts-books-sub000/models"

	"github.com/google/uuid"
)

type exportRow struct {
	Title     string
	Quantity  int
	Price     float64
	Threshold int
}

// ExportInventoryCSV writes a snapshot of the catalog (one row per
// product: title, stock, price, threshold) to a uniquely named temp file
// and returns its path. The caller streams it to the client and removes
// it afterwards; on any write failure no partial file is left behind.
func (s *Service) ExportInventoryCSV() (string, error) {
	var rows []exportRow
	err := s.db.Table("products").
		Select("products.title AS title, "+
			"COALESCE(stock_levels.quantity, 0) AS quantity, "+
			"products.price AS price, "+
			"COALESCE(inventory_settings.low_stock_threshold, ?) AS threshold",
			models.DefaultLowStockThreshold).
		Joins("LEFT JOIN stock_levels ON stock_levels.product_id = products.id").
		Joins("LEFT JOIN inventory_settings ON inventory_settings.product_id = products.id").
		Where("products.deleted_at IS NULL").
		Order("products.title asc").
		Scan(&rows).Error
	if err != nil {
		return "", fmt.Errorf("failed to query inventory snapshot: %w", err)
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("inventory-export-%s.csv", uuid.New().String()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	if err := writeInventoryCSV(f, rows); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to finalize export file: %w", err)
	}

	return path, nil
}

func writeInventoryCSV(out io.Writer, rows []exportRow) error {
	w := csv.NewWriter(out)

	if err := w.Write([]string{"title", "stock", "price", "threshold"}); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	for _, row := range rows {
		record := []string{
			row.Title,
			strconv.Itoa(row.Quantity),
			strconv.FormatFloat(row.Price, 'f', 2, 64),
			strconv.Itoa(row.Threshold),
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	return nil
}
