package inventory

import (
	"fmt"
	"time"

	"github.com/Albierrto/borts-books-sub000/models"

	"gorm.io/gorm"
)

// Ledger is the append-only record of stock changes. Append is the only
// mutation; entries are never updated or deleted. Corrections are made by
// appending a compensating adjustment entry.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Append writes a new ledger entry using the given transaction handle so
// the entry commits atomically with its stock mutation.
func (l *Ledger) Append(tx *gorm.DB, entry *models.InventoryLog) error {
	if err := tx.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append ledger entry: %w", err)
	}
	return nil
}

// QueryByProduct returns a product's entries, newest first. A zero since
// returns the full history.
func (l *Ledger) QueryByProduct(productID uint, since time.Time) ([]models.InventoryLog, error) {
	query := l.db.Where("product_id = ?", productID)
	if !since.IsZero() {
		query = query.Where("created_at >= ?", since)
	}

	var entries []models.InventoryLog
	if err := query.Order("created_at desc, id desc").Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to query ledger for product %d: %w", productID, err)
	}
	return entries, nil
}

// QueryRecent returns the most recent entries across all products.
func (l *Ledger) QueryRecent(limit int) ([]models.InventoryLog, error) {
	if limit <= 0 {
		limit = 50
	}

	var entries []models.InventoryLog
	if err := l.db.Order("created_at desc, id desc").Limit(limit).Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to query recent ledger entries: %w", err)
	}
	return entries, nil
}

// SumForProduct returns the sum of a product's deltas. Used by the
// consistency check: the sum must always equal the current stock level.
func (l *Ledger) SumForProduct(productID uint) (int, error) {
	var total struct {
		Sum int
	}
	err := l.db.Model(&models.InventoryLog{}).
		Select("COALESCE(SUM(quantity_change), 0) as sum").
		Where("product_id = ?", productID).
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum ledger for product %d: %w", productID, err)
	}
	return total.Sum, nil
}
