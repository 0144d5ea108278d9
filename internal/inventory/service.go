// Package inventory implements the stock management core of the Bort's
// Books back-office: every stock quantity change flows through the
// Service, which pairs the mutation with an append-only ledger entry in a
// single transaction.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/Albierrto/borts-books-sub000/internal/cache"
	"github.com/Albierrto/borts-books-sub000/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Service is the single point of mutation for stock quantities.
type Service struct {
	db       *gorm.DB
	ledger   *Ledger
	notifier Notifier
	cache    *cache.Cache
}

// Option configures optional Service collaborators.
type Option func(*Service)

// WithNotifier wires post-commit event notifications.
func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notifier = n }
}

// WithCache wires the read cache for analytics and low-stock views.
func WithCache(c *cache.Cache) Option {
	return func(s *Service) { s.cache = c }
}

func NewService(db *gorm.DB, opts ...Option) *Service {
	s := &Service{
		db:     db,
		ledger: NewLedger(db),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ledger exposes the read side of the stock ledger.
func (s *Service) Ledger() *Ledger {
	return s.ledger
}

// Restock increases a product's stock. Quantity must be positive.
func (s *Service) Restock(productID uint, quantity int, reason, actor string) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if reason == "" {
		reason = "Manual restock"
	}
	return s.applyChange(productID, quantity, models.ActionRestock, reason, actor)
}

// RecordSale decreases a product's stock for a checkout. A sale whose
// quantity exceeds the current stock is rejected, nothing is written.
func (s *Service) RecordSale(productID uint, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return s.applyChange(productID, -quantity, models.ActionSale, "Sale", "storefront")
}

// AdjustStock applies a signed correction. The delta may be negative but
// must not drive the stock level below zero.
func (s *Service) AdjustStock(productID uint, delta int, reason, actor string) error {
	if delta == 0 {
		return ErrInvalidDelta
	}
	if reason == "" {
		reason = "Manual adjustment"
	}
	return s.applyChange(productID, delta, models.ActionAdjustment, reason, actor)
}

// applyChange performs the stock mutation and the ledger append in one
// transaction. The stock column is updated with an atomic increment
// guarded against going negative, so concurrent mutations on the same
// product serialize in the database instead of racing a read-modify-write.
func (s *Service) applyChange(productID uint, delta int, action, reason, actor string) error {
	if productID == 0 {
		return ErrProductNotFound
	}

	var newQuantity int
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.Select("id").First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return fmt.Errorf("failed to load product %d: %w", productID, err)
		}

		result := tx.Model(&models.StockLevel{}).
			Where("product_id = ? AND quantity + ? >= 0", productID, delta).
			Update("quantity", gorm.Expr("quantity + ?", delta))
		if result.Error != nil {
			return fmt.Errorf("failed to update stock for product %d: %w", productID, result.Error)
		}

		if result.RowsAffected == 0 {
			// Either no stock row exists yet or the change would drive
			// the quantity negative.
			var level models.StockLevel
			err := tx.First(&level, "product_id = ?", productID).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				if delta < 0 {
					return ErrInsufficientStock
				}
				if err := tx.Create(&models.StockLevel{ProductID: productID, Quantity: delta}).Error; err != nil {
					return fmt.Errorf("failed to create stock level for product %d: %w", productID, err)
				}
			case err != nil:
				return fmt.Errorf("failed to load stock level for product %d: %w", productID, err)
			default:
				return ErrInsufficientStock
			}
		}

		if err := s.ledger.Append(tx, &models.InventoryLog{
			ProductID:      productID,
			Action:         action,
			QuantityChange: delta,
			Reason:         reason,
			Actor:          actor,
		}); err != nil {
			return err
		}

		var level models.StockLevel
		if err := tx.First(&level, "product_id = ?", productID).Error; err != nil {
			return fmt.Errorf("failed to read back stock level for product %d: %w", productID, err)
		}
		newQuantity = level.Quantity
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidateViews()
	s.notifyChange(productID, delta, action, actor, newQuantity)
	return nil
}

// notifyChange fans the committed mutation out to the admin feed and, for
// auto-reorder products that dropped to their reorder point, emits a
// reorder event.
func (s *Service) notifyChange(productID uint, delta int, action, actor string, quantity int) {
	if s.notifier == nil {
		return
	}

	s.notifier.StockChanged(StockUpdate{
		Type:           "stock_update",
		ProductID:      productID,
		Action:         action,
		QuantityChange: delta,
		Quantity:       quantity,
		Actor:          actor,
	})

	if delta >= 0 {
		return
	}

	var settings models.InventorySettings
	if err := s.db.First(&settings, "product_id = ?", productID).Error; err != nil {
		return
	}
	if !settings.AutoReorder || quantity > settings.ReorderPoint {
		return
	}

	var product models.Product
	if err := s.db.Select("id, title").First(&product, productID).Error; err != nil {
		log.Printf("Failed to load product %d for reorder event: %v", productID, err)
		return
	}

	s.notifier.ReorderNeeded(ReorderEvent{
		Type:         "reorder_needed",
		ProductID:    productID,
		Title:        product.Title,
		Quantity:     quantity,
		ReorderPoint: settings.ReorderPoint,
		SupplierInfo: settings.SupplierInfo,
	})
}

func (s *Service) invalidateViews() {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(context.Background(), "analytics:*", "low_stock:*"); err != nil {
		log.Printf("Failed to invalidate inventory cache: %v", err)
	}
}

// SettingsUpdate carries the recognized per-product threshold settings.
type SettingsUpdate struct {
	LowStockThreshold int    `json:"low_stock_threshold"`
	ReorderPoint      int    `json:"reorder_point"`
	MaxStockLevel     int    `json:"max_stock_level"`
	SupplierInfo      string `json:"supplier_info"`
	AutoReorder       bool   `json:"auto_reorder"`
}

// SetProductInventorySettings upserts a product's threshold
// configuration. The threshold ordering (threshold <= reorder point <=
// max stock level) is enforced before any write.
func (s *Service) SetProductInventorySettings(productID uint, upd SettingsUpdate) error {
	if productID == 0 {
		return ErrProductNotFound
	}
	if upd.LowStockThreshold < 0 || upd.ReorderPoint < 0 || upd.MaxStockLevel < 0 {
		return fmt.Errorf("%w: values must be non-negative", ErrInvalidSettings)
	}
	if upd.LowStockThreshold > upd.ReorderPoint || upd.ReorderPoint > upd.MaxStockLevel {
		return fmt.Errorf("%w: require threshold <= reorder point <= max stock level", ErrInvalidSettings)
	}

	var product models.Product
	if err := s.db.Select("id").First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to load product %d: %w", productID, err)
	}

	settings := models.InventorySettings{
		ProductID:         productID,
		LowStockThreshold: upd.LowStockThreshold,
		ReorderPoint:      upd.ReorderPoint,
		MaxStockLevel:     upd.MaxStockLevel,
		SupplierInfo:      upd.SupplierInfo,
		AutoReorder:       upd.AutoReorder,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "product_id"}},
		UpdateAll: true,
	}).Create(&settings).Error
	if err != nil {
		return fmt.Errorf("failed to save settings for product %d: %w", productID, err)
	}

	s.invalidateViews()
	return nil
}

// GetProductInventorySettings returns a product's settings, or the
// defaults when no settings row exists.
func (s *Service) GetProductInventorySettings(productID uint) (models.InventorySettings, error) {
	var settings models.InventorySettings
	err := s.db.First(&settings, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.InventorySettings{
			ProductID:         productID,
			LowStockThreshold: models.DefaultLowStockThreshold,
			ReorderPoint:      10,
			MaxStockLevel:     100,
		}, nil
	}
	if err != nil {
		return models.InventorySettings{}, fmt.Errorf("failed to load settings for product %d: %w", productID, err)
	}
	return settings, nil
}

// CurrentStock returns the on-hand quantity for a product. Products
// without a stock row report zero.
func (s *Service) CurrentStock(productID uint) (int, error) {
	var level models.StockLevel
	err := s.db.First(&level, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to load stock level for product %d: %w", productID, err)
	}
	return level.Quantity, nil
}
