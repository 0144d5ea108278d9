package inventory

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Albierrto/borts-books-sub000/models"
)

// LowStockProduct is a product at or below its low-stock threshold.
type LowStockProduct struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
	Threshold     int     `json:"threshold"`
	Critical      bool    `json:"critical"`
}

// Overview summarizes the catalog-wide inventory position.
type Overview struct {
	TotalProducts int64   `json:"total_products"`
	TotalUnits    int64   `json:"total_units"`
	TotalValue    float64 `json:"total_value"`
}

// TopSeller aggregates a product's sale entries inside the window.
type TopSeller struct {
	ProductID uint    `json:"product_id"`
	Title     string  `json:"title"`
	UnitsSold int64   `json:"units_sold"`
	Revenue   float64 `json:"revenue"`
}

// Analytics is the dashboard payload for the trailing window.
type Analytics struct {
	Overview      Overview    `json:"overview"`
	LowStockCount int64       `json:"low_stock_count"`
	TopSellers    []TopSeller `json:"top_sellers"`
	WindowDays    int         `json:"window_days"`
}

// GetLowStockProducts returns products whose stock is at or below their
// configured threshold (the default threshold for unconfigured products),
// most urgent first. Each result carries the threshold it was compared
// against; products at or below the critical level are flagged.
func (s *Service) GetLowStockProducts(limit int) ([]LowStockProduct, error) {
	if limit <= 0 {
		limit = 20
	}

	cacheKey := fmt.Sprintf("low_stock:%d", limit)
	var cached []LowStockProduct
	if hit, err := s.cache.Get(context.Background(), cacheKey, &cached); err != nil {
		log.Printf("Low stock cache read failed: %v", err)
	} else if hit {
		return cached, nil
	}

	var rows []LowStockProduct
	err := s.db.Table("products").
		Select("products.id, products.title, products.price, "+
			"stock_levels.quantity AS stock_quantity, "+
			"COALESCE(inventory_settings.low_stock_threshold, ?) AS threshold",
			models.DefaultLowStockThreshold).
		Joins("JOIN stock_levels ON stock_levels.product_id = products.id").
		Joins("LEFT JOIN inventory_settings ON inventory_settings.product_id = products.id").
		Where("products.deleted_at IS NULL").
		Where("stock_levels.quantity <= COALESCE(inventory_settings.low_stock_threshold, ?)",
			models.DefaultLowStockThreshold).
		Order("stock_levels.quantity asc").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock products: %w", err)
	}

	for i := range rows {
		rows[i].Critical = rows[i].StockQuantity <= models.CriticalStockLevel
	}

	if err := s.cache.Set(context.Background(), cacheKey, rows); err != nil {
		log.Printf("Low stock cache write failed: %v", err)
	}

	return rows, nil
}

// GetInventoryAnalytics aggregates the catalog position and the top
// sellers over the trailing windowDays window. Deriving sales from the
// ledger keeps the report consistent with the audit trail.
func (s *Service) GetInventoryAnalytics(windowDays int) (Analytics, error) {
	if windowDays <= 0 {
		windowDays = 30
	}

	cacheKey := fmt.Sprintf("analytics:%d", windowDays)
	var cached Analytics
	if hit, err := s.cache.Get(context.Background(), cacheKey, &cached); err != nil {
		log.Printf("Analytics cache read failed: %v", err)
	} else if hit {
		return cached, nil
	}

	analytics := Analytics{WindowDays: windowDays}

	err := s.db.Table("products").
		Select("COUNT(products.id) AS total_products, " +
			"COALESCE(SUM(stock_levels.quantity), 0) AS total_units, " +
			"COALESCE(SUM(stock_levels.quantity * products.price), 0) AS total_value").
		Joins("LEFT JOIN stock_levels ON stock_levels.product_id = products.id").
		Where("products.deleted_at IS NULL").
		Scan(&analytics.Overview).Error
	if err != nil {
		return Analytics{}, fmt.Errorf("failed to aggregate inventory overview: %w", err)
	}

	err = s.db.Table("products").
		Joins("JOIN stock_levels ON stock_levels.product_id = products.id").
		Joins("LEFT JOIN inventory_settings ON inventory_settings.product_id = products.id").
		Where("products.deleted_at IS NULL").
		Where("stock_levels.quantity <= COALESCE(inventory_settings.low_stock_threshold, ?)",
			models.DefaultLowStockThreshold).
		Count(&analytics.LowStockCount).Error
	if err != nil {
		return Analytics{}, fmt.Errorf("failed to count low stock products: %w", err)
	}

	cutoff := time.Now().AddDate(0, 0, -windowDays)
	analytics.TopSellers = make([]TopSeller, 0)
	err = s.db.Table("inventory_logs").
		Select("inventory_logs.product_id, products.title, "+
			"SUM(-inventory_logs.quantity_change) AS units_sold, "+
			"SUM(-inventory_logs.quantity_change * products.price) AS revenue").
		Joins("JOIN products ON products.id = inventory_logs.product_id").
		Where("inventory_logs.action = ? AND inventory_logs.created_at >= ?", models.ActionSale, cutoff).
		Group("inventory_logs.product_id, products.title").
		Order("units_sold desc").
		Limit(10).
		Scan(&analytics.TopSellers).Error
	if err != nil {
		return Analytics{}, fmt.Errorf("failed to aggregate top sellers: %w", err)
	}

	if err := s.cache.Set(context.Background(), cacheKey, analytics); err != nil {
		log.Printf("Analytics cache write failed: %v", err)
	}

	return analytics, nil
}
