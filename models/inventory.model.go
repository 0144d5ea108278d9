package models

import (
	"time"
)

// Inventory log action types
const (
	ActionSale       = "sale"
	ActionRestock    = "restock"
	ActionAdjustment = "adjustment"
)

const (
	// DefaultLowStockThreshold applies to products without a settings row.
	DefaultLowStockThreshold = 5

	// CriticalStockLevel marks a low-stock product as critical.
	CriticalStockLevel = 2
)

// StockLevel holds the current on-hand quantity of a product. It is only
// written together with a matching InventoryLog entry, so the quantity
// always equals the sum of that product's log deltas.
type StockLevel struct {
	ProductID uint      `gorm:"primaryKey" json:"product_id"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StockLevel) TableName() string {
	return "stock_levels"
}

// InventoryLog is an append-only record of a single stock change.
// Entries are never updated or deleted; corrections are made by appending
// a compensating adjustment entry.
type InventoryLog struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	ProductID      uint      `gorm:"index;not null" json:"product_id"`
	Action         string    `gorm:"size:20;not null;index" json:"action"` // sale, restock, adjustment
	QuantityChange int       `gorm:"not null" json:"quantity_change"`
	Reason         string    `gorm:"size:255" json:"reason"`
	Actor          string    `gorm:"size:100" json:"actor"`
	CreatedAt      time.Time `gorm:"index" json:"created_at"`
}

func (InventoryLog) TableName() string {
	return "inventory_logs"
}

// InventorySettings is the per-product threshold configuration consulted
// by low-stock detection and auto-reorder notifications.
type InventorySettings struct {
	ProductID         uint      `gorm:"primaryKey" json:"product_id"`
	LowStockThreshold int       `gorm:"default:5" json:"low_stock_threshold"`
	ReorderPoint      int       `gorm:"default:10" json:"reorder_point"`
	MaxStockLevel     int       `gorm:"default:100" json:"max_stock_level"`
	SupplierInfo      string    `gorm:"type:text" json:"supplier_info"`
	AutoReorder       bool      `gorm:"default:false" json:"auto_reorder"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (InventorySettings) TableName() string {
	return "inventory_settings"
}
