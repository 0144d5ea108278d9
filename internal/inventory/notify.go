package inventory

// StockUpdate describes a committed stock mutation. It is fanned out to
// connected admin dashboards and, when a broker is configured, published
// for downstream consumers.
type StockUpdate struct {
	Type           string `json:"type"` // always "stock_update"
	ProductID      uint   `json:"product_id"`
	Action         string `json:"action"`
	QuantityChange int    `json:"quantity_change"`
	Quantity       int    `json:"quantity"`
	Actor          string `json:"actor"`
}

// ReorderEvent is emitted when a mutation leaves an auto-reorder product
// at or below its reorder point.
type ReorderEvent struct {
	Type         string `json:"type"` // always "reorder_needed"
	ProductID    uint   `json:"product_id"`
	Title        string `json:"title"`
	Quantity     int    `json:"quantity"`
	ReorderPoint int    `json:"reorder_point"`
	SupplierInfo string `json:"supplier_info"`
}

// Notifier receives events after a mutation commits. Implementations must
// not block; notification failures never roll back a stock change.
type Notifier interface {
	StockChanged(update StockUpdate)
	ReorderNeeded(event ReorderEvent)
}
