package handlers

import (
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/Albierrto/borts-books-sub000/internal/inventory"
	"github.com/Albierrto/borts-books-sub000/models"
	"github.com/Albierrto/borts-books-sub000/utils"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	Inventory *inventory.Service
}

func NewInventoryHandler(inv *inventory.Service) *InventoryHandler {
	return &InventoryHandler{Inventory: inv}
}

// RestockRequest
type RestockRequest struct {
	ProductID uint   `json:"product_id"`
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason"`
}

// AdjustRequest
type AdjustRequest struct {
	ProductID uint   `json:"product_id"`
	Delta     int    `json:"delta"`
	Reason    string `json:"reason"`
}

// SaleRequest
type SaleRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// Restock - POST /api/admin/inventory/restock
func (h *InventoryHandler) Restock(c *fiber.Ctx) error {
	var req RestockRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if err := h.Inventory.Restock(req.ProductID, req.Quantity, req.Reason, utils.Actor(c)); err != nil {
		return inventoryError(c, err)
	}

	stock, _ := h.Inventory.CurrentStock(req.ProductID)
	return c.JSON(fiber.Map{"message": "Stock updated", "data": fiber.Map{
		"product_id": req.ProductID,
		"quantity":   stock,
	}})
}

// AdjustStock - POST /api/admin/inventory/adjust
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	var req AdjustRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if err := h.Inventory.AdjustStock(req.ProductID, req.Delta, req.Reason, utils.Actor(c)); err != nil {
		return inventoryError(c, err)
	}

	stock, _ := h.Inventory.CurrentStock(req.ProductID)
	return c.JSON(fiber.Map{"message": "Stock adjusted", "data": fiber.Map{
		"product_id": req.ProductID,
		"quantity":   stock,
	}})
}

// RecordSale - POST /api/inventory/sale
// Used by the checkout flow; rejects sales that exceed current stock.
func (h *InventoryHandler) RecordSale(c *fiber.Ctx) error {
	var req SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if err := h.Inventory.RecordSale(req.ProductID, req.Quantity); err != nil {
		return inventoryError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Sale recorded"})
}

// UpdateSettings - PUT /api/admin/inventory/settings/:productId
func (h *InventoryHandler) UpdateSettings(c *fiber.Ctx) error {
	productID, _ := strconv.Atoi(c.Params("productId"))

	var req inventory.SettingsUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if err := h.Inventory.SetProductInventorySettings(uint(productID), req); err != nil {
		return inventoryError(c, err)
	}

	return c.JSON(fiber.Map{"message": "Settings updated"})
}

// GetSettings - GET /api/admin/inventory/settings/:productId
func (h *InventoryHandler) GetSettings(c *fiber.Ctx) error {
	productID, _ := strconv.Atoi(c.Params("productId"))

	settings, err := h.Inventory.GetProductInventorySettings(uint(productID))
	if err != nil {
		return inventoryError(c, err)
	}

	return c.JSON(fiber.Map{"data": settings})
}

// GetLowStock - GET /api/admin/inventory/low-stock
func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	products, err := h.Inventory.GetLowStockProducts(limit)
	if err != nil {
		return inventoryError(c, err)
	}

	return c.JSON(fiber.Map{"data": products})
}

// GetAnalytics - GET /api/admin/inventory/analytics
func (h *InventoryHandler) GetAnalytics(c *fiber.Ctx) error {
	days, _ := strconv.Atoi(c.Query("days", "30"))

	analytics, err := h.Inventory.GetInventoryAnalytics(days)
	if err != nil {
		return inventoryError(c, err)
	}

	return c.JSON(fiber.Map{"data": analytics})
}

// GetLogs - GET /api/admin/inventory/logs
// Optional product_id scopes the history to one product; since narrows
// the window (RFC 3339).
func (h *InventoryHandler) GetLogs(c *fiber.Ctx) error {
	var entries []models.InventoryLog
	var err error

	if productParam := c.Query("product_id"); productParam != "" {
		productID, convErr := strconv.Atoi(productParam)
		if convErr != nil || productID <= 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid product_id"})
		}

		var since time.Time
		if sinceParam := c.Query("since"); sinceParam != "" {
			since, err = time.Parse(time.RFC3339, sinceParam)
			if err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid since timestamp"})
			}
		}

		entries, err = h.Inventory.Ledger().QueryByProduct(uint(productID), since)
	} else {
		limit, _ := strconv.Atoi(c.Query("limit", "50"))
		entries, err = h.Inventory.Ledger().QueryRecent(limit)
	}

	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch inventory logs"})
	}

	return c.JSON(fiber.Map{"data": entries})
}

// ExportCSV - GET /api/admin/inventory/export
// Streams a CSV snapshot; the temp file is removed on every exit path.
func (h *InventoryHandler) ExportCSV(c *fiber.Ctx) error {
	path, err := h.Inventory.ExportInventoryCSV()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not generate export"})
	}
	defer os.Remove(path)

	data, err := os.ReadFile(path)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not read export"})
	}

	c.Set(fiber.HeaderContentType, "text/csv")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="inventory.csv"`)
	return c.Send(data)
}

// inventoryError maps the service's expected failure modes onto HTTP
// statuses; storage failures stay generic.
func inventoryError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, inventory.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	case errors.Is(err, inventory.ErrInvalidQuantity),
		errors.Is(err, inventory.ErrInvalidDelta),
		errors.Is(err, inventory.ErrInvalidSettings):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, inventory.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Insufficient stock"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Inventory operation failed"})
	}
}
