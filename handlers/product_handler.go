package handlers

import (
	"strconv"

	"github.com/Albierrto/borts-books-sub000/internal/inventory"
	"github.com/Albierrto/borts-books-sub000/models"
	"github.com/Albierrto/borts-books-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProductHandler struct {
	DB        *gorm.DB
	Inventory *inventory.Service
}

func NewProductHandler(db *gorm.DB, inv *inventory.Service) *ProductHandler {
	return &ProductHandler{DB: db, Inventory: inv}
}

// CreateProductRequest
type CreateProductRequest struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	Category       string  `json:"category"`
	Condition      string  `json:"condition"`
	ImageURL       string  `json:"image_url"`
	WeightOz       float64 `json:"weight_oz"`
	Dimensions     string  `json:"dimensions"`
	ShippingOption string  `json:"shipping_option"`
	FlatRate       float64 `json:"flat_rate"`
	InitialStock   int     `json:"initial_stock"`
}

// CreateProduct - POST /api/admin/products
func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Title is required"})
	}
	if req.Price < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Price must be non-negative"})
	}
	if req.WeightOz < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Weight must be non-negative"})
	}
	if req.InitialStock < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Initial stock must be non-negative"})
	}

	shippingOption := req.ShippingOption
	if shippingOption == "" {
		shippingOption = "calculated"
	}

	product := models.Product{
		Title:          req.Title,
		Description:    req.Description,
		Price:          req.Price,
		Category:       req.Category,
		Condition:      req.Condition,
		ImageURL:       req.ImageURL,
		WeightOz:       req.WeightOz,
		Dimensions:     req.Dimensions,
		ShippingOption: shippingOption,
		FlatRate:       req.FlatRate,
	}

	// Product and its zero stock level are created together; any initial
	// quantity goes through the inventory service so the ledger records it.
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&product).Error; err != nil {
			return err
		}
		return tx.Create(&models.StockLevel{ProductID: product.ID}).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create product"})
	}

	if req.InitialStock > 0 {
		if err := h.Inventory.Restock(product.ID, req.InitialStock, "Initial stock", utils.Actor(c)); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not record initial stock"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Product created", "data": product})
}

// GetAllProducts - GET /api/products
func (h *ProductHandler) GetAllProducts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := h.DB.Model(&models.Product{}).Preload("Stock")

	// Filter by Category
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	// Search by Title
	if q := c.Query("q"); q != "" {
		query = query.Where("title LIKE ?", "%"+q+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch products"})
	}

	var products []models.Product
	if err := query.Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&products).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not fetch products"})
	}

	return c.JSON(fiber.Map{
		"data": products,
		"meta": models.NewPaginationMeta(page, limit, total),
	})
}

// GetProduct - GET /api/products/:id
func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))
	var product models.Product

	if err := h.DB.Preload("Stock").First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	return c.JSON(fiber.Map{"data": product})
}

// UpdateProduct - PUT /api/admin/products/:id
func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	var req CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid input"})
	}

	if req.Price < 0 || req.WeightOz < 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Price and weight must be non-negative"})
	}

	// Update fields (stock is never edited here; it only moves through
	// the inventory endpoints)
	product.Title = req.Title
	product.Description = req.Description
	product.Price = req.Price
	product.Category = req.Category
	product.Condition = req.Condition
	product.ImageURL = req.ImageURL
	product.WeightOz = req.WeightOz
	product.Dimensions = req.Dimensions
	product.ShippingOption = req.ShippingOption
	product.FlatRate = req.FlatRate

	if err := h.DB.Save(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not update product"})
	}

	return c.JSON(fiber.Map{"message": "Product updated", "data": product})
}

// DeleteProduct - DELETE /api/admin/products/:id
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id, _ := strconv.Atoi(c.Params("id"))

	var product models.Product
	if err := h.DB.First(&product, id).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Product not found"})
	}

	// Soft delete keeps the ledger history resolvable.
	if err := h.DB.Delete(&product).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete product"})
	}

	return c.JSON(fiber.Map{"message": "Product deleted"})
}
