package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/Albierrto/borts-books-sub000/internal/inventory"
	"github.com/Albierrto/borts-books-sub000/models"
	"github.com/Albierrto/borts-books-sub000/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.StockLevel{},
		&models.InventoryLog{},
		&models.InventorySettings{},
	))

	password, err := utils.HashPassword("password123")
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.User{
		Username: "admin",
		Email:    "admin@bortsbooks.com",
		Password: password,
		Role:     "admin",
	}).Error)
	require.NoError(t, db.Create(&models.User{
		Username: "customer",
		Email:    "customer@example.com",
		Password: password,
		Role:     "user",
	}).Error)

	svc := inventory.NewService(db)
	authHandler := NewAuthHandler(db)
	productHandler := NewProductHandler(db, svc)
	inventoryHandler := NewInventoryHandler(svc)

	app := fiber.New()
	app.Post("/api/auth/login", authHandler.Login)
	app.Get("/api/products", productHandler.GetAllProducts)
	app.Post("/api/inventory/sale", utils.AuthMiddleware, inventoryHandler.RecordSale)

	admin := app.Group("/api/admin", utils.AuthMiddleware, utils.AdminRequired)
	admin.Post("/products", productHandler.CreateProduct)
	admin.Post("/inventory/restock", inventoryHandler.Restock)
	admin.Post("/inventory/adjust", inventoryHandler.AdjustStock)
	admin.Put("/inventory/settings/:productId", inventoryHandler.UpdateSettings)
	admin.Get("/inventory/low-stock", inventoryHandler.GetLowStock)
	admin.Get("/inventory/export", inventoryHandler.ExportCSV)

	return app, db
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	body, _ := json.Marshal(fiber.Map{"email": email, "password": "password123"})
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	require.NotEmpty(t, result.Token)
	return result.Token
}

func seedProduct(t *testing.T, db *gorm.DB, title string, stock int) *models.Product {
	t.Helper()

	product := &models.Product{Title: title, Price: 9.99, Category: "shonen"}
	require.NoError(t, db.Create(product).Error)
	require.NoError(t, db.Create(&models.StockLevel{ProductID: product.ID, Quantity: stock}).Error)
	if stock != 0 {
		require.NoError(t, db.Create(&models.InventoryLog{
			ProductID:      product.ID,
			Action:         models.ActionRestock,
			QuantityChange: stock,
			Reason:         "Initial stock",
			Actor:          "test",
		}).Error)
	}
	return product
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestInventoryHandler_Restock(t *testing.T) {
	app, db := setupTestApp(t)
	token := login(t, app, "admin@bortsbooks.com")
	product := seedProduct(t, db, "One Piece Vol. 1", 3)

	resp := doJSON(t, app, http.MethodPost, "/api/admin/inventory/restock", token, fiber.Map{
		"product_id": product.ID,
		"quantity":   10,
		"reason":     "Manual restock",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var level models.StockLevel
	require.NoError(t, db.First(&level, "product_id = ?", product.ID).Error)
	require.Equal(t, 13, level.Quantity)

	// the mutation's audit entry carries the authenticated admin
	var entry models.InventoryLog
	require.NoError(t, db.Where("product_id = ?", product.ID).
		Order("id desc").First(&entry).Error)
	require.Equal(t, "admin", entry.Actor)
	require.Equal(t, models.ActionRestock, entry.Action)
}

func TestInventoryHandler_Restock_Validation(t *testing.T) {
	app, db := setupTestApp(t)
	token := login(t, app, "admin@bortsbooks.com")
	product := seedProduct(t, db, "Naruto Vol. 1", 3)

	resp := doJSON(t, app, http.MethodPost, "/api/admin/inventory/restock", token, fiber.Map{
		"product_id": product.ID,
		"quantity":   -5,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/admin/inventory/restock", token, fiber.Map{
		"product_id": 99999,
		"quantity":   5,
	})
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestInventoryHandler_Auth(t *testing.T) {
	app, db := setupTestApp(t)
	product := seedProduct(t, db, "Bleach Vol. 1", 3)

	t.Run("missing token", func(t *testing.T) {
		resp := doJSON(t, app, http.MethodPost, "/api/admin/inventory/restock", "", fiber.Map{
			"product_id": product.ID,
			"quantity":   1,
		})
		require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("non-admin token", func(t *testing.T) {
		token := login(t, app, "customer@example.com")
		resp := doJSON(t, app, http.MethodPost, "/api/admin/inventory/restock", token, fiber.Map{
			"product_id": product.ID,
			"quantity":   1,
		})
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestInventoryHandler_RecordSale_InsufficientStock(t *testing.T) {
	app, db := setupTestApp(t)
	token := login(t, app, "customer@example.com")
	product := seedProduct(t, db, "Dragon Ball Vol. 1", 2)

	resp := doJSON(t, app, http.MethodPost, "/api/inventory/sale", token, fiber.Map{
		"product_id": product.ID,
		"quantity":   5,
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	var level models.StockLevel
	require.NoError(t, db.First(&level, "product_id = ?", product.ID).Error)
	require.Equal(t, 2, level.Quantity)
}

func TestInventoryHandler_Settings_Validation(t *testing.T) {
	app, db := setupTestApp(t)
	token := login(t, app, "admin@bortsbooks.com")
	product := seedProduct(t, db, "Akira Vol. 1", 5)

	resp := doJSON(t, app, http.MethodPut,
		"/api/admin/inventory/settings/"+itoa(product.ID), token, fiber.Map{
			"low_stock_threshold": 10,
			"reorder_point":       5,
			"max_stock_level":     50,
		})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPut,
		"/api/admin/inventory/settings/"+itoa(product.ID), token, fiber.Map{
			"low_stock_threshold": 3,
			"reorder_point":       5,
			"max_stock_level":     50,
		})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestInventoryHandler_ExportCSV(t *testing.T) {
	app, db := setupTestApp(t)
	token := login(t, app, "admin@bortsbooks.com")
	seedProduct(t, db, "Berserk Vol. 1", 7)

	resp := doJSON(t, app, http.MethodGet, "/api/admin/inventory/export", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	require.Contains(t, resp.Header.Get("Content-Disposition"), "inventory.csv")

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "title,stock,price,threshold", lines[0])
}

func itoa(id uint) string {
	return strconv.Itoa(int(id))
}
