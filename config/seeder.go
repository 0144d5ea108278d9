package config

import (
	"log"

	"github.com/Albierrto/borts-books-sub000/models"
	"github.com/Albierrto/borts-books-sub000/utils"

	"gorm.io/gorm"
)

// SeedAdmin ensures the back-office admin account exists.
func SeedAdmin(db *gorm.DB, cfg *Config) {
	log.Println("🌱 Seeding admin account...")

	var existing models.User
	if err := db.Where("email = ?", cfg.AdminEmail).First(&existing).Error; err == nil {
		log.Printf("Admin already exists: %s", existing.Username)
		return
	}

	password, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		log.Printf("Failed to hash admin password: %v", err)
		return
	}

	admin := models.User{
		Username:   "admin",
		Email:      cfg.AdminEmail,
		Password:   password,
		FullName:   "Bort's Books Admin",
		Role:       "admin",
		IsVerified: true,
	}

	if err := db.Create(&admin).Error; err != nil {
		log.Printf("Failed to seed admin: %v", err)
		return
	}

	log.Printf("Admin seeded: %s (ID: %d)", admin.Username, admin.ID)
}

// SeedProducts loads a starter catalog with stock levels so the admin
// dashboard has data to show on a fresh install. Initial stock is
// recorded through a restock log entry so the ledger stays the source
// of truth for every quantity.
func SeedProducts(db *gorm.DB) {
	log.Println("🌱 Seeding products...")

	products := []struct {
		product models.Product
		stock   int
	}{
		{
			product: models.Product{
				Title:          "One Piece Vol. 1-10 Set",
				Description:    "First ten volumes of One Piece, complete East Blue saga.",
				Price:          64.99,
				Category:       "shonen",
				Condition:      "good",
				WeightOz:       88,
				Dimensions:     "10x7x6",
				ShippingOption: "calculated",
			},
			stock: 3,
		},
		{
			product: models.Product{
				Title:          "Fruits Basket Collector's Edition Vol. 1",
				Description:    "Two-in-one omnibus edition.",
				Price:          14.99,
				Category:       "shojo",
				Condition:      "like-new",
				WeightOz:       18,
				Dimensions:     "8x6x1",
				ShippingOption: "flat",
				FlatRate:       4.99,
			},
			stock: 12,
		},
		{
			product: models.Product{
				Title:          "Berserk Deluxe Edition Vol. 1",
				Description:    "Oversized hardcover collecting volumes 1-3.",
				Price:          34.99,
				Category:       "seinen",
				Condition:      "new",
				WeightOz:       52,
				Dimensions:     "12x9x2",
				ShippingOption: "free",
			},
			stock: 5,
		},
	}

	for _, seed := range products {
		var existing models.Product
		if err := db.Where("title = ?", seed.product.Title).First(&existing).Error; err == nil {
			log.Printf("Product already exists: %s", existing.Title)
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&seed.product).Error; err != nil {
				return err
			}
			if err := tx.Create(&models.StockLevel{
				ProductID: seed.product.ID,
				Quantity:  seed.stock,
			}).Error; err != nil {
				return err
			}
			return tx.Create(&models.InventoryLog{
				ProductID:      seed.product.ID,
				Action:         models.ActionRestock,
				QuantityChange: seed.stock,
				Reason:         "Initial stock",
				Actor:          "seeder",
			}).Error
		})
		if err != nil {
			log.Printf("Failed to seed product %s: %v", seed.product.Title, err)
			continue
		}

		log.Printf("Product seeded: %s (ID: %d, stock: %d)", seed.product.Title, seed.product.ID, seed.stock)
	}

	log.Println("✅ Seeding complete.")
}
