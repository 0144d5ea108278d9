package config

import (
	"log"

	"github.com/Albierrto/borts-books-sub000/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// Migrate the schema
	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.StockLevel{},
		&models.InventoryLog{},
		&models.InventorySettings{},
	)

	if err != nil {
		log.Printf("Failed to migrate database schema: %v", err)
		return err
	}

	log.Println("Database Migrations completed succesfully...")

	return nil
}

func ResetAndMigrate(db *gorm.DB, cfg *Config) error {
	// Drop all tables
	tables := []interface{}{
		&models.User{},
		&models.Product{},
		&models.StockLevel{},
		&models.InventoryLog{},
		&models.InventorySettings{},
	}

	if err := db.Migrator().DropTable(tables...); err != nil {
		log.Printf("Failed to drop tables: %v", err)
		return err
	}

	log.Println("All tables dropped successfully.")

	if err := db.AutoMigrate(tables...); err != nil {
		log.Printf("Failed to auto migrate: %v", err)
		return err
	}

	SeedAdmin(db, cfg)
	SeedProducts(db)

	log.Println("Database reset and migration completed successfully.")
	return nil
}
