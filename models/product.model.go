package models

import (
	"time"

	"gorm.io/gorm"
)

type Product struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Title       string  `gorm:"size:255;not null" json:"title"`
	Description string  `gorm:"type:text" json:"description"`
	Price       float64 `gorm:"not null" json:"price"`
	Category    string  `gorm:"size:50;index" json:"category"` // shonen, shojo, seinen, etc.
	Condition   string  `gorm:"size:20" json:"condition"`      // new, like-new, good, acceptable
	ImageURL    string  `json:"image_url"`

	// Shipping profile
	WeightOz       float64 `json:"weight_oz"`                                           // weight in ounces
	Dimensions     string  `gorm:"size:50" json:"dimensions"`                           // LxWxH in inches
	ShippingOption string  `gorm:"default:'calculated';size:20" json:"shipping_option"` // calculated, flat, free
	FlatRate       float64 `json:"flat_rate"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`

	// Relations
	Stock *StockLevel `gorm:"foreignKey:ProductID" json:"stock,omitempty"`
}
