package entity

import (
	"gorm.io/gorm"
)

type Restaurant struct {
	gorm.Model
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Address     Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`
	Phone       string  `json:"phone"`
	IsOpen      bool    `json:"isOpen"`

	OwnerID uint `gorm:"index" json:"ownerId"`
	Owner   User `gorm:"foreignKey:OwnerID" json:"-"`

	Foods  []FoodItem `json:"-"`
	Orders []Order    `json:"-"`
}

// RestaurantSummary is the projection joined onto carts and orders for display.
type RestaurantSummary struct {
	ID      uint    `json:"id"`
	Name    string  `json:"name"`
	Address Address `gorm:"embedded;embeddedPrefix:address_" json:"address"`
}
