package entity

import (
	"time"
)

// CartLine is a snapshot taken from the catalog at add time. Name, Price and
// MaxQuantity never follow later catalog edits.
type CartLine struct {
	ID          uint      `gorm:"primarykey" json:"-"`
	CartID      uint      `gorm:"uniqueIndex:idx_cart_food;not null" json:"-"`
	FoodID      uint      `gorm:"uniqueIndex:idx_cart_food;not null" json:"foodId"`
	Name        string    `json:"name"`
	Price       int64     `json:"price"`
	Quantity    int       `json:"quantity"`
	MaxQuantity int       `json:"maxQuantity"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}
