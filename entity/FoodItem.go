package entity

import (
	"gorm.io/gorm"
)

const DefaultMaxQuantity = 10

type FoodItem struct {
	gorm.Model
	Name            string `json:"name"`
	Description     string `json:"description"`
	Category        string `json:"category"`
	Price           int64  `json:"price"`
	PreparationTime int    `json:"preparationTime"`
	IsAvailable     bool   `json:"isAvailable"`
	MaxQuantity     int    `json:"maxQuantity"`

	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`
}
