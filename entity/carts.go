package entity

import (
	"time"
)

// Cart has no soft delete: an emptied or consumed cart must disappear.
type Cart struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	UserID       uint      `gorm:"uniqueIndex:idx_cart_user_restaurant;not null" json:"userId"`
	RestaurantID uint      `gorm:"uniqueIndex:idx_cart_user_restaurant;not null" json:"restaurantId"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	Items []CartLine `gorm:"foreignKey:CartID" json:"items"`
}
