package entity

import (
	"time"
)

// Favourite marks a delivered order the user wants to reorder from.
type Favourite struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:idx_fav_user_order;not null" json:"userId"`
	OrderID   uint      `gorm:"uniqueIndex:idx_fav_user_order;not null" json:"orderId"`
	Order     Order     `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
