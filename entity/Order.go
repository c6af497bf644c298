package entity

import (
	"time"

	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	UserID uint `gorm:"index" json:"userId"`
	User   User `json:"-"`

	RestaurantID uint       `gorm:"index" json:"restaurantId"`
	Restaurant   Restaurant `json:"-"`

	Items       []OrderLine `gorm:"foreignKey:OrderID" json:"items"`
	TotalAmount int64       `json:"totalAmount"`

	DeliveryAddress       Address    `gorm:"embedded;embeddedPrefix:delivery_" json:"deliveryAddress"`
	OrderPlacedAt         time.Time  `json:"orderPlacedAt"`
	EstimatedDeliveryTime time.Time  `json:"estimatedDeliveryTime"`
	ActualDeliveryTime    *time.Time `json:"actualDeliveryTime"`

	Status            OrderStatus   `gorm:"index;not null" json:"status"`
	PaymentMethod     PaymentMethod `json:"paymentMethod"`
	PaymentStatus     PaymentStatus `json:"paymentStatus"`
	DeliveryPartnerID *uint         `json:"deliveryPartnerId"`

	PreparationTime     int     `json:"preparationTime"`
	IsGift              bool    `json:"isGift"`
	SpecialInstructions string  `json:"specialInstructions"`
	CancellationReason  *string `json:"cancellationReason"`

	// set once, after delivery
	Rating         *int    `json:"rating"`
	DeliveryRating *int    `json:"deliveryRating"`
	Review         *string `json:"review"`
}
