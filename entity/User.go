package entity

import (
	"gorm.io/gorm"
)

const (
	RoleCustomer = "customer"
	RoleOwner    = "owner"
	RoleRider    = "rider"
)

type User struct {
	gorm.Model
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `json:"-"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `gorm:"not null;default:customer" json:"role"`

	// Relations, preload only when needed
	RestaurantsOwned []Restaurant `gorm:"foreignKey:OwnerID" json:"-"`
	Orders           []Order      `json:"-"`
}
