package entity

// OrderLine is copied by value from the cart/catalog when the order is placed.
type OrderLine struct {
	ID          uint   `gorm:"primarykey" json:"-"`
	OrderID     uint   `gorm:"index;not null" json:"-"`
	FoodID      uint   `json:"foodId"`
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Quantity    int    `json:"quantity"`
	MaxQuantity int    `json:"maxQuantity"`
}

func (l OrderLine) Total() int64 { return l.Price * int64(l.Quantity) }
