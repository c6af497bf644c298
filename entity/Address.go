package entity

// Address is stored inline (embedded) on restaurants and orders.
type Address struct {
	Street  string `json:"street" binding:"required" validate:"required,notblank"`
	City    string `json:"city" binding:"required" validate:"required,notblank"`
	State   string `json:"state" binding:"required" validate:"required,notblank"`
	Country string `json:"country" binding:"required" validate:"required,notblank"`
	Pincode string `json:"pincode" binding:"required" validate:"required,notblank"`
}
