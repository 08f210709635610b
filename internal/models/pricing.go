package models

import "time"

// PricingPackage is a purchasable package from the pricing catalog
type PricingPackage struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Discount    *int32
	DocumentURL *string
	CreatedAt   time.Time
}
