package models

import "time"

//created — ledger row written alongside the gateway order, payment not collected yet;
//completed — gateway reported a successful charge, license issued;
//cancelled — abandoned or declined at the gateway, closed by the reconciler.

// order status
const (
	OrderStatusCreated   = "created"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order is one checkout attempt in the ledger
type Order struct {
	ID             string
	UserID         string
	PackageID      string
	Amount         float64
	GatewayOrderID string
	ChargeID       *string
	LicenseID      *string
	Status         string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
