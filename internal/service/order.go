package service

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/styleshelf/storefront/internal/gateway"
	"github.com/styleshelf/storefront/internal/logger"
	"github.com/styleshelf/storefront/internal/models"
)

// OrderRepository is interface for interacting with the order ledger
type OrderRepository interface {
	// CreateOrder inserts new ledger row in created state
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	// GetOrderByID returns order by ledger id
	GetOrderByID(ctx context.Context, id string) (*models.Order, error)
	// GetOrdersByUserID gets user orders, newest first
	GetOrdersByUserID(ctx context.Context, userID string) ([]models.Order, error)
	// ConfirmOrder transitions a created order to completed exactly once
	ConfirmOrder(ctx context.Context, id, chargeID, licenseID string) (*models.Order, error)
	// CancelOrder transitions a created order to cancelled
	CancelOrder(ctx context.Context, id string) error
	// GetStaleCreatedOrders returns created orders older than the given time
	GetStaleCreatedOrders(ctx context.Context, olderThan time.Time) ([]models.Order, error)
}

// PaymentGateway is interface for the payment gateway's order API
type PaymentGateway interface {
	CreateOrder(ctx context.Context, amount int64, currency, receipt string) (*gateway.Order, error)
	GetOrder(ctx context.Context, id string) (*gateway.Order, error)
}

// Notifier dispatches purchase confirmation emails
type Notifier interface {
	Send(ctx context.Context, n Notification) (*SendResult, error)
}

// OrderService implements OrderService interface
type OrderService struct {
	orders   OrderRepository
	packages PackageReader
	users    UserReader
	gateway  PaymentGateway
	notifier Notifier
	currency string
}

// PackageReader is the catalog read access the checkout path needs
type PackageReader interface {
	GetPackageByID(ctx context.Context, id string) (*models.PricingPackage, error)
}

// UserReader is the account read access the sweep needs to address emails
type UserReader interface {
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// NewOrderService creates new OrderService instance
func NewOrderService(orders OrderRepository, packages PackageReader, users UserReader, gw PaymentGateway, notifier Notifier, currency string) *OrderService {
	return &OrderService{
		orders:   orders,
		packages: packages,
		users:    users,
		gateway:  gw,
		notifier: notifier,
		currency: currency,
	}
}

// IntentResult is returned to the pricing page to launch the payment widget
type IntentResult struct {
	GatewayOrderID string
	Amount         float64
	Currency       string
	Order          *models.Order
}

// CreateIntent creates a gateway payment order and the matching ledger row.
// The gateway call comes first: a gateway failure leaves no ledger row. The
// reverse window (gateway order without a ledger row) is tolerated and logged.
func (os *OrderService) CreateIntent(ctx context.Context, userID, packageID string, amount float64) (*IntentResult, error) {
	pkg, err := os.packages.GetPackageByID(ctx, packageID)
	if err != nil {
		return nil, err
	}

	// amount is fixed at intent time and must match the current price
	if amount <= 0 || amount != pkg.Price {
		return nil, models.ErrAmountMismatch
	}

	// the ledger id doubles as the gateway receipt, so it is drawn before
	// the gateway call
	id := uuid.NewString()
	minorUnits := int64(math.Round(amount * 100))

	gwOrder, err := os.gateway.CreateOrder(ctx, minorUnits, os.currency, id)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:             id,
		UserID:         userID,
		PackageID:      packageID,
		Amount:         amount,
		GatewayOrderID: gwOrder.ID,
		Status:         models.OrderStatusCreated,
	}

	order, err = os.orders.CreateOrder(ctx, order)
	if err != nil {
		// the gateway order now exists with no ledger row to reconcile against
		logger.Log.Error("ledger insert failed after gateway order creation",
			zap.String("gateway_order_id", gwOrder.ID),
			zap.Error(err))
		return nil, err
	}

	return &IntentResult{
		GatewayOrderID: gwOrder.ID,
		Amount:         amount,
		Currency:       gwOrder.Currency,
		Order:          order,
	}, nil
}

// ConfirmResult reports the outcome of a payment confirmation
type ConfirmResult struct {
	Order            *models.Order
	LicenseID        string
	EmailSent        bool
	AlreadyCompleted bool
}

// Confirm closes out the ledger row after the payment widget reports success.
// The status transition is a compare-and-swap, so a duplicate callback finds
// the row already completed, gets the persisted license id back and sends no
// second email. A notification failure never fails the confirmation: the
// charge has already happened.
func (os *OrderService) Confirm(ctx context.Context, userID, orderID, gatewayOrderID, chargeID, buyerEmail string) (*ConfirmResult, error) {
	order, err := os.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, models.ErrDataNotFound
	}
	if order.GatewayOrderID != gatewayOrderID {
		return nil, models.ErrOrderMismatch
	}

	licenseID, err := GenerateLicenseID()
	if err != nil {
		return nil, err
	}

	order, err = os.orders.ConfirmOrder(ctx, orderID, chargeID, licenseID)
	if err != nil {
		if !errors.Is(err, models.ErrOrderNotPending) {
			return nil, err
		}

		cur, getErr := os.orders.GetOrderByID(ctx, orderID)
		if getErr != nil {
			return nil, getErr
		}
		if cur.Status != models.OrderStatusCompleted {
			return nil, err
		}

		// duplicate callback: the ledger is already settled
		res := &ConfirmResult{Order: cur, AlreadyCompleted: true}
		if cur.LicenseID != nil {
			res.LicenseID = *cur.LicenseID
		}
		return res, nil
	}

	res := &ConfirmResult{Order: order, LicenseID: licenseID}
	res.EmailSent = os.sendPurchaseEmail(ctx, order, chargeID, licenseID, buyerEmail)
	return res, nil
}

// sendPurchaseEmail dispatches the confirmation email for a completed order.
// Failures are logged, never returned: the charge has already happened.
func (os *OrderService) sendPurchaseEmail(ctx context.Context, order *models.Order, chargeID, licenseID, buyerEmail string) bool {
	pkg, err := os.packages.GetPackageByID(ctx, order.PackageID)
	if err != nil {
		logger.Log.Error("load package for purchase notification",
			zap.String("order_id", order.ID),
			zap.Error(err))
		return false
	}

	_, err = os.notifier.Send(ctx, Notification{
		To:          buyerEmail,
		PackageName: pkg.Name,
		Amount:      order.Amount,
		OrderID:     order.GatewayOrderID,
		PaymentID:   chargeID,
		DocumentURL: pkg.DocumentURL,
		LicenseID:   licenseID,
	})
	if err != nil {
		logger.Log.Error("send purchase confirmation email",
			zap.String("order_id", order.ID),
			zap.Error(err))
		return false
	}

	return true
}

// ListUserOrders returns list of user orders
func (os *OrderService) ListUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	return os.orders.GetOrdersByUserID(ctx, userID)
}

// SweepStaleOrders settles created orders older than age against the gateway:
// paid orders are completed, abandoned ones cancelled, in-flight ones left
// for the next sweep
func (os *OrderService) SweepStaleOrders(ctx context.Context, age time.Duration) error {
	orders, err := os.orders.GetStaleCreatedOrders(ctx, time.Now().Add(-age))
	if err != nil {
		return err
	}

	for _, order := range orders {
		os.reconcileOrder(ctx, order)
	}

	return nil
}

func (os *OrderService) reconcileOrder(ctx context.Context, order models.Order) {
	gwOrder, err := os.gateway.GetOrder(ctx, order.GatewayOrderID)
	if err != nil {
		logger.Log.Error("fetch gateway order",
			zap.String("order_id", order.ID),
			zap.Error(err))
		return
	}

	switch gwOrder.Status {
	case gateway.OrderStatusPaid:
		// funds moved but the browser callback never arrived
		licenseID, err := GenerateLicenseID()
		if err != nil {
			logger.Log.Error("generate license id", zap.Error(err))
			return
		}
		completed, err := os.orders.ConfirmOrder(ctx, order.ID, "", licenseID)
		if err != nil {
			if !errors.Is(err, models.ErrOrderNotPending) {
				logger.Log.Error("complete paid order",
					zap.String("order_id", order.ID),
					zap.Error(err))
			}
			return
		}
		logger.Log.Info("completed paid order during sweep", zap.String("order_id", order.ID))

		// the buyer still gets the license email the callback would have sent
		user, err := os.users.GetUserByID(ctx, completed.UserID)
		if err != nil {
			logger.Log.Error("load buyer for purchase notification",
				zap.String("order_id", order.ID),
				zap.Error(err))
			return
		}
		os.sendPurchaseEmail(ctx, completed, "", licenseID, user.Email)
	case gateway.OrderStatusAttempted:
		// a payment may still be in flight, check again next sweep
	default:
		if err := os.orders.CancelOrder(ctx, order.ID); err != nil {
			if !errors.Is(err, models.ErrOrderNotPending) {
				logger.Log.Error("cancel abandoned order",
					zap.String("order_id", order.ID),
					zap.Error(err))
			}
			return
		}
		logger.Log.Info("cancelled abandoned order", zap.String("order_id", order.ID))
	}
}
