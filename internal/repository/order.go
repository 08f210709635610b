package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/styleshelf/storefront/internal/models"
	"github.com/styleshelf/storefront/internal/repository/postgres"
)

const (
	insertOrderQuery = `
						INSERT INTO orders (id, user_id, package_id, amount, gateway_order_id, order_status)
						values ($1, $2, $3, $4, $5, $6)
						RETURNING id, user_id, package_id, amount, gateway_order_id, charge_id, license_id, order_status, created_at, updated_at
`
	selectOrderByIDQuery = `
						SELECT id, user_id, package_id, amount, gateway_order_id, charge_id, license_id, order_status, created_at, updated_at FROM orders
						WHERE id = $1
`
	selectOrdersByUserIDQuery = `
						SELECT id, user_id, package_id, amount, gateway_order_id, charge_id, license_id, order_status, created_at, updated_at FROM orders
						WHERE user_id = $1
						ORDER BY created_at DESC
`
	confirmOrderQuery = `
						UPDATE orders
						SET order_status = $2, charge_id = NULLIF($3, ''), license_id = $4, updated_at = now()
						WHERE id = $1 AND order_status = $5
						RETURNING id, user_id, package_id, amount, gateway_order_id, charge_id, license_id, order_status, created_at, updated_at
`
	cancelOrderQuery = `
						UPDATE orders
						SET order_status = $2, updated_at = now()
						WHERE id = $1 AND order_status = $3
`
	selectStaleCreatedOrdersQuery = `
						SELECT id, user_id, package_id, amount, gateway_order_id, charge_id, license_id, order_status, created_at, updated_at FROM orders
						WHERE order_status = $1 AND created_at < $2
`
)

// OrderRepository implements OrderRepository interface
type OrderRepository struct {
	db *postgres.DB
}

// NewOrderRepository creates new OrderRepository instance
func NewOrderRepository(db *postgres.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// CreateOrder inserts new ledger row in created state
func (or *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	err := or.db.QueryRow(ctx, insertOrderQuery,
		order.ID, order.UserID, order.PackageID, order.Amount, order.GatewayOrderID, order.Status).
		Scan(&order.ID, &order.UserID, &order.PackageID, &order.Amount, &order.GatewayOrderID,
			&order.ChargeID, &order.LicenseID, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errCode := or.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	return order, nil
}

// GetOrderByID returns order by ledger id
func (or *OrderRepository) GetOrderByID(ctx context.Context, id string) (*models.Order, error) {
	order := models.Order{}
	err := or.db.QueryRow(ctx, selectOrderByIDQuery, id).
		Scan(&order.ID, &order.UserID, &order.PackageID, &order.Amount, &order.GatewayOrderID,
			&order.ChargeID, &order.LicenseID, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}

	return &order, nil
}

// GetOrdersByUserID gets user orders, newest first
func (or *OrderRepository) GetOrdersByUserID(ctx context.Context, userID string) ([]models.Order, error) {
	rows, err := or.db.Query(ctx, selectOrdersByUserIDQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}

	for rows.Next() {
		order := models.Order{}
		err = rows.Scan(&order.ID, &order.UserID, &order.PackageID, &order.Amount, &order.GatewayOrderID,
			&order.ChargeID, &order.LicenseID, &order.Status, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			continue
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}

// ConfirmOrder transitions a created order to completed, recording the charge
// and license ids. The status check in the WHERE clause makes the transition
// a compare-and-swap: a duplicate confirmation matches no row. An empty
// chargeID (a sweep confirmation, where no payment reference is known) is
// stored as NULL, not as an empty string.
func (or *OrderRepository) ConfirmOrder(ctx context.Context, id, chargeID, licenseID string) (*models.Order, error) {
	order := models.Order{}
	err := or.db.QueryRow(ctx, confirmOrderQuery,
		id, models.OrderStatusCompleted, chargeID, licenseID, models.OrderStatusCreated).
		Scan(&order.ID, &order.UserID, &order.PackageID, &order.Amount, &order.GatewayOrderID,
			&order.ChargeID, &order.LicenseID, &order.Status, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrOrderNotPending
		}
		return nil, err
	}

	return &order, nil
}

// CancelOrder transitions a created order to cancelled
func (or *OrderRepository) CancelOrder(ctx context.Context, id string) error {
	cmd, err := or.db.Exec(ctx, cancelOrderQuery, id, models.OrderStatusCancelled, models.OrderStatusCreated)
	if err != nil {
		return err
	}

	if cmd.RowsAffected() == 0 {
		return models.ErrOrderNotPending
	}

	return nil
}

// GetStaleCreatedOrders returns created orders older than the given time
func (or *OrderRepository) GetStaleCreatedOrders(ctx context.Context, olderThan time.Time) ([]models.Order, error) {
	rows, err := or.db.Query(ctx, selectStaleCreatedOrdersQuery, models.OrderStatusCreated, olderThan)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}

	for rows.Next() {
		order := models.Order{}
		err = rows.Scan(&order.ID, &order.UserID, &order.PackageID, &order.Amount, &order.GatewayOrderID,
			&order.ChargeID, &order.LicenseID, &order.Status, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			continue
		}
		orders = append(orders, order)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
