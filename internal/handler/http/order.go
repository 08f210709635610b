package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/styleshelf/storefront/internal/models"
	"github.com/styleshelf/storefront/internal/service"
)

//go:generate mockgen -destination=mocks/order_service.go -package=mocks github.com/styleshelf/storefront/internal/handler/http OrderService

// OrderService is interface for checkout operations
type OrderService interface {
	// CreateIntent creates a gateway payment order and the matching ledger row
	CreateIntent(ctx context.Context, userID, packageID string, amount float64) (*service.IntentResult, error)
	// Confirm closes out the ledger row after the payment widget reports success
	Confirm(ctx context.Context, userID, orderID, gatewayOrderID, chargeID, buyerEmail string) (*service.ConfirmResult, error)
	// ListUserOrders returns list of user orders
	ListUserOrders(ctx context.Context, userID string) ([]models.Order, error)
}

// OrderHandler represents HTTP handler for checkout-related requests
type OrderHandler struct {
	svc OrderService
}

// NewOrderHandler creates new OrderHandler instance
func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type createIntentRequest struct {
	Amount    float64 `json:"amount"`
	PackageID string  `json:"package_id"`
	UserID    string  `json:"user_id"`
}

type orderResponse struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	PackageID      string `json:"package_id"`
	Amount         float64 `json:"amount"`
	GatewayOrderID string `json:"gateway_order_id"`
	OrderStatus    string `json:"order_status"`
	CreatedAt      string `json:"created_at"`
}

type createIntentResponse struct {
	OrderID  string        `json:"orderId"`
	Amount   float64       `json:"amount"`
	Currency string        `json:"currency"`
	DBOrder  orderResponse `json:"dbOrder"`
}

// CreateOrderIntent creates a payment order for a pricing package
// 200 — gateway order created and ledger row written;
// 400 — invalid parameters or gateway refusal;
// 401 — caller is not authenticated;
// 504 — payment gateway timed out;
// 500 — internal server error.
func (oh *OrderHandler) CreateOrderIntent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createIntentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if req.PackageID == "" || req.Amount <= 0 {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		// a caller may only open orders for its own session
		if req.UserID != "" && req.UserID != payload.UserID {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		res, err := oh.svc.CreateIntent(r.Context(), payload.UserID, req.PackageID, req.Amount)
		if err != nil {
			var gwErr models.GatewayError
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "unknown package", http.StatusBadRequest)
			case errors.Is(err, models.ErrAmountMismatch):
				http.Error(w, "amount does not match package price", http.StatusBadRequest)
			case errors.Is(err, models.ErrGatewayTimeout):
				http.Error(w, "payment gateway timeout", http.StatusGatewayTimeout)
			case errors.As(err, &gwErr):
				http.Error(w, gwErr.Message, http.StatusBadRequest)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		resp := createIntentResponse{
			OrderID:  res.GatewayOrderID,
			Amount:   res.Amount,
			Currency: res.Currency,
			DBOrder: orderResponse{
				ID:             res.Order.ID,
				UserID:         res.Order.UserID,
				PackageID:      res.Order.PackageID,
				Amount:         res.Order.Amount,
				GatewayOrderID: res.Order.GatewayOrderID,
				OrderStatus:    res.Order.Status,
				CreatedAt:      res.Order.CreatedAt.Format(time.RFC3339),
			},
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

type confirmRequest struct {
	OrderID        string `json:"order_id"`
	GatewayOrderID string `json:"gateway_order_id"`
	ChargeID       string `json:"charge_id"`
}

type confirmResponse struct {
	OrderID     string `json:"order_id"`
	OrderStatus string `json:"order_status"`
	LicenseID   string `json:"license_id"`
	EmailSent   bool   `json:"email_sent"`
}

// ConfirmOrder completes the ledger row after a successful charge
// 200 — order confirmed (a repeated call is idempotent);
// 400 — malformed request;
// 401 — caller is not authenticated;
// 404 — order not found;
// 409 — order does not match the gateway order, or is no longer pending;
// 500 — internal server error.
func (oh *OrderHandler) ConfirmOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req confirmRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if req.OrderID == "" || req.ChargeID == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		res, err := oh.svc.Confirm(r.Context(), payload.UserID, req.OrderID, req.GatewayOrderID, req.ChargeID, payload.Email)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			case errors.Is(err, models.ErrOrderMismatch):
				http.Error(w, "order mismatch", http.StatusConflict)
			case errors.Is(err, models.ErrOrderNotPending):
				http.Error(w, "order is not pending", http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		resp := confirmResponse{
			OrderID:     res.Order.ID,
			OrderStatus: res.Order.Status,
			LicenseID:   res.LicenseID,
			EmailSent:   res.EmailSent,
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}

// ListOrdersResp is a single order in the purchase history response
type ListOrdersResp struct {
	ID          string  `json:"id"`
	PackageID   string  `json:"package_id"`
	Amount      float64 `json:"amount"`
	OrderStatus string  `json:"order_status"`
	LicenseID   string  `json:"license_id,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// ListUserOrders returns the caller's purchase history
// 200 — request handled successfully;
// 204 — no orders to return;
// 401 — caller is not authenticated;
// 500 — internal server error.
func (oh *OrderHandler) ListUserOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		orders, err := oh.svc.ListUserOrders(r.Context(), payload.UserID)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		if len(orders) == 0 {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		resp := make([]ListOrdersResp, 0, len(orders))
		for _, order := range orders {
			item := ListOrdersResp{
				ID:          order.ID,
				PackageID:   order.PackageID,
				Amount:      order.Amount,
				OrderStatus: order.Status,
				CreatedAt:   order.CreatedAt.Format(time.RFC3339),
			}
			if order.LicenseID != nil {
				item.LicenseID = *order.LicenseID
			}
			resp = append(resp, item)
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(resp); err != nil {
			return
		}
	}
}
