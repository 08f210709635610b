package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/styleshelf/storefront/internal/service"
)

// NotificationService is interface for purchase confirmation emails
type NotificationService interface {
	Send(ctx context.Context, n service.Notification) (*service.SendResult, error)
}

// NotificationHandler represents HTTP handler for notification requests
type NotificationHandler struct {
	svc NotificationService
}

// NewNotificationHandler creates new NotificationHandler instance
func NewNotificationHandler(svc NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

type sendEmailRequest struct {
	To          string  `json:"to"`
	PackageName string  `json:"packageName"`
	Amount      float64 `json:"amount"`
	OrderID     string  `json:"orderId"`
	PaymentID   string  `json:"paymentId"`
	DocumentURL *string `json:"documentUrl"`
}

type sendEmailResponse struct {
	ID        string `json:"id"`
	LicenseID string `json:"licenseId"`
}

type errorBody struct {
	Error string `json:"error"`
}

// SendPaymentEmail sends a purchase confirmation email
// 200 — email accepted by the provider, license id returned;
// 400 — malformed request;
// 500 — provider refused or is not configured.
func (nh *NotificationHandler) SendPaymentEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sendEmailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if req.To == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		res, err := nh.svc.Send(r.Context(), service.Notification{
			To:          req.To,
			PackageName: req.PackageName,
			Amount:      req.Amount,
			OrderID:     req.OrderID,
			PaymentID:   req.PaymentID,
			DocumentURL: req.DocumentURL,
		})
		if err != nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(errorBody{Error: err.Error()})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(sendEmailResponse{
			ID:        res.ProviderID,
			LicenseID: res.LicenseID,
		}); err != nil {
			return
		}
	}
}
