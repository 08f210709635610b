package models

import (
	"errors"
	"fmt"
)

var (
	ErrConflictData       = errors.New("data conflicts with existing data")
	ErrDataNotFound       = errors.New("data not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid auth token")
	ErrSessionNotFound    = errors.New("session not found")
	ErrAmountMismatch     = errors.New("amount does not match package price")
	ErrOrderMismatch      = errors.New("order does not match gateway order")
	ErrOrderNotPending    = errors.New("order is not awaiting confirmation")
	ErrInvalidPackage     = errors.New("invalid pricing package")
	ErrMissingAPIKey      = errors.New("email provider api key is not configured")
	ErrGatewayTimeout     = errors.New("payment gateway request timed out")
	ErrInternalError      = errors.New("internal error")
)

// GatewayError is a failure reported by the payment gateway
type GatewayError struct {
	StatusCode int
	Message    string
}

// NewGatewayError creates GatewayError from a gateway response
func NewGatewayError(statusCode int, message string) GatewayError {
	return GatewayError{StatusCode: statusCode, Message: message}
}

func (e GatewayError) Error() string {
	return fmt.Sprintf("payment gateway: %s (status %d)", e.Message, e.StatusCode)
}
