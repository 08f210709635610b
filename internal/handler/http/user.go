package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/styleshelf/storefront/internal/models"
)

// AuthService is interface for account registration and sessions
type AuthService interface {
	// Register creates a new account and opens a session for it
	Register(ctx context.Context, email, password, name string) (*models.User, string, error)
	// Login checks credentials and opens a session
	Login(ctx context.Context, email, password string) (*models.User, string, error)
	// Logout revokes the session
	Logout(ctx context.Context, sessionID string) error
}

// UserHandler represents HTTP handler for account-related requests
type UserHandler struct {
	svc AuthService
	ttl time.Duration
}

// NewUserHandler creates new UserHandler instance
func NewUserHandler(svc AuthService, ttl time.Duration) *UserHandler {
	return &UserHandler{svc: svc, ttl: ttl}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

func (uh *UserHandler) setAuthCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(uh.ttl),
		HttpOnly: true,
	})
}

// RegisterUser registers a new account
// 200 — account created, session opened;
// 400 — malformed request;
// 409 — email is already registered;
// 500 — internal server error.
func (uh *UserHandler) RegisterUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if req.Email == "" || req.Password == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		user, token, err := uh.svc.Register(r.Context(), req.Email, req.Password, req.Name)
		if err != nil {
			if errors.Is(err, models.ErrConflictData) {
				http.Error(w, "email is already registered", http.StatusConflict)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		uh.setAuthCookie(w, token)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(userResponse{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		}); err != nil {
			return
		}
	}
}

// LoginUser authenticates an account
// 200 — session opened;
// 400 — malformed request;
// 401 — invalid email or password;
// 500 — internal server error.
func (uh *UserHandler) LoginUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if req.Email == "" || req.Password == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}

		user, token, err := uh.svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, models.ErrInvalidCredentials) {
				http.Error(w, "invalid email or password", http.StatusUnauthorized)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		uh.setAuthCookie(w, token)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)

		if err := json.NewEncoder(w).Encode(userResponse{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
			Role:  user.Role,
		}); err != nil {
			return
		}
	}
}

// LogoutUser revokes the caller's session
// 200 — session revoked;
// 401 — caller is not authenticated;
// 500 — internal server error.
func (uh *UserHandler) LogoutUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context())
		if !ok {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := uh.svc.Logout(r.Context(), payload.SessionID); err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     "auth_token",
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})

		w.WriteHeader(http.StatusOK)
	}
}
