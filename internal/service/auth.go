package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/styleshelf/storefront/internal/models"
)

// UserRepository is interface for interacting with user-related data
type UserRepository interface {
	// CreateUser inserts new user to database
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	// GetUserByEmail returns user by email
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// GetUserByID returns user by id
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// SessionRepository is interface for server-side session records
type SessionRepository interface {
	Create(ctx context.Context, session models.Session) error
	Get(ctx context.Context, id string) (models.Session, error)
	Delete(ctx context.Context, id string) error
}

// AuthService implements AuthService interface
type AuthService struct {
	users    UserRepository
	sessions SessionRepository
	token    TokenService
	ttl      time.Duration
}

// NewAuthService creates new AuthService instance
func NewAuthService(users UserRepository, sessions SessionRepository, token TokenService, ttl time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		token:    token,
		ttl:      ttl,
	}
}

// Register creates a new account and opens a session for it
func (as *AuthService) Register(ctx context.Context, email, password, name string) (*models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: string(hash),
		Name:         name,
		Role:         models.RoleUser,
	}

	user, err = as.users.CreateUser(ctx, user)
	if err != nil {
		return nil, "", err
	}

	return as.openSession(ctx, user)
}

// Login checks credentials and opens a session
func (as *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := as.users.GetUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, models.ErrDataNotFound) {
			return nil, "", models.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", models.ErrInvalidCredentials
	}

	return as.openSession(ctx, user)
}

func (as *AuthService) openSession(ctx context.Context, user *models.User) (*models.User, string, error) {
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: time.Now().Add(as.ttl),
	}

	if err := as.sessions.Create(ctx, session); err != nil {
		return nil, "", err
	}

	tokenString, err := as.token.CreateToken(user, session.ID)
	if err != nil {
		return nil, "", err
	}

	return user, tokenString, nil
}

// Logout revokes the session
func (as *AuthService) Logout(ctx context.Context, sessionID string) error {
	return as.sessions.Delete(ctx, sessionID)
}

// Authenticate verifies the token and checks the session is still live
func (as *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.TokenPayload, error) {
	payload, err := as.token.VerifyToken(tokenString)
	if err != nil {
		return nil, err
	}

	if _, err := as.sessions.Get(ctx, payload.SessionID); err != nil {
		return nil, err
	}

	return payload, nil
}
