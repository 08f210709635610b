package service

import "github.com/styleshelf/storefront/internal/models"

type TokenService interface {
	CreateToken(user *models.User, sessionID string) (string, error)
	VerifyToken(tokenString string) (*models.TokenPayload, error)
}
