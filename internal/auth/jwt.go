package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"quiz-platform/internal/models"
)

// Claims carries the identity issued at login. Role gates admin endpoints.
type Claims struct {
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	UserEmail string `json:"userEmail"`
	AvatarURL string `json:"avatarUrl"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

type TokenManager struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl}
}

func (m *TokenManager) Generate(user *models.User) (string, error) {
	claims := &Claims{
		UserID:    user.ID.Hex(),
		Username:  user.Name,
		UserEmail: user.Email,
		AvatarURL: user.Avatar,
		Role:      user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *TokenManager) Validate(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, errors.New("token is required")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, errors.New("invalid token")
}
