package jwtutil

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/ketanMehtaa/gymone/pkg/config"
)

// Validation outcomes. Callers branch on these rather than inspecting the
// underlying jwt library errors; both collapse to an unauthenticated
// response at the API surface.
var (
	// ErrExpired means the token was well formed and correctly signed
	// but its lifetime has elapsed.
	ErrExpired = errors.New("token expired")
	// ErrInvalid covers malformed tokens and bad signatures.
	ErrInvalid = errors.New("token invalid")
)

// UserClaims represents the JWT claims for an authenticated principal.
// GymID is absent for super admins.
type UserClaims struct {
	Email  string  `json:"email"`
	UserID string  `json:"user_id"`
	Role   string  `json:"role"`
	GymID  *string `json:"gym_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies the bearer tokens the API hands out.
type TokenService struct {
	key      []byte
	lifetime time.Duration
}

// New creates a TokenService from JWT configuration.
func New(cfg *config.JWTConfig) *TokenService {
	return &TokenService{
		key:      []byte(cfg.SigningKey),
		lifetime: time.Duration(cfg.ExpirationHours) * time.Hour,
	}
}

// Generate creates a signed token carrying the principal's identity, role
// and owning gym.
func (s *TokenService) Generate(userID, email, role string, gymID *string) (string, error) {
	now := time.Now()
	claims := UserClaims{
		Email:  email,
		UserID: userID,
		Role:   role,
		GymID:  gymID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.key)
}

// Validate parses and verifies a token. It returns the claims, ErrExpired
// or ErrInvalid; it never panics or leaks library errors upward.
func (s *TokenService) Validate(tokenString string) (*UserClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &UserClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.key, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalid
	}
	return claims, nil
}
