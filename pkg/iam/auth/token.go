package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redlaboral/portal/pkg/kernel"
)

// Role identifies the kind of account behind a token
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleCompany   Role = "company"
	RoleAdmin     Role = "admin"
)

// TokenClaims is the decoded payload of an access token
type TokenClaims struct {
	UserID    kernel.UserID
	Email     kernel.Email
	Role      Role
	Scopes    []string
	ExpiresAt time.Time
}

// TokenService issues and validates signed access tokens
type TokenService interface {
	GenerateAccessToken(userID kernel.UserID, email kernel.Email, role Role, scopes []string) (string, error)
	ValidateAccessToken(tokenString string) (*TokenClaims, error)
}

type jwtClaims struct {
	Email  string   `json:"email"`
	Role   string   `json:"role"`
	Scopes []string `json:"scopes,omitempty"`
	jwt.RegisteredClaims
}

// JWTTokenService implements TokenService with HMAC-signed JWTs
type JWTTokenService struct {
	secret   []byte
	issuer   string
	lifetime time.Duration
}

func NewJWTTokenService(secret, issuer string, lifetime time.Duration) *JWTTokenService {
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &JWTTokenService{
		secret:   []byte(secret),
		issuer:   issuer,
		lifetime: lifetime,
	}
}

func (s *JWTTokenService) GenerateAccessToken(userID kernel.UserID, email kernel.Email, role Role, scopes []string) (string, error) {
	now := time.Now()

	claims := jwtClaims{
		Email:  email.String(),
		Role:   string(role),
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", ErrInvalidToken().WithDetail("error", err.Error())
	}

	return signed, nil
}

func (s *JWTTokenService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	var claims jwtClaims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken()
		}
		return nil, ErrInvalidToken().WithDetail("error", err.Error())
	}
	if !token.Valid {
		return nil, ErrInvalidToken()
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &TokenClaims{
		UserID:    kernel.UserID(claims.Subject),
		Email:     kernel.Email(claims.Email),
		Role:      Role(claims.Role),
		Scopes:    claims.Scopes,
		ExpiresAt: expiresAt,
	}, nil
}
