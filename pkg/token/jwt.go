package token

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/yeol2/8-pumati-be/pkg/apperror"
)

// Claims carried by access and refresh tokens. Refresh tokens only fill MemberID.
type Claims struct {
	MemberID uint   `json:"id"`
	Email    string `json:"email,omitempty"`
	Role     string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// SignupClaims is the payload of a signup token handed out after the OAuth
// handshake, before the member record exists.
type SignupClaims struct {
	Provider   string `json:"provider"`
	ProviderID string `json:"providerId"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

type Manager struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewManager(secret string, accessTTL, refreshTTL time.Duration) *Manager {
	return &Manager{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

func (m *Manager) GenerateAccessToken(memberID uint, email, role string) (string, error) {
	now := time.Now()
	claims := Claims{
		MemberID: memberID,
		Email:    email,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *Manager) GenerateRefreshToken(memberID uint) (string, error) {
	now := time.Now()
	claims := Claims{
		MemberID: memberID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.refreshTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// GenerateSignupToken mints a short-lived token binding the OAuth identity to
// the pending signup. Normally issued by the OAuth callback flow.
func (m *Manager) GenerateSignupToken(provider, providerID, email string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SignupClaims{
		Provider:   provider,
		ProviderID: providerID,
		Email:      email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// ParseSignupToken validates a signup token and returns its OAuth identity claims.
func (m *Manager) ParseSignupToken(tokenString string) (*SignupClaims, error) {
	claims := &SignupClaims{}
	if err := m.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Provider == "" || claims.ProviderID == "" || claims.Email == "" {
		return nil, apperror.ErrInvalidToken
	}
	return claims, nil
}

// ExtractMemberID resolves the member id from an `Authorization: Bearer <token>`
// header value.
func (m *Manager) ExtractMemberID(authorizationHeader string) (uint, error) {
	if authorizationHeader == "" || !strings.HasPrefix(authorizationHeader, "Bearer ") {
		return 0, apperror.ErrInvalidToken
	}

	claims := &Claims{}
	if err := m.parse(strings.TrimPrefix(authorizationHeader, "Bearer "), claims); err != nil {
		return 0, err
	}
	if claims.MemberID == 0 {
		return 0, apperror.ErrInvalidToken
	}
	return claims.MemberID, nil
}

func (m *Manager) parse(tokenString string, claims jwt.Claims) error {
	parsed, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return apperror.ErrInvalidToken
	}
	return nil
}
