// internal/auth/token.go
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type TokenManager struct {
	secret       []byte
	expiryPeriod time.Duration
}

func NewTokenManager(secret string, expiryPeriod time.Duration) *TokenManager {
	return &TokenManager{
		secret:       []byte(secret),
		expiryPeriod: expiryPeriod,
	}
}

// MembershipClaim is the advisory membership snapshot embedded at token
// issuance. It exists for coarse pre-filtering (UI feature gating) only;
// enforcement always goes back to the membership store.
type MembershipClaim struct {
	OrganizationID string `json:"org_id"`
	UnitID         string `json:"unit_id,omitempty"`
	Role           string `json:"role"`
}

type Claims struct {
	UserID        string            `json:"user_id"`
	PersonID      string            `json:"person_id,omitempty"`
	PlatformAdmin bool              `json:"platform_admin"`
	Memberships   []MembershipClaim `json:"memberships,omitempty"`
	jwt.RegisteredClaims
}

func (tm *TokenManager) Generate(userID, personID string, platformAdmin bool, memberships []MembershipClaim) (string, error) {
	claims := Claims{
		UserID:        userID,
		PersonID:      personID,
		PlatformAdmin: platformAdmin,
		Memberships:   memberships,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tm.expiryPeriod)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

func (tm *TokenManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return tm.secret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	return claims, nil
}
