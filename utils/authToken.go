package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const AccessTokenExpiry = 24 * time.Hour

// Account variants. A token minted for one variant is never accepted by
// the other variant's gate.
const (
	VariantPatient = "patient"
	VariantDoctor  = "doctor"
)

var ErrBadToken = errors.New("invalid token")

// TokenClaims binds an account identity to its variant.
type TokenClaims struct {
	Variant string `json:"variant"`
	jwt.RegisteredClaims
}

// GenerateToken signs an access token for the given account ID and variant.
func GenerateToken(accountID, variant, secret string) (string, error) {
	claims := TokenClaims{
		Variant: variant,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   accountID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(AccessTokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ValidateToken verifies signature and expiry and checks that the token
// was minted for the required variant.
func ValidateToken(tokenString, requiredVariant, secret string) (*TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		// block alg confusion
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrBadToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*TokenClaims)
	if !ok || !token.Valid {
		return nil, ErrBadToken
	}
	if claims.Variant != requiredVariant {
		return nil, ErrBadToken
	}
	if claims.Subject == "" {
		return nil, ErrBadToken
	}
	return claims, nil
}
