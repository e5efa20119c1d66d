package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token purposes. Access tokens authenticate API calls, refresh tokens mint
// new access tokens, magic tokens are single-purpose sign-in links.
const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
	TypeMagic   = "magic"
)

type Claims struct {
	UserID    string `json:"user_id"`
	TokenType string `json:"token_type,omitempty"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed HS256 access token for the user.
func GenerateToken(userID string, expiration time.Duration, secret string) (string, error) {
	return generate(userID, TypeAccess, expiration, secret)
}

// GenerateRefreshToken creates a signed refresh token for the user.
func GenerateRefreshToken(userID string, expiration time.Duration, secret string) (string, error) {
	return generate(userID, TypeRefresh, expiration, secret)
}

// GenerateMagicToken creates the short-lived token embedded in a magic
// sign-in link.
func GenerateMagicToken(userID string, expiration time.Duration, secret string) (string, error) {
	return generate(userID, TypeMagic, expiration, secret)
}

func generate(userID, tokenType string, expiration time.Duration, secret string) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID:    userID,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// ValidateToken parses and verifies a token of any type.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// ValidateTokenType verifies the token and additionally requires it to carry
// the given purpose, so a magic-link token cannot pass as an access token.
func ValidateTokenType(tokenString, secret, tokenType string) (*Claims, error) {
	claims, err := ValidateToken(tokenString, secret)
	if err != nil {
		return nil, err
	}

	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("unexpected token type %q", claims.TokenType)
	}

	return claims, nil
}
