package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenLifetime is the fixed validity window for player tokens.
const TokenLifetime = 24 * time.Hour

// JWT validation errors.
var (
	// ErrInvalidToken indicates a token is malformed or fails validation.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken indicates a token has expired.
	ErrExpiredToken = errors.New("token expired")
)

// PlayerClaims defines JWT claims for players. The role and deletion flags
// are a snapshot of the account row at issuance time; they are not refreshed
// until the player logs in again.
type PlayerClaims struct {
	PlayerID  uint64 `json:"id"`
	Username  string `json:"username"`
	IsAdmin   bool   `json:"is_admin"`
	IsDeleted bool   `json:"is_deleted"`
	jwt.RegisteredClaims
}

// GenerateToken signs a player JWT valid for TokenLifetime from now.
func GenerateToken(secret string, playerID uint64, username string, isAdmin, isDeleted bool) (string, error) {
	if secret == "" {
		return "", errors.New("security: empty signing secret")
	}
	now := time.Now().UTC()
	claims := PlayerClaims{
		PlayerID:  playerID,
		Username:  username,
		IsAdmin:   isAdmin,
		IsDeleted: isDeleted,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenLifetime)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken validates a player JWT and returns its claims. It performs no
// database lookup; callers get the claims exactly as they were embedded.
func ParseToken(secret string, tokenString string) (*PlayerClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &PlayerClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*PlayerClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
