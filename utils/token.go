package authUtils

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
)

// ErrInvalidToken is returned for malformed, expired or wrongly signed tokens.
var ErrInvalidToken = errors.New("invalid token")

// Claims is what a session token carries.
type Claims struct {
	UserID string
	Role   string
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenIssuer(secret string, ttl time.Duration) *TokenIssuer {
	if ttl <= 0 {
		ttl = 72 * time.Hour
	}
	return &TokenIssuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// TTL is how long issued tokens stay valid.
func (t *TokenIssuer) TTL() time.Duration { return t.ttl }

// GenerateToken generates a JWT token for a given user ID
func (t *TokenIssuer) GenerateToken(userID, role string) (string, error) {
	if len(t.secret) == 0 {
		return "", fmt.Errorf("jwt secret is not set")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     t.now().Add(t.ttl).Unix(),
	})

	return token.SignedString(t.secret)
}

// ParseToken verifies tokenString and returns its claims.
func (t *TokenIssuer) ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return nil, fmt.Errorf("%w: missing user_id claim", ErrInvalidToken)
	}
	role, _ := claims["role"].(string)
	return &Claims{UserID: userID, Role: role}, nil
}
