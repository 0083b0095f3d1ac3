package jwt

import (
	"context"
	"errors"
	"time"

	"clinic-portal/config"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrMissingUserID = errors.New("user_id claim not found")
)

// Claims mirrors the session token issued by the clinic auth service.
type Claims struct {
	UserID int `json:"user_id"`
	jwt.RegisteredClaims
}

// SessionParser reads session tokens. The BFF never issues tokens, it only
// needs the user id and expiry of the cookie the auth service set.
type SessionParser struct {
	secret []byte
	now    func() time.Time
}

func NewSessionParser(cfg config.SessionConfig) *SessionParser {
	return &SessionParser{secret: []byte(cfg.Secret), now: time.Now}
}

// Parse verifies the HMAC signature when a secret is configured. Without a
// secret the claims are read unverified and the upstream API stays the
// authority on the token.
func (s *SessionParser) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}

	if len(s.secret) == 0 {
		parser := jwt.NewParser()
		if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
			return nil, err
		}
		if claims.ExpiresAt != nil && claims.ExpiresAt.Before(s.now()) {
			return nil, jwt.ErrTokenExpired
		}
	} else {
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid signing method")
			}
			return s.secret, nil
		}, jwt.WithTimeFunc(s.now))
		if err != nil {
			return nil, err
		}
		if !token.Valid {
			return nil, ErrInvalidToken
		}
	}

	if claims.UserID == 0 {
		return nil, ErrMissingUserID
	}

	return claims, nil
}

type contextKey string

const userIDKey contextKey = "user_id"

// WithUserID stores the authenticated user id in ctx.
func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

func UserIDFromContext(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}
