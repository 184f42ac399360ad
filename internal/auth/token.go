// Package auth implements stateless token authentication and password
// hashing.
package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	accessTokenLifetime  = time.Hour
	refreshTokenLifetime = 7 * 24 * time.Hour
)

var (
	ErrTokenInvalid   = errors.New("the token is invalid")
	ErrTokenExpired   = errors.New("the token has expired")
	ErrTokenWrongType = errors.New("a token of the wrong type was used")
	ErrNoAuthHeader   = errors.New("the Authorization header is missing or malformed")
)

// Claims are the claims carried by both token types.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"user_id"`
	TokenType string    `json:"token_type"`
}

// TokenPair is an access token and the refresh token issued with it.
type TokenPair struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}

// secret signs all tokens. It is read from TOKEN_SECRET on startup so
// that tokens survive restarts. Without the variable a random
// per-process secret is used and all tokens are invalidated on
// restart.
var secret = func() []byte {
	if s := os.Getenv("TOKEN_SECRET"); s != "" {
		return []byte(s)
	}

	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("reading random token secret: %v", err))
	}

	log.Debug().Msg("TOKEN_SECRET is not set, using a random per-process secret")
	return b
}()

// NewPair issues a fresh access and refresh token for the user.
func NewPair(userID uuid.UUID) (TokenPair, error) {
	access, err := sign(userID, TokenTypeAccess, accessTokenLifetime)
	if err != nil {
		return TokenPair{}, err
	}

	refresh, err := sign(userID, TokenTypeRefresh, refreshTokenLifetime)
	if err != nil {
		return TokenPair{}, err
	}

	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func sign(userID uuid.UUID, tokenType string, lifetime time.Duration) (string, error) {
	now := time.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(lifetime)),
		},
		UserID:    userID,
		TokenType: tokenType,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("signing %s token: %w", tokenType, err)
	}

	return signed, nil
}

// Parse verifies the token signature and expiry and checks that the
// token is of the expected type.
func Parse(tokenString, expectedType string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrTokenInvalid
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.TokenType != expectedType {
		return nil, ErrTokenWrongType
	}

	return claims, nil
}

// ExtractBearer returns the token from an "Authorization: Bearer"
// header.
func ExtractBearer(header string) (string, error) {
	const prefix = "bearer "

	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", ErrNoAuthHeader
	}

	token := strings.TrimSpace(header[len(prefix):])
	if token == "" {
		return "", ErrNoAuthHeader
	}

	return token, nil
}
