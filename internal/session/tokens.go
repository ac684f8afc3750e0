package session

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lgbarn/chessboard-go/internal/errors"
)

// tokenIssuer is the iss claim of every seat token.
const tokenIssuer = "chessboard"

// Tokens issues and checks seat tokens: HS256 JWTs whose subject is the ID of
// the game they may move in.
type Tokens struct {
	secret []byte
	ttl    time.Duration // Zero means tokens never expire
	now    func() time.Time
}

// NewTokens creates a token issuer. secret must not be empty.
func NewTokens(secret []byte, ttl time.Duration) (*Tokens, error) {
	if len(secret) == 0 {
		return nil, fmt.Errorf("empty token secret: %w", errors.ErrInvalidConfig)
	}
	return &Tokens{secret: secret, ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for gameID.
func (t *Tokens) Issue(gameID string) (string, error) {
	now := t.now()
	claims := jwt.RegisteredClaims{
		Issuer:   tokenIssuer,
		Subject:  gameID,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if t.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(t.ttl))
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("sign seat token: %w", err)
	}
	return signed, nil
}

// Verify checks that token is a valid, unexpired seat token for gameID.
func (t *Tokens) Verify(token, gameID string) error {
	if token == "" {
		return fmt.Errorf("missing token: %w", errors.ErrInvalidToken)
	}
	_, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{},
		func(*jwt.Token) (interface{}, error) { return t.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithSubject(gameID),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidToken, err)
	}
	return nil
}
