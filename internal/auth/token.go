package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/espace-client/backend/internal/models"
)

const (
	// TokenCookie is the cookie carrying the session token.
	TokenCookie = "token"

	// DefaultTokenTTL is the validity window of an issued token.
	DefaultTokenTTL = 48 * time.Hour
)

var (
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenTampered  = errors.New("token signature invalid")
	ErrTokenMalformed = errors.New("token malformed")
)

// Claims is the identity and profile snapshot embedded in a session token.
// The snapshot is frozen at issuance: profile edits made afterwards are not
// reflected until the user logs in again.
type Claims struct {
	jwt.RegisteredClaims
	UserID        string `json:"id"`
	Email         string `json:"email"`
	Nom           string `json:"nom"`
	Prenom        string `json:"prenom"`
	DateNaissance string `json:"datenaissance"`
	Telephone     string `json:"telephone"`
	Adresse       string `json:"adresse"`
}

// TokenService signs and verifies session tokens with a shared HMAC secret.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret []byte, ttl time.Duration) (*TokenService, error) {
	if len(secret) == 0 {
		return nil, errors.New("token secret must not be empty")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: secret, ttl: ttl, now: time.Now}, nil
}

// TTL returns the validity window of issued tokens.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue mints a signed token carrying the user's identity and profile snapshot.
func (s *TokenService) Issue(u *models.User) (string, error) {
	now := s.now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		UserID:        u.ID,
		Email:         u.Email,
		Nom:           u.Nom,
		Prenom:        u.Prenom,
		DateNaissance: u.DateNaissance,
		Telephone:     u.Telephone,
		Adresse:       u.Adresse,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify checks signature and expiry and returns the embedded claims.
// Failures map to ErrTokenExpired, ErrTokenTampered or ErrTokenMalformed;
// handlers collapse all three into one outward message.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrTokenTampered
	case err != nil:
		return nil, ErrTokenMalformed
	case !token.Valid:
		return nil, ErrTokenMalformed
	}
	return claims, nil
}

type claimsKey struct{}

// WithClaims stores verified claims in the request context.
func WithClaims(ctx context.Context, c *Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// ClaimsFromContext returns the claims placed by the auth middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*Claims)
	return c, ok
}
