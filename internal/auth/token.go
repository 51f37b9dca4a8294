package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrMissingToken is returned when a request carries no bearer token.
	ErrMissingToken = errors.New("no token, authorization has been denied")
	// ErrTokenExpired is returned for a well-signed token past its expiry.
	ErrTokenExpired = errors.New("token is expired")
	// ErrTokenInvalid covers bad signatures, algorithms and claims.
	ErrTokenInvalid = errors.New("token is not valid")
)

// Identity is the authenticated caller carried by a token.
type Identity struct {
	UserID uuid.UUID `json:"id"`
	Email  string    `json:"email"`
}

// Claims is the signed token payload.
type Claims struct {
	User Identity `json:"user"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// IssuerOption configures an Issuer.
type IssuerOption func(*Issuer)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) IssuerOption {
	return func(i *Issuer) {
		i.now = now
	}
}

// NewIssuer creates an Issuer whose tokens live for ttl.
func NewIssuer(secret string, ttl time.Duration, opts ...IssuerOption) *Issuer {
	i := &Issuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// Issue signs a token for id.
func (i *Issuer) Issue(id Identity) (string, error) {
	now := i.now()
	claims := &Claims{
		User: id,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return signed, nil
}

// Verify checks the signature and expiry of token and returns its identity.
func (i *Issuer) Verify(token string) (*Identity, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}

		return nil, fmt.Errorf("%w: %w", ErrTokenInvalid, err)
	}

	if !parsed.Valid || claims.User.UserID == uuid.Nil {
		return nil, ErrTokenInvalid
	}

	return &claims.User, nil
}
