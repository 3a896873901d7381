package jwt

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Trinidad006/CownectWeb-sub000/internal/ports/auth"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotConfigured = errors.New("jwt verifier not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrTokenInvalid  = errors.New("token is invalid")
	ErrTokenExpired  = errors.New("token is expired")
)

type Config struct {
	Secret string
	Issuer string // opcional; si viene, el token debe traer el mismo iss

	Now func() time.Time
}

// tokenClaims: el usuario va en sub; user_id se acepta por compatibilidad.
type tokenClaims struct {
	jwtlib.RegisteredClaims
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	RanchID string `json:"ranch_id"`
}

// Verifier implementa auth.AuthVerifier con tokens HS256 firmados con un secreto compartido.
type Verifier struct {
	secret []byte
	issuer string
	now    func() time.Time
}

func NewVerifier(cfg Config) (*Verifier, error) {
	secret := strings.TrimSpace(cfg.Secret)
	if secret == "" {
		return nil, ErrNotConfigured
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Verifier{
		secret: []byte(secret),
		issuer: strings.TrimSpace(cfg.Issuer),
		now:    now,
	}, nil
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	opts := []jwtlib.ParserOption{
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithExpirationRequired(),
		jwtlib.WithTimeFunc(v.now),
	}
	if v.issuer != "" {
		opts = append(opts, jwtlib.WithIssuer(v.issuer))
	}

	var parsed tokenClaims
	if _, err := jwtlib.ParseWithClaims(token, &parsed, func(t *jwtlib.Token) (any, error) {
		return v.secret, nil
	}, opts...); err != nil {
		return auth.Claims{}, mapError(err)
	}

	userID := strings.TrimSpace(parsed.Subject)
	if userID == "" {
		userID = strings.TrimSpace(parsed.UserID)
	}
	if userID == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing subject", ErrTokenInvalid)
	}

	return auth.Claims{
		UserID:   userID,
		Email:    strings.TrimSpace(parsed.Email),
		RanchID: strings.TrimSpace(parsed.RanchID),
	}, nil
}

// Sign emite un token para userID. Lo usan los tests y el comando de desarrollo.
func (v *Verifier) Sign(userID string, ttl time.Duration) (string, error) {
	now := v.now()
	claims := tokenClaims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			Issuer:    v.issuer,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(v.secret)
}

func mapError(err error) error {
	switch {
	case errors.Is(err, jwtlib.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwtlib.ErrTokenSignatureInvalid), errors.Is(err, jwtlib.ErrTokenUnverifiable):
		return fmt.Errorf("%w: bad signature or alg", ErrTokenInvalid)
	default:
		return fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
}
