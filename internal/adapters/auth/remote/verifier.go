package remote

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Trinidad006/CownectWeb-sub000/internal/platform/httpclient"
	"github.com/Trinidad006/CownectWeb-sub000/internal/ports/auth"
)

var (
	ErrNotConfigured = errors.New("remote auth not configured")
	ErrUnauthorized  = errors.New("remote auth unauthorized")
	ErrUpstream      = errors.New("remote auth upstream error")
	ErrTokenEmpty    = errors.New("token is empty")
)

const defaultVerifyPath = "/v1/tokens/verify"

// Config del IAM remoto. BaseURL y APIKey vienen de AUTH_BASE_URL / AUTH_API_KEY.
type Config struct {
	BaseURL string
	APIKey  string

	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string
	// Si está vacío, se usa /v1/tokens/verify.
	VerifyPath string

	Timeout time.Duration
}

// Verifier implementa auth.AuthVerifier delegando en un servicio de identidad.
type Verifier struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
	verifyPath   string
}

func NewVerifier(cfg Config) (*Verifier, error) {
	if strings.TrimSpace(cfg.BaseURL) == "" || strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNotConfigured
	}
	hc, err := httpclient.New(cfg.BaseURL, httpclient.WithTimeout(cfg.Timeout))
	if err != nil {
		return nil, err
	}

	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}
	p := strings.TrimSpace(cfg.VerifyPath)
	if p == "" {
		p = defaultVerifyPath
	}

	return &Verifier{
		http:         hc,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		verifyPath:   p,
	}, nil
}

type verifyRequest struct {
	Token string `json:"token"`
}

type verifyResponse struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	RanchID string `json:"ranch_id"`
}

func (v *Verifier) Verify(ctx context.Context, token string) (auth.Claims, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	headers := map[string]string{
		v.apiKeyHeader: v.apiKey,
		// Algunos IAM esperan el token en Authorization, aunque también vaya en body.
		"Authorization": "Bearer " + token,
	}

	var out verifyResponse
	err := v.http.DoJSON(ctx, http.MethodPost, v.verifyPath, headers, verifyRequest{Token: token}, &out)
	if err != nil {
		var herr *httpclient.HTTPError
		if errors.As(err, &herr) && (herr.StatusCode == http.StatusUnauthorized || herr.StatusCode == http.StatusForbidden) {
			return auth.Claims{}, ErrUnauthorized
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	out.UserID = strings.TrimSpace(out.UserID)
	if out.UserID == "" {
		return auth.Claims{}, fmt.Errorf("%w: response missing user_id", ErrUpstream)
	}

	return auth.Claims{
		UserID:   out.UserID,
		Email:    strings.TrimSpace(out.Email),
		RanchID: strings.TrimSpace(out.RanchID),
	}, nil
}
