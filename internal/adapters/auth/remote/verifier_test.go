package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newIAM(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != defaultVerifyPath || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("X-Api-Key") != "k1" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		var body verifyRequest
		_ = json.NewDecoder(r.Body).Decode(&body)

		switch body.Token {
		case "good":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"user_id":" u-42 ","email":"a@b.mx"}`))
		case "anon":
			_, _ = w.Write([]byte(`{}`))
		case "boom":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
}

func TestVerify(t *testing.T) {
	srv := newIAM(t)
	defer srv.Close()

	v, err := NewVerifier(Config{BaseURL: srv.URL, APIKey: "k1", Timeout: time.Second})
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	ctx := context.Background()

	claims, err := v.Verify(ctx, "good")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "u-42" || claims.Email != "a@b.mx" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := v.Verify(ctx, "nope"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := v.Verify(ctx, "boom"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
	if _, err := v.Verify(ctx, "anon"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream for missing user_id, got %v", err)
	}
	if _, err := v.Verify(ctx, ""); !errors.Is(err, ErrTokenEmpty) {
		t.Fatalf("expected ErrTokenEmpty, got %v", err)
	}
}

func TestVerify_WrongAPIKey(t *testing.T) {
	srv := newIAM(t)
	defer srv.Close()

	v, err := NewVerifier(Config{BaseURL: srv.URL, APIKey: "bad"})
	if err != nil {
		t.Fatalf("NewVerifier: %v", err)
	}
	if _, err := v.Verify(context.Background(), "good"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestNewVerifier_NotConfigured(t *testing.T) {
	if _, err := NewVerifier(Config{BaseURL: "http://iam"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
	if _, err := NewVerifier(Config{BaseURL: "::bad", APIKey: "k"}); err == nil {
		t.Fatalf("expected invalid base url error")
	}
}
