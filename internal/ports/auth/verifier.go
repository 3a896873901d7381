package auth

import "context"

// AuthVerifier valida un bearer token. Implementaciones: adapters/auth/jwt y adapters/auth/remote.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
