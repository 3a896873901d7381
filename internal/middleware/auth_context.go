package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Trinidad006/CownectWeb-sub000/internal/ports/auth"
)

type ctxKey string

const claimsKey ctxKey = "claims"

// DebugUserHeader identifica al ganadero cuando no hay verifier (modo dev).
const DebugUserHeader = "X-Debug-User-ID"

// AuthContext resuelve la identidad del request y la deja en el context.
// Nunca responde 401 por sí mismo: cada handler exige claims cuando las necesita.
func AuthContext(verifier auth.AuthVerifier) func(http.Handler) http.Handler {
	resolve := func(r *http.Request) (auth.Claims, bool) {
		if verifier == nil {
			uid := strings.TrimSpace(r.Header.Get(DebugUserHeader))
			return auth.Claims{UserID: uid}, uid != ""
		}

		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			return auth.Claims{}, false
		}
		// token inválido o vencido = anónimo
		claims, err := verifier.Verify(r.Context(), token)
		if err != nil || claims.UserID == "" {
			return auth.Claims{}, false
		}
		return claims, true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if claims, ok := resolve(r); ok {
				r = r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func GetClaims(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(auth.Claims)
	return c, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
