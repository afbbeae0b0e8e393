package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/2beens/gymcoach/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

const AuthTokenHeader = "X-GYMCOACH-TOKEN"

type AuthMiddlewareHandler struct {
	apiToken             string
	allowedPaths         map[string]bool
	allowedPathsPrefixes []string
}

// NewAuthMiddlewareHandler protects every path but the given ones with a static API token.
// An empty token disables the check, which is only meant for local development.
func NewAuthMiddlewareHandler(apiToken string, allowedPaths ...string) *AuthMiddlewareHandler {
	h := &AuthMiddlewareHandler{
		apiToken:     apiToken,
		allowedPaths: make(map[string]bool),
	}
	for _, p := range allowedPaths {
		if strings.HasSuffix(p, "/") && p != "/" {
			h.allowedPathsPrefixes = append(h.allowedPathsPrefixes, p)
			continue
		}
		h.allowedPaths[p] = true
	}
	return h
}

func (h *AuthMiddlewareHandler) pathIsAlwaysAllowed(path string) bool {
	if h.allowedPaths[path] {
		return true
	}
	for _, prefix := range h.allowedPathsPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func requestToken(r *http.Request) string {
	if token := r.Header.Get(AuthTokenHeader); token != "" {
		return token
	}
	if bearer, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return bearer
	}
	return ""
}

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.auth")
			defer span.End()

			if r.Method == http.MethodOptions {
				w.Header().Add("Allow", "GET, POST, DELETE, OPTIONS")
				w.WriteHeader(http.StatusOK)
				span.SetStatus(codes.Ok, "options-ok")
				return
			}

			if h.apiToken == "" || h.pathIsAlwaysAllowed(r.URL.Path) {
				span.SetStatus(codes.Ok, "ok")
				next.ServeHTTP(w, r)
				return
			}

			authToken := requestToken(r)
			if authToken == "" {
				log.Tracef("[missing token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "missing-auth-token")
				return
			}

			if subtle.ConstantTimeCompare([]byte(authToken), []byte(h.apiToken)) != 1 {
				log.Tracef("[invalid token] [auth middleware] unauthorized => %s", r.URL.Path)
				http.Error(w, "no can do", http.StatusUnauthorized)
				span.SetStatus(codes.Error, "invalid-token")
				return
			}

			span.SetStatus(codes.Ok, "ok")
			next.ServeHTTP(w, r)
		})
	}
}
