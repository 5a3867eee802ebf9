package middleware

import (
	"net/http"
	"strings"

	"github.com/wodwise/wodwise/internal/telemetry/tracing"
	"github.com/wodwise/wodwise/pkg"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
)

type AuthMiddlewareHandler struct {
	apiToken             string
	allowedPaths         map[string]bool
	allowedPathsPrefixes []string
}

func NewAuthMiddlewareHandler(apiToken string) *AuthMiddlewareHandler {
	return &AuthMiddlewareHandler{
		apiToken: apiToken,
		allowedPaths: map[string]bool{
			"/":        true,
			"/health":  true,
			"/version": true,
		},
		allowedPathsPrefixes: []string{
			"/vocabulary",
		},
	}
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

func (h *AuthMiddlewareHandler) AuthCheck() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || h.pathIsAlwaysAllowed(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			_, span := tracing.GlobalTracer.Start(r.Context(), "middleware.authCheck")
			defer span.End()

			token := r.Header.Get("X-WODWISE-TOKEN")
			if token == "" || token != h.apiToken {
				span.SetStatus(codes.Error, "unauthorized")
				log.Tracef("unauthorized access attempt on [%s]", r.URL.Path)
				pkg.WriteResponse(w, pkg.ContentType.JSON, `{"error":"unauthorized"}`, http.StatusUnauthorized)
				return
			}

			span.SetStatus(codes.Ok, "authorized")
			next.ServeHTTP(w, r)
		})
	}
}
