package main

import (
	"context"
	"net/http"

	"github.com/sushihentaime/blogapi/internal/userservice"
)

type contextKey string

const (
	claimsContextKey = contextKey("claims")
	routeContextKey  = contextKey("route")
)

func (app *application) contextSetClaims(r *http.Request, claims *userservice.Claims) *http.Request {
	ctx := context.WithValue(r.Context(), claimsContextKey, claims)
	return r.WithContext(ctx)
}

// contextGetClaims returns nil when the request did not pass through requireAuth.
func (app *application) contextGetClaims(r *http.Request) *userservice.Claims {
	claims, ok := r.Context().Value(claimsContextKey).(*userservice.Claims)
	if !ok {
		return nil
	}
	return claims
}

// contextSetRoute records the matched route pattern for the metrics middleware.
func contextSetRoute(r *http.Request, pattern string) {
	if route, ok := r.Context().Value(routeContextKey).(*string); ok {
		*route = pattern
	}
}
