package http

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"storefront-backend/internal/auth"
	"storefront-backend/internal/metrics"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

type contextKey string

const claimsKey contextKey = "claims"

// Authenticate parses a Bearer token when one is present and stores the
// claims on the request context. Requests without a valid token proceed
// unauthenticated; the require* middlewares decide what that means per route.
func Authenticate(jwtSecret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header != "" {
				tokenString := strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(header, "Bearer "), "bearer "))
				if claims, err := auth.VerifyToken(jwtSecret, tokenString); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ObserveRequests records per-route request durations. The route pattern is
// resolved after the handler runs so parameterized paths collapse into one
// series instead of one per id.
func ObserveRequests(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			m.RequestDuration.
				WithLabelValues(route, strconv.Itoa(ww.Status())).
				Observe(time.Since(start).Seconds())
		})
	}
}

func claimsFromContext(ctx context.Context) *auth.Claims {
	claims, _ := ctx.Value(claimsKey).(*auth.Claims)
	return claims
}

// RequireCorrectUser permits the user named in the {userID} route parameter,
// or an admin.
func RequireCorrectUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r.Context())
		if claims == nil {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		userID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid user id")
			return
		}
		if !claims.IsAdmin && (claims.UserID == nil || *claims.UserID != userID) {
			respondError(w, http.StatusUnauthorized, "not authorized for this user")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCorrectOwner permits the owner named in the {ownerID} route
// parameter, or an admin.
func RequireCorrectOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r.Context())
		if claims == nil {
			respondError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		ownerID, err := strconv.ParseInt(chi.URLParam(r, "ownerID"), 10, 64)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid owner id")
			return
		}
		if !claims.IsAdmin && (claims.OwnerID == nil || *claims.OwnerID != ownerID) {
			respondError(w, http.StatusUnauthorized, "not authorized for this owner")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireOwner permits any authenticated store owner (or admin), without a
// route-parameter match. Store-level ownership is checked in the handler
// against the store row itself.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := claimsFromContext(r.Context())
		if claims == nil || (!claims.IsAdmin && !claims.IsOwner()) {
			respondError(w, http.StatusUnauthorized, "store owner authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
