package auth

import (
	"context"
	"net/http"
	"strings"

	"autoschool/internal/models"
	"autoschool/pkg/tokenstore"

	"github.com/dgrijalva/jwt-go"
)

type contextKey struct{ name string }

var userKey = contextKey{"user"}
var tokenKey = contextKey{"token"}

// CurrentUser returns the authenticated requester placed in the context by
// JWTMiddleware.
func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}

// BearerToken returns the raw token the requester presented, for logout.
func BearerToken(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(tokenKey).(string)
	return token, ok
}

// UserLoader resolves the token's user id to a full user record so that
// downstream code sees the current role and grants, not a stale claim.
type UserLoader interface {
	GetUserByID(id uint) (*models.User, error)
}

// JWTMiddleware authenticates requests, rejects revoked tokens, and threads
// the requester through the request context.
func JWTMiddleware(jwtSecret string, users UserLoader, tokens tokenstore.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			bearerToken := strings.Split(authHeader, " ")
			if len(bearerToken) != 2 || bearerToken[0] != "Bearer" {
				http.Error(w, "Invalid token format", http.StatusUnauthorized)
				return
			}

			token, err := jwt.ParseWithClaims(bearerToken[1], &jwt.MapClaims{}, func(token *jwt.Token) (interface{}, error) {
				return []byte(jwtSecret), nil
			})
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			claims, ok := token.Claims.(*jwt.MapClaims)
			if !ok || !token.Valid {
				http.Error(w, "Invalid token claims", http.StatusUnauthorized)
				return
			}

			revoked, err := tokens.IsRevoked(r.Context(), bearerToken[1])
			if err != nil {
				http.Error(w, "Authorization check failed", http.StatusInternalServerError)
				return
			}
			if revoked {
				http.Error(w, "Token has been revoked", http.StatusUnauthorized)
				return
			}

			userID, ok := (*claims)["user_id"].(float64)
			if !ok {
				http.Error(w, "Invalid user ID in token", http.StatusUnauthorized)
				return
			}

			user, err := users.GetUserByID(uint(userID))
			if err != nil {
				http.Error(w, "Unknown user", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			ctx = context.WithValue(ctx, tokenKey, bearerToken[1])
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Require wraps a handler with a role predicate from the authz package.
func Require(pred func(*models.User) bool) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user, ok := CurrentUser(r.Context())
			if !ok || !pred(user) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next(w, r)
		}
	}
}

// RequireMethodAware is Require for predicates that also depend on the HTTP
// method, such as admin-or-read-only.
func RequireMethodAware(pred func(*models.User, string) bool) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			user, ok := CurrentUser(r.Context())
			if !ok || !pred(user, r.Method) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			next(w, r)
		}
	}
}
