package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"dental-lab-backend/pkg/jwt"
	"dental-lab-backend/pkg/response"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey    contextKey = "user_id"
	UserEmailKey contextKey = "user_email"
	UserRolesKey contextKey = "user_roles"
)

// AuthMiddleware verifies access tokens statelessly: signature, expiry and
// token type only. Refresh-token revocation lives in the session store and
// never gates access-token requests.
type AuthMiddleware struct {
	jwtService *jwt.JWTService
}

func NewAuthMiddleware(jwtService *jwt.JWTService) *AuthMiddleware {
	return &AuthMiddleware{jwtService: jwtService}
}

func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			response.Unauthorized(w, "Authorization header is required", response.CodeNoToken)
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Unauthorized(w, "Invalid authorization header format", response.CodeNoToken)
			return
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.Unauthorized(w, "Token has expired", response.CodeTokenExpired)
				return
			}
			response.Unauthorized(w, "Invalid token", response.CodeInvalidToken)
			return
		}

		// A refresh token never authorizes an API call.
		if claims.TokenType != jwt.AccessToken {
			response.Unauthorized(w, "Invalid token type", response.CodeInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UserEmailKey, claims.Email)
		ctx = context.WithValue(ctx, UserRolesKey, claims.Roles)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext extracts the authenticated user ID from context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetUserEmailFromContext extracts the authenticated email from context
func GetUserEmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(UserEmailKey).(string)
	return email, ok
}

// GetUserRolesFromContext extracts the role names from context
func GetUserRolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(UserRolesKey).([]string)
	return roles, ok
}

// HasRole reports whether the context carries any of the given roles.
func HasRole(ctx context.Context, names ...string) bool {
	roles, ok := GetUserRolesFromContext(ctx)
	if !ok {
		return false
	}
	for _, role := range roles {
		for _, name := range names {
			if role == name {
				return true
			}
		}
	}
	return false
}
