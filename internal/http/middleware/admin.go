package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const AdminClaimsKey contextKey = "admin_claims"

// Roles allowed to call write routes
var adminRoles = map[string]bool{
	"admin":        true,
	"service_role": true,
}

// AdminClaims are the parts of a bearer token the write routes care about
type AdminClaims struct {
	Role        string                 `json:"role"`
	AppMetadata map[string]interface{} `json:"app_metadata,omitempty"`
	jwt.RegisteredClaims
}

// EffectiveRole prefers the top-level role and falls back to app_metadata.role
func (c *AdminClaims) EffectiveRole() string {
	if adminRoles[c.Role] {
		return c.Role
	}
	if role, ok := c.AppMetadata["role"].(string); ok && role != "" {
		return role
	}
	return c.Role
}

// AdminAuth guards write methods with an HS256 bearer token
type AdminAuth struct {
	secret []byte
}

// NewAdminAuth returns a guard for the given secret. An empty secret disables it.
func NewAdminAuth(secret string) *AdminAuth {
	return &AdminAuth{secret: []byte(secret)}
}

func (a *AdminAuth) Enabled() bool {
	return len(a.secret) > 0
}

// RequireAdminForWrites lets reads through and checks the token on everything else
func (a *AdminAuth) RequireAdminForWrites(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !a.Enabled() || isReadMethod(r.Method) {
			next.ServeHTTP(w, r)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			writeAuthError(w, "Authorization header is required", http.StatusUnauthorized)
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			writeAuthError(w, "Invalid authorization header format", http.StatusUnauthorized)
			return
		}

		claims, err := a.parse(parts[1])
		if err != nil {
			writeAuthError(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		if !adminRoles[claims.EffectiveRole()] {
			writeAuthError(w, "Admin access required", http.StatusForbidden)
			return
		}

		ctx := context.WithValue(r.Context(), AdminClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *AdminAuth) parse(tokenString string) (*AdminClaims, error) {
	claims := &AdminClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// ClaimsFromContext returns the verified claims of the current request, if any
func ClaimsFromContext(ctx context.Context) (*AdminClaims, bool) {
	claims, ok := ctx.Value(AdminClaimsKey).(*AdminClaims)
	return claims, ok
}

func isReadMethod(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

func writeAuthError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"success": false,
		"error":   message,
	})
}
