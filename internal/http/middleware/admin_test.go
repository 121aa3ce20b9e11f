package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-admin-secret"

func signToken(t *testing.T, secret string, method jwt.SigningMethod, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestAdminAuth_RequireAdminForWrites(t *testing.T) {
	var seenRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if claims, ok := ClaimsFromContext(r.Context()); ok {
			seenRole = claims.EffectiveRole()
		}
		w.WriteHeader(http.StatusOK)
	})

	future := time.Now().Add(time.Hour).Unix()
	past := time.Now().Add(-time.Hour).Unix()

	tests := []struct {
		name       string
		secret     string
		method     string
		authHeader string
		wantStatus int
		wantRole   string
	}{
		{
			name:       "disabled without secret",
			secret:     "",
			method:     http.MethodPost,
			wantStatus: http.StatusOK,
		},
		{
			name:       "reads pass through",
			secret:     testSecret,
			method:     http.MethodGet,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing header",
			secret:     testSecret,
			method:     http.MethodPost,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			secret:     testSecret,
			method:     http.MethodPut,
			authHeader: "Token abc",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "admin role",
			secret:     testSecret,
			method:     http.MethodPut,
			authHeader: "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin", "exp": future}),
			wantStatus: http.StatusOK,
			wantRole:   "admin",
		},
		{
			name:       "service role",
			secret:     testSecret,
			method:     http.MethodDelete,
			authHeader: "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"role": "service_role"}),
			wantStatus: http.StatusOK,
			wantRole:   "service_role",
		},
		{
			name:   "role from app metadata",
			secret: testSecret,
			method: http.MethodPatch,
			authHeader: "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{
				"role":         "authenticated",
				"app_metadata": map[string]interface{}{"role": "admin"},
			}),
			wantStatus: http.StatusOK,
			wantRole:   "admin",
		},
		{
			name:       "non admin role",
			secret:     testSecret,
			method:     http.MethodPost,
			authHeader: "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"role": "authenticated"}),
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "expired token",
			secret:     testSecret,
			method:     http.MethodPost,
			authHeader: "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin", "exp": past}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong secret",
			secret:     testSecret,
			method:     http.MethodPost,
			authHeader: "Bearer " + signToken(t, "other-secret", jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin"}),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong algorithm",
			secret:     testSecret,
			method:     http.MethodPost,
			authHeader: "Bearer " + signToken(t, testSecret, jwt.SigningMethodHS512, jwt.MapClaims{"role": "admin"}),
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seenRole = ""
			handler := NewAdminAuth(tt.secret).RequireAdminForWrites(next)

			req := httptest.NewRequest(tt.method, "/api/content", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantRole, seenRole)
			if tt.wantStatus >= 400 {
				assert.Contains(t, w.Body.String(), `"success":false`)
			}
		})
	}
}
