package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dental-lab-backend/config"
	"dental-lab-backend/internal/domain/entity"
	"dental-lab-backend/pkg/jwt"
	"dental-lab-backend/pkg/response"

	"github.com/google/uuid"
)

func testJWTService(accessExpiry time.Duration) *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		Issuer:        "dental-lab-test",
		Audience:      "dental-lab-api",
		AccessExpiry:  accessExpiry,
		RefreshExpiry: time.Hour,
	})
}

func okHandler(called *bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestAuthenticateMissingHeader(t *testing.T) {
	m := NewAuthMiddleware(testJWTService(time.Minute))
	called := false

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	m.Authenticate(okHandler(&called)).ServeHTTP(rec, req)

	if called {
		t.Fatal("handler must not run without a token")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if resp := decodeEnvelope(t, rec); resp.Code != response.CodeNoToken {
		t.Fatalf("code = %s, want %s", resp.Code, response.CodeNoToken)
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	svc := testJWTService(-time.Minute)
	m := NewAuthMiddleware(svc)
	called := false

	token, err := svc.GenerateAccessToken(uuid.New(), "user@lab.test", nil)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	m.Authenticate(okHandler(&called)).ServeHTTP(rec, req)

	if called {
		t.Fatal("handler must not run with an expired token")
	}
	if resp := decodeEnvelope(t, rec); resp.Code != response.CodeTokenExpired {
		t.Fatalf("code = %s, want %s", resp.Code, response.CodeTokenExpired)
	}
}

func TestAuthenticateGarbageToken(t *testing.T) {
	m := NewAuthMiddleware(testJWTService(time.Minute))
	called := false

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	m.Authenticate(okHandler(&called)).ServeHTTP(rec, req)

	if called {
		t.Fatal("handler must not run with a garbage token")
	}
	if resp := decodeEnvelope(t, rec); resp.Code != response.CodeInvalidToken {
		t.Fatalf("code = %s, want %s", resp.Code, response.CodeInvalidToken)
	}
}

func TestAuthenticateRejectsRefreshToken(t *testing.T) {
	svc := testJWTService(time.Minute)
	m := NewAuthMiddleware(svc)
	called := false

	token, _, err := svc.GenerateRefreshToken(uuid.New())
	if err != nil {
		t.Fatalf("failed to generate refresh token: %v", err)
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	m.Authenticate(okHandler(&called)).ServeHTTP(rec, req)

	if called {
		t.Fatal("refresh token must not authorize a request")
	}
	if resp := decodeEnvelope(t, rec); resp.Code != response.CodeInvalidToken {
		t.Fatalf("code = %s, want %s", resp.Code, response.CodeInvalidToken)
	}
}

func TestAuthenticatePopulatesContext(t *testing.T) {
	svc := testJWTService(time.Minute)
	m := NewAuthMiddleware(svc)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID, "user@lab.test", []string{entity.RoleStaff})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	var gotID uuid.UUID
	var gotRoles []string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID, _ = GetUserIDFromContext(r.Context())
		gotRoles, _ = GetUserRolesFromContext(r.Context())
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	m.Authenticate(handler).ServeHTTP(rec, req)

	if gotID != userID {
		t.Fatalf("user ID = %s, want %s", gotID, userID)
	}
	if len(gotRoles) != 1 || gotRoles[0] != entity.RoleStaff {
		t.Fatalf("roles = %v, want [STAFF]", gotRoles)
	}
}

func TestRequireRole(t *testing.T) {
	svc := testJWTService(time.Minute)
	m := NewAuthMiddleware(svc)

	token, err := svc.GenerateAccessToken(uuid.New(), "staff@lab.test", []string{entity.RoleStaff})
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	tests := []struct {
		name       string
		middleware func(http.Handler) http.Handler
		wantStatus int
	}{
		{"allowed role", RequireRole(entity.RoleStaff), http.StatusOK},
		{"any-of semantics", RequireRole(entity.RoleAdmin, entity.RoleStaff), http.StatusOK},
		{"missing role", RequireRole(entity.RoleAdmin), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer "+token)

			m.Authenticate(tt.middleware(okHandler(&called))).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if called != (tt.wantStatus == http.StatusOK) {
				t.Fatalf("handler called = %v, want %v", called, tt.wantStatus == http.StatusOK)
			}
		})
	}
}

func TestRequireRoleWithoutAuthentication(t *testing.T) {
	called := false
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	RequireRole(entity.RoleAdmin)(okHandler(&called)).ServeHTTP(rec, req)

	if called {
		t.Fatal("handler must not run without authentication")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
