package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"ats-checker/internal/shared/auth"
)

func newAdminRouter(apiKey string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(AdminAuth(apiKey))
	r.GET("/api/v1/admin/current_config", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": AdminSubjectFromContext(c)})
	})
	return r
}

func TestAdminAuthAcceptsAPIKey(t *testing.T) {
	r := newAdminRouter("top-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/current_config", nil)
	req.Header.Set("X-API-Key", "top-secret")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestAdminAuthRejectsWrongAPIKey(t *testing.T) {
	r := newAdminRouter("top-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/current_config", nil)
	req.Header.Set("X-API-Key", "guess")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAdminAuthRejectsMissingCredentials(t *testing.T) {
	r := newAdminRouter("top-secret")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/current_config", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAdminAuthAcceptsAdminToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newAdminRouter("top-secret")

	token, err := auth.SignJWT(auth.Claims{Sub: "ops", Role: auth.RoleAdmin})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/current_config", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestAdminAuthRejectsNonAdminToken(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	r := newAdminRouter("top-secret")

	token, err := auth.SignJWT(auth.Claims{Sub: "someone"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/current_config", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.Code)
	}
}
