package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"study-abroad-api/models"

	"github.com/gin-gonic/gin"
)

func requestWithRole(t *testing.T, role string, guard gin.HandlerFunc) int {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if role != "" {
			c.Set("role", role)
		}
	})
	router.GET("/guarded", guard, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	router.ServeHTTP(w, req)
	return w.Code
}

func TestRequireAdmin(t *testing.T) {
	if code := requestWithRole(t, models.RoleAdmin, RequireAdmin()); code != http.StatusOK {
		t.Errorf("admin: got %d, want 200", code)
	}
	if code := requestWithRole(t, models.RoleStudent, RequireAdmin()); code != http.StatusForbidden {
		t.Errorf("student: got %d, want 403", code)
	}
	if code := requestWithRole(t, "", RequireAdmin()); code != http.StatusForbidden {
		t.Errorf("missing role: got %d, want 403", code)
	}
}

func TestRequireRoleMultiple(t *testing.T) {
	guard := RequireRole(models.RoleStudent, models.RoleAdmin)
	if code := requestWithRole(t, models.RoleStudent, guard); code != http.StatusOK {
		t.Errorf("student: got %d, want 200", code)
	}
	if code := requestWithRole(t, "AUDITOR", guard); code != http.StatusForbidden {
		t.Errorf("unknown role: got %d, want 403", code)
	}
}

func TestAuthMiddlewareRejectsBadHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", AuthMiddleware(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	tests := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"no bearer prefix", "token-without-prefix"},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			router.ServeHTTP(w, req)
			if w.Code != http.StatusUnauthorized {
				t.Errorf("got %d, want 401", w.Code)
			}
		})
	}
}
