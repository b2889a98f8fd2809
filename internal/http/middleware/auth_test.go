package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", Auth(), func(c *gin.Context) {
		rc, _ := GetAuth(c)
		c.JSON(http.StatusOK, rc)
	})
	r.GET("/admin-only", Auth(), RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestAuthRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")
	r := authTestRouter()

	token, err := SignToken(42, false)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestAuthRejectsMissingAndGarbageTokens(t *testing.T) {
	SetJWTSecret("test-secret")
	r := authTestRouter()

	for _, header := range []string{"", "Bearer ", "Bearer not-a-token", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, w.Code)
		}
	}
}

func TestAuthRejectsTokenSignedWithOtherKey(t *testing.T) {
	SetJWTSecret("other-secret")
	token, err := SignToken(42, false)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	SetJWTSecret("test-secret")
	r := authTestRouter()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestRequireAdminGatesPlainUsers(t *testing.T) {
	SetJWTSecret("test-secret")
	r := authTestRouter()

	userToken, err := SignToken(42, false)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("plain user status = %d, want 403", w.Code)
	}

	adminToken, err := SignToken(1, true)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("admin status = %d, want 204", w.Code)
	}
}
