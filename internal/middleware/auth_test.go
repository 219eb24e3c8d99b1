package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/reviewhub/reviewhub/internal/models"
	"github.com/reviewhub/reviewhub/internal/utils"
	"github.com/reviewhub/reviewhub/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
	utils.SetJWTSecret("test-secret-for-middleware-testing")
}

func protectedRouter() *gin.Engine {
	router := gin.New()
	router.Use(AuthRequired())
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(200, gin.H{"user_id": GetUserID(c), "role": GetRole(c)})
	})
	return router
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var body response.Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	return body
}

func TestAuthRequired_NoHeader(t *testing.T) {
	router := protectedRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
	if body := decodeError(t, w); body.Code != response.CodeUnauthenticated {
		t.Errorf("expected code %s, got %s", response.CodeUnauthenticated, body.Code)
	}
}

func TestAuthRequired_InvalidFormat(t *testing.T) {
	router := protectedRouter()

	testCases := []string{
		"InvalidToken",
		"Basic token123",
		"Bearer",
		"Bearer ",
	}

	for _, authHeader := range testCases {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", authHeader)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected status %d, got %d", authHeader, http.StatusUnauthorized, w.Code)
		}
		if body := decodeError(t, w); body.Code != response.CodeUnauthenticated {
			t.Errorf("header %q: expected code %s, got %s", authHeader, response.CodeUnauthenticated, body.Code)
		}
	}
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	router := protectedRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not.a.real.token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
	if body := decodeError(t, w); body.Code != response.CodeTokenInvalid {
		t.Errorf("expected code %s, got %s", response.CodeTokenInvalid, body.Code)
	}
}

func TestAuthRequired_ExpiredToken(t *testing.T) {
	utils.SetTokenTTLs(-time.Minute, 7*24*time.Hour)
	token, _ := utils.GenerateAccessToken(1, "a@example.com", "reviewer")
	utils.SetTokenTTLs(15*time.Minute, 7*24*time.Hour)

	router := protectedRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
	if body := decodeError(t, w); body.Code != response.CodeTokenExpired {
		t.Errorf("expected code %s, got %s", response.CodeTokenExpired, body.Code)
	}
}

func TestAuthRequired_RefreshTokenRejected(t *testing.T) {
	token, _ := utils.GenerateRefreshToken(1)

	router := protectedRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
	if body := decodeError(t, w); body.Code != response.CodeTokenInvalid {
		t.Errorf("expected code %s, got %s", response.CodeTokenInvalid, body.Code)
	}
}

func TestAuthRequired_ValidToken(t *testing.T) {
	token, _ := utils.GenerateAccessToken(42, "carol@example.com", "admin")

	router := protectedRouter()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if body["user_id"].(float64) != 42 {
		t.Errorf("user_id = %v, expected 42", body["user_id"])
	}
	if body["role"] != "admin" {
		t.Errorf("role = %v, expected admin", body["role"])
	}
}

func TestRoleRequired(t *testing.T) {
	token, _ := utils.GenerateAccessToken(1, "sam@example.com", "submitter")

	router := gin.New()
	router.Use(AuthRequired(), RoleRequired(models.GlobalRoleAdmin))
	router.GET("/admin-only", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
	if body := decodeError(t, w); body.Code != response.CodeForbidden {
		t.Errorf("expected code %s, got %s", response.CodeForbidden, body.Code)
	}
}
