package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(handler gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	router.GET("/test", handler)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/test", nil)
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var body Response
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	return body
}

func TestSuccess(t *testing.T) {
	w := perform(func(c *gin.Context) {
		Success(c, gin.H{"name": "demo"})
	})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, expected %d", w.Code, http.StatusOK)
	}
	body := decode(t, w)
	if !body.Success {
		t.Error("success should be true")
	}
	if body.Code != "" {
		t.Errorf("success responses should carry no code, got %q", body.Code)
	}
}

func TestError_AppError(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
		code   string
	}{
		{NewUnauthenticated("no token"), http.StatusUnauthorized, CodeUnauthenticated},
		{NewTokenExpired("expired"), http.StatusUnauthorized, CodeTokenExpired},
		{NewTokenInvalid("bad"), http.StatusUnauthorized, CodeTokenInvalid},
		{NewForbidden("nope"), http.StatusForbidden, CodeForbidden},
		{NewNotFound("missing"), http.StatusNotFound, CodeNotFound},
		{NewInvalidInput("bad field"), http.StatusBadRequest, CodeInvalidInput},
		{NewInvalidStatus("bad status"), http.StatusBadRequest, CodeInvalidStatus},
		{NewInvalidOperation("cannot"), http.StatusBadRequest, CodeInvalidOperation},
		{NewConflict("taken"), http.StatusConflict, CodeConflict},
		{NewPersistence("db down"), http.StatusInternalServerError, CodePersistence},
	}

	for _, tc := range cases {
		w := perform(func(c *gin.Context) {
			Error(c, tc.err)
		})

		if w.Code != tc.status {
			t.Errorf("%s: status = %d, expected %d", tc.code, w.Code, tc.status)
		}
		body := decode(t, w)
		if body.Success {
			t.Errorf("%s: success should be false", tc.code)
		}
		if body.Code != tc.code {
			t.Errorf("code = %q, expected %q", body.Code, tc.code)
		}
		if body.Message != tc.err.Message {
			t.Errorf("%s: message = %q, expected %q", tc.code, body.Message, tc.err.Message)
		}
	}
}

func TestError_UnknownError(t *testing.T) {
	w := perform(func(c *gin.Context) {
		Error(c, errors.New("driver: bad connection"))
	})

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, expected %d", w.Code, http.StatusInternalServerError)
	}
	body := decode(t, w)
	if body.Code != CodePersistence {
		t.Errorf("code = %q, expected %q", body.Code, CodePersistence)
	}
}

func TestError_WrappedAppError(t *testing.T) {
	wrapped := newWrapped(NewNotFound("submission not found"))

	w := perform(func(c *gin.Context) {
		Error(c, wrapped)
	})

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, expected %d", w.Code, http.StatusNotFound)
	}
	if body := decode(t, w); body.Code != CodeNotFound {
		t.Errorf("code = %q, expected %q", body.Code, CodeNotFound)
	}
}

type wrappedErr struct{ inner error }

func newWrapped(err error) error    { return &wrappedErr{inner: err} }
func (w *wrappedErr) Error() string { return "wrapped: " + w.inner.Error() }
func (w *wrappedErr) Unwrap() error { return w.inner }
