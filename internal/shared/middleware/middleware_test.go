package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type staticVerifier struct{ valid string }

func (v staticVerifier) VerifySession(token string) (string, error) {
	if token != v.valid {
		return "", errors.New("bad token")
	}
	return "admin", nil
}

func newAdminEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/admin", RequireAdmin(staticVerifier{valid: "good"}, "admin_session"), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextAdminKey))
	})
	return r
}

func TestRequireAdmin(t *testing.T) {
	r := newAdminEngine()

	tests := []struct {
		name   string
		setup  func(*http.Request)
		status int
	}{
		{"no credentials", func(*http.Request) {}, http.StatusUnauthorized},
		{"bearer token", func(req *http.Request) { req.Header.Set("Authorization", "Bearer good") }, http.StatusOK},
		{"lowercase scheme", func(req *http.Request) { req.Header.Set("Authorization", "bearer good") }, http.StatusOK},
		{"cookie", func(req *http.Request) { req.AddCookie(&http.Cookie{Name: "admin_session", Value: "good"}) }, http.StatusOK},
		{"bad cookie", func(req *http.Request) { req.AddCookie(&http.Cookie{Name: "admin_session", Value: "nope"}) }, http.StatusUnauthorized},
		{"malformed header", func(req *http.Request) { req.Header.Set("Authorization", "good") }, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			tt.setup(req)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.status, w.Code)
			if tt.status == http.StatusOK {
				assert.Equal(t, "admin", w.Body.String())
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newAdminEngine()

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Len(t, w.Header().Get(HeaderRequestID), 36)
}
