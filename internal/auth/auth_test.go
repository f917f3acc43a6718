package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"villa/internal/shared/config"
	"villa/internal/shared/middleware"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testAdminConfig(t *testing.T) config.AdminConfig {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret!"), bcrypt.MinCost)
	require.NoError(t, err)
	return config.AdminConfig{
		Username:     "admin",
		PasswordHash: string(hash),
		JWTSecret:    "test-secret",
		SessionTTL:   time.Hour,
		CookieName:   "admin_session",
	}
}

func TestService_Login(t *testing.T) {
	svc := NewService(testAdminConfig(t))

	session, err := svc.Login(context.Background(), &LoginRequest{Username: "admin", Password: "s3cret!"})
	require.NoError(t, err)
	assert.Equal(t, int64(3600), session.ExpiresIn)

	username, err := svc.VerifySession(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)

	_, err = svc.Login(context.Background(), &LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), &LoginRequest{Username: "root", Password: "s3cret!"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_LoginDisabledWithoutHash(t *testing.T) {
	cfg := testAdminConfig(t)
	cfg.PasswordHash = ""
	_, err := NewService(cfg).Login(context.Background(), &LoginRequest{Username: "admin", Password: ""})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_ValidateToken(t *testing.T) {
	cfg := testAdminConfig(t)
	svc := NewService(cfg)
	session, err := svc.Login(context.Background(), &LoginRequest{Username: "admin", Password: "s3cret!"})
	require.NoError(t, err)

	other := cfg
	other.JWTSecret = "another-secret"
	_, err = NewService(other).ValidateToken(session.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	t.Run("expired", func(t *testing.T) {
		timeNow = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		defer func() { timeNow = time.Now }()

		old, err := svc.Login(context.Background(), &LoginRequest{Username: "admin", Password: "s3cret!"})
		require.NoError(t, err)
		_, err = svc.ValidateToken(old.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	_, err = svc.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func signClaims(t *testing.T, secret string, mutate func(*AdminClaims)) string {
	t.Helper()
	now := time.Now()
	claims := AdminClaims{
		Username: "admin",
		Role:     RoleAdmin,
		Type:     TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			Issuer:    issuer,
			Subject:   "admin",
		},
	}
	if mutate != nil {
		mutate(&claims)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func TestService_VerifySessionRejectsForgedTokens(t *testing.T) {
	cfg := testAdminConfig(t)
	svc := NewService(cfg)

	_, err := svc.VerifySession(signClaims(t, cfg.JWTSecret, nil))
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret string
		mutate func(*AdminClaims)
	}{
		{"guessable secret", "your-super-secret-jwt-key", nil},
		{"empty secret", "", nil},
		{"foreign issuer", cfg.JWTSecret, func(c *AdminClaims) { c.Issuer = "elsewhere" }},
		{"missing issuer", cfg.JWTSecret, func(c *AdminClaims) { c.Issuer = "" }},
		{"other username", cfg.JWTSecret, func(c *AdminClaims) { c.Username = "attacker" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.VerifySession(signClaims(t, tt.secret, tt.mutate))
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestService_UnsetSecretIsRandomPerProcess(t *testing.T) {
	cfg := testAdminConfig(t)
	cfg.JWTSecret = ""
	svc := NewService(cfg)

	for _, secret := range []string{"", "your-super-secret-jwt-key"} {
		_, err := svc.VerifySession(signClaims(t, secret, nil))
		assert.ErrorIs(t, err, ErrInvalidToken)
	}

	// tokens it issued itself still verify
	session, err := svc.Login(context.Background(), &LoginRequest{Username: "admin", Password: "s3cret!"})
	require.NoError(t, err)
	username, err := svc.VerifySession(session.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", username)

	_, err = NewService(cfg).VerifySession(session.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_NoPasswordHashRejectsEveryToken(t *testing.T) {
	cfg := testAdminConfig(t)
	cfg.PasswordHash = ""
	cfg.JWTSecret = ""
	svc := NewService(cfg)

	_, err := svc.VerifySession(signClaims(t, "your-super-secret-jwt-key", nil))
	assert.ErrorIs(t, err, ErrInvalidToken)

	withSecret := testAdminConfig(t)
	withSecret.PasswordHash = ""
	_, err = NewService(withSecret).VerifySession(signClaims(t, withSecret.JWTSecret, nil))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestController_SessionFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testAdminConfig(t)
	svc := NewService(cfg)
	r := gin.New()
	SetupAuthRoutes(r.Group("/api/v1"), NewController(svc, cfg.CookieName, false), middleware.RequireAdmin(svc, cfg.CookieName))

	body, _ := json.Marshal(LoginRequest{Username: "admin", Password: "s3cret!"})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(body)))
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "admin_session", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteStrictMode, cookies[0].SameSite)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(cookies[0])
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"isAdmin":true`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	require.Len(t, w.Result().Cookies(), 1)
	assert.Equal(t, "", w.Result().Cookies()[0].Value)

	bad, _ := json.Marshal(LoginRequest{Username: "admin", Password: "nope"})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader(bad)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
