package auth

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"villa/internal/shared/config"
	"villa/pkg/logger"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

var timeNow = time.Now

type Service interface {
	Login(ctx context.Context, req *LoginRequest) (*SessionResponse, error)
	ValidateToken(tokenString string) (*AdminClaims, error)
	// VerifySession returns the admin username carried by a valid token
	VerifySession(tokenString string) (string, error)
}

type service struct {
	config config.AdminConfig
	logger *logger.Logger
}

func NewService(cfg config.AdminConfig) Service {
	log := logger.GetDefault()
	if cfg.PasswordHash == "" {
		log.Warn("ADMIN_PASSWORD_HASH is not set, admin login is disabled")
	}
	if cfg.JWTSecret == "" {
		// sessions then last only as long as this process
		cfg.JWTSecret = randomSecret()
		log.Warn("JWT_SECRET is not set, using a per-process signing key")
	}
	return &service{config: cfg, logger: log}
}

func randomSecret() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("auth: reading random bytes: " + err.Error())
	}
	return hex.EncodeToString(b)
}

func (s *service) Login(ctx context.Context, req *LoginRequest) (*SessionResponse, error) {
	if s.config.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}

	userOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(s.config.Username)) == 1
	// bcrypt runs even for a wrong username so both failures cost the same
	passErr := bcrypt.CompareHashAndPassword([]byte(s.config.PasswordHash), []byte(req.Password))
	if !userOK || passErr != nil {
		return nil, ErrInvalidCredentials
	}

	now := timeNow()
	expiresAt := now.Add(s.config.SessionTTL)
	claims := AdminClaims{
		Username: s.config.Username,
		Role:     RoleAdmin,
		Type:     TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    issuer,
			Subject:   s.config.Username,
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &SessionResponse{
		Username:  s.config.Username,
		Token:     token,
		ExpiresAt: expiresAt,
		ExpiresIn: int64(s.config.SessionTTL.Seconds()),
	}, nil
}

// ValidateToken rejects every token while login is disabled
func (s *service) ValidateToken(tokenString string) (*AdminClaims, error) {
	if s.config.PasswordHash == "" {
		return nil, ErrInvalidToken
	}
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.JWTSecret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid || claims.Type != TokenTypeAccess || claims.Role != RoleAdmin {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyIssuer(issuer, true) || claims.Username != s.config.Username {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

func (s *service) VerifySession(tokenString string) (string, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}
