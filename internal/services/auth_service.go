package services

import (
	"crypto/subtle"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/propertyflow/propertyflow/internal/config"
	"golang.org/x/crypto/bcrypt"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "pf_session"

// ErrInvalidCredentials is returned when the shared password does not
// match.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials")

// ErrInvalidSession is returned when a session token is missing,
// malformed, expired, or signed with the wrong key.
var ErrInvalidSession = fmt.Errorf("invalid session")

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Authenticate checks the submitted password against the configured
// application password. APP_PASSWORD may hold either a bcrypt hash or a
// plain value; plain values compare in constant time.
func Authenticate(cfg *config.Config, password string) error {
	if strings.HasPrefix(cfg.AppPassword, "$2a$") || strings.HasPrefix(cfg.AppPassword, "$2b$") {
		if err := bcrypt.CompareHashAndPassword([]byte(cfg.AppPassword), []byte(password)); err != nil {
			return ErrInvalidCredentials
		}
		return nil
	}
	if subtle.ConstantTimeCompare([]byte(cfg.AppPassword), []byte(password)) != 1 {
		return ErrInvalidCredentials
	}
	return nil
}

// IssueSession signs a session token for the master user.
func IssueSession(cfg *config.Config) (token string, expires time.Time, err error) {
	expires = time.Now().Add(time.Duration(cfg.SessionTTLHours) * time.Hour)
	claims := sessionClaims{
		Email: cfg.MasterUserEmail,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   cfg.MasterUserID,
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(cfg.SessionSecret))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expires, nil
}

// ValidateSession parses and verifies a session token, returning the
// user id it was issued for.
func ValidateSession(cfg *config.Config, token string) (userID string, err error) {
	if token == "" {
		return "", ErrInvalidSession
	}
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return []byte(cfg.SessionSecret), nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrInvalidSession
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidSession
	}
	return claims.Subject, nil
}
