package middleware

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/phillip/ngo-portal-go/apperrors"
	config "github.com/phillip/ngo-portal-go/config"
)

// AdminKey holds the signed-in admin email on the gin context.
const AdminKey = "admin_email"

// IssueSession signs an HS256 session token for email, valid for ttl from now.
func IssueSession(secret, email string, ttl time.Duration, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", err
	}
	return signed, nil
}

// ParseSession verifies raw and returns the admin email it was issued for.
func ParseSession(secret, raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", &apperrors.AuthError{Reason: "session expired"}
		}
		return "", &apperrors.AuthError{Reason: "invalid session"}
	}
	if claims.Subject == "" {
		return "", &apperrors.AuthError{Reason: "invalid session"}
	}
	return claims.Subject, nil
}

// SetSessionCookie stores token in the session cookie.
func SetSessionCookie(c *gin.Context, cfg *config.Config, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.Session.CookieName, token, int(cfg.Session.TTL.Seconds()), "/", "", cfg.IsProduction(), true)
}

func ClearSessionCookie(c *gin.Context, cfg *config.Config) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cfg.Session.CookieName, "", -1, "/", "", cfg.IsProduction(), true)
}

// SessionGate lets a request through only with a valid session cookie.
// Otherwise it redirects to the login page, clearing a stale cookie.
func SessionGate(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cfg.Session.CookieName)
		if err != nil || raw == "" {
			c.Redirect(http.StatusFound, cfg.Session.LoginPath)
			c.Abort()
			return
		}

		email, err := ParseSession(cfg.Session.Secret, raw)
		if err != nil {
			log.Printf("[%s] session rejected for %s: %v", c.GetString(RequestIDKey), c.Request.URL.Path, err)
			ClearSessionCookie(c, cfg)
			c.Redirect(http.StatusFound, cfg.Session.LoginPath)
			c.Abort()
			return
		}

		c.Set(AdminKey, email)
		c.Next()
	}
}

// LoginPageGate sends an already signed-in admin straight to the dashboard.
func LoginPageGate(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(cfg.Session.CookieName); err == nil && raw != "" {
			if _, err := ParseSession(cfg.Session.Secret, raw); err == nil {
				c.Redirect(http.StatusFound, cfg.Session.HomePath)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
