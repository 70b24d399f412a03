package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urocareerz/urocareerz-api/internal/models"
	apperrors "github.com/urocareerz/urocareerz-api/pkg/errors"
	"github.com/urocareerz/urocareerz-api/pkg/jwt"
)

// SessionContextKey is the key used to store the session in the gin context
const SessionContextKey = "session"

var (
	ErrSessionNotFound = errors.New("session not found in context")
	ErrInvalidSession  = errors.New("invalid session type")
	ErrAccountGone     = errors.New("account no longer exists")
	ErrAccountInactive = errors.New("account is not active")
)

// AccountLoader reloads the account behind a session. Satisfied by the user repository.
type AccountLoader interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// CookieSettings describes the session cookie.
type CookieSettings struct {
	Name   string
	Domain string
	Secure bool
}

// SessionMiddleware validates the JWT session cookie and stores the session in context.
// When accounts is set, the account is reloaded on every request: role and email
// come from the store, deleted accounts get 401 and inactive ones 403.
func SessionMiddleware(tokenManager *jwt.TokenManager, cookie CookieSettings, accounts AccountLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := readSession(c, tokenManager, cookie, accounts)
		if err != nil {
			_ = c.Error(err) //nolint:errcheck
			switch {
			case errors.Is(err, jwt.ErrExpiredToken):
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			case errors.Is(err, ErrAccountInactive):
				c.JSON(http.StatusForbidden, gin.H{"error": "Account is not active"})
			case errors.Is(err, apperrors.ErrInternal):
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			default:
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			}
			c.Abort()
			return
		}

		c.Set(SessionContextKey, session)
		c.Next()
	}
}

// OptionalSessionMiddleware stores the session when a valid cookie for a usable
// account is present and lets everyone else through anonymously.
func OptionalSessionMiddleware(tokenManager *jwt.TokenManager, cookie CookieSettings, accounts AccountLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		if session, err := readSession(c, tokenManager, cookie, accounts); err == nil {
			c.Set(SessionContextKey, session)
		}
		c.Next()
	}
}

// RequireRoles rejects sessions whose role is not listed. Must run after SessionMiddleware.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, err := GetSession(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		if !session.HasRole(roles...) {
			_ = c.Error(fmt.Errorf("role %s not allowed", session.Role)) //nolint:errcheck
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func readSession(c *gin.Context, tokenManager *jwt.TokenManager, cookie CookieSettings, accounts AccountLoader) (*models.Session, error) {
	if tokenManager == nil {
		return nil, fmt.Errorf("session signing not configured")
	}

	raw, err := c.Cookie(cookie.Name)
	if err != nil || raw == "" {
		return nil, fmt.Errorf("missing session cookie")
	}

	claims, err := tokenManager.ValidateToken(raw)
	if err != nil {
		ClearSessionCookie(c, cookie)
		return nil, fmt.Errorf("invalid session token: %w", err)
	}

	role := models.Role(claims.Role)
	if !role.IsValid() || claims.UserID == "" {
		ClearSessionCookie(c, cookie)
		return nil, fmt.Errorf("invalid session claims")
	}

	session := &models.Session{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Role:      role,
		ExpiresAt: claims.ExpiresAt.Unix(),
		IssuedAt:  claims.IssuedAt.Unix(),
	}
	if accounts == nil {
		return session, nil
	}
	if err := refreshSession(c, accounts, session); err != nil {
		if !errors.Is(err, apperrors.ErrInternal) {
			ClearSessionCookie(c, cookie)
		}
		return nil, err
	}
	return session, nil
}

// refreshSession overwrites token claims with the stored account so role
// changes and deactivation apply before the token expires.
func refreshSession(c *gin.Context, accounts AccountLoader, session *models.Session) error {
	user, err := accounts.GetByID(c.Request.Context(), session.UserID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return ErrAccountGone
		}
		return fmt.Errorf("failed to load session account: %w: %w", err, apperrors.ErrInternal)
	}
	if user.IsDeleted() {
		return ErrAccountGone
	}
	if user.Status != models.UserStatusActive {
		return ErrAccountInactive
	}
	session.Role = user.Role
	session.Email = user.Email
	return nil
}

// GetSession extracts the session from context
func GetSession(c *gin.Context) (*models.Session, error) {
	val, exists := c.Get(SessionContextKey)
	if !exists || val == nil {
		return nil, ErrSessionNotFound
	}

	session, ok := val.(*models.Session)
	if !ok {
		return nil, ErrInvalidSession
	}

	return session, nil
}

// SetSessionCookie sets the session cookie
func SetSessionCookie(c *gin.Context, cookie CookieSettings, token string, ttlSeconds int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		cookie.Name,
		token,
		ttlSeconds,
		"/",
		cookie.Domain,
		cookie.Secure,
		true, // HttpOnly
	)
}

// ClearSessionCookie expires the session cookie
func ClearSessionCookie(c *gin.Context, cookie CookieSettings) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		cookie.Name,
		"",
		-1,
		"/",
		cookie.Domain,
		cookie.Secure,
		true, // HttpOnly
	)
}
