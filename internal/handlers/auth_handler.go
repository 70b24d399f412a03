package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/urocareerz/urocareerz-api/internal/middleware"
	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/services"
	apperrors "github.com/urocareerz/urocareerz-api/pkg/errors"
)

// AuthHandler handles OTP registration, login and session endpoints
type AuthHandler struct {
	service services.AuthServiceInterface
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) cookie() middleware.CookieSettings {
	return middleware.CookieSettings{
		Name:   h.service.GetCookieName(),
		Domain: h.service.GetCookieDomain(),
		Secure: h.service.GetCookieSecure(),
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Login handles POST /api/auth/login
// Emails a fresh one-time code to an existing account
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.service.RequestLogin(c.Request.Context(), req.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ResendOTP handles POST /api/auth/resend-otp
func (h *AuthHandler) ResendOTP(c *gin.Context) {
	var req models.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, err := h.service.ResendOTP(c.Request.Context(), req.Email)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// VerifyOTP handles POST /api/auth/verify-otp
// Verifies the code and sets the session cookie
func (h *AuthHandler) VerifyOTP(c *gin.Context) {
	var req models.VerifyOTPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	resp, token, err := h.service.VerifyOTP(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	middleware.SetSessionCookie(c, h.cookie(), token, h.service.GetSessionTTL())

	c.JSON(http.StatusOK, resp)
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.cookie())

	c.JSON(http.StatusOK, models.AuthResponse{Success: true})
}

// Session handles GET /api/auth/session
func (h *AuthHandler) Session(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	user, err := h.service.CurrentUser(c.Request.Context(), session)
	if err != nil {
		// A session for a deleted or deactivated account is no longer usable.
		if apperrors.Is(err, apperrors.ErrUnauthorized) || apperrors.Is(err, apperrors.ErrAccessDenied) {
			middleware.ClearSessionCookie(c, h.cookie())
		}
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session": session,
		"user":    user,
	})
}
