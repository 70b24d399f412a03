package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/urocareerz/urocareerz-api/config"
	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/repository"
	apperrors "github.com/urocareerz/urocareerz-api/pkg/errors"
	"github.com/urocareerz/urocareerz-api/pkg/jwt"
	"github.com/urocareerz/urocareerz-api/pkg/logger"
	"github.com/urocareerz/urocareerz-api/pkg/metrics"
	"github.com/urocareerz/urocareerz-api/pkg/otp"
	"github.com/urocareerz/urocareerz-api/pkg/sanitize"
)

// AuthService handles OTP registration, login and session issuance.
type AuthService struct {
	userRepo     repository.UserRepositoryInterface
	notifier     *NotificationService
	config       *config.Config
	tokenManager *jwt.TokenManager
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repository.UserRepositoryInterface, notifier *NotificationService, cfg *config.Config) *AuthService {
	var tokenManager *jwt.TokenManager
	if cfg.Session.JWTSecret != "" {
		tokenManager = jwt.NewTokenManager(
			cfg.Session.JWTSecret,
			cfg.Session.JWTIssuer,
			cfg.Session.SessionTTLHours,
		)
	}

	return &AuthService{
		userRepo:     userRepo,
		notifier:     notifier,
		config:       cfg,
		tokenManager: tokenManager,
	}
}

// Register creates a PENDING account and emails its first OTP.
func (s *AuthService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	role := string(req.Role)

	if !req.TermsAccepted {
		metrics.Registrations.WithLabelValues(role, "terms_not_accepted").Inc()
		return nil, ErrTermsNotAccepted
	}

	email := models.NormalizeEmail(req.Email)
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil && !apperrors.Is(err, apperrors.ErrNotFound) {
		metrics.Registrations.WithLabelValues(role, "error").Inc()
		return nil, err
	}
	if existing != nil {
		metrics.Registrations.WithLabelValues(role, "email_in_use").Inc()
		return nil, ErrEmailInUse
	}

	code, hash, expiresAt, err := s.newOTP()
	if err != nil {
		metrics.Registrations.WithLabelValues(role, "error").Inc()
		return nil, err
	}

	now := time.Now()
	user, err := s.userRepo.Create(ctx, &models.User{
		Email:           email,
		FirstName:       sanitize.Text(req.FirstName),
		LastName:        sanitize.Text(req.LastName),
		Role:            req.Role,
		Status:          models.UserStatusPending,
		OTPHash:         &hash,
		OTPExpiresAt:    &expiresAt,
		TermsAccepted:   true,
		TermsAcceptedAt: &now,
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			metrics.Registrations.WithLabelValues(role, "email_in_use").Inc()
			return nil, ErrEmailInUse
		}
		metrics.Registrations.WithLabelValues(role, "error").Inc()
		return nil, err
	}

	// The account exists now; a failed send is recoverable through resend-otp.
	if err := s.notifier.SendLoginOTP(ctx, user, code, s.config.OTP.TTLMinutes); err != nil {
		logger.LogError(err, "Failed to send registration OTP",
			zap.String("user_id", user.ID))
	}

	metrics.Registrations.WithLabelValues(role, "success").Inc()
	logger.Info("User registered",
		zap.String("user_id", user.ID),
		zap.String("role", role))

	return &models.AuthResponse{
		Success: true,
		Message: "Registration successful. Check your email for a verification code.",
	}, nil
}

// RequestLogin emails a fresh OTP to an existing account.
func (s *AuthService) RequestLogin(ctx context.Context, email string) (*models.AuthResponse, error) {
	return s.issueOTP(ctx, email, "login")
}

// ResendOTP replaces the outstanding OTP, typically for a pending registration.
func (s *AuthService) ResendOTP(ctx context.Context, email string) (*models.AuthResponse, error) {
	return s.issueOTP(ctx, email, "resend")
}

func (s *AuthService) issueOTP(ctx context.Context, email, purpose string) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, models.NormalizeEmail(email))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("OTP requested for unknown email", zap.String("purpose", purpose))
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Status == models.UserStatusInactive {
		logger.Warn("OTP requested for inactive account",
			zap.String("user_id", user.ID),
			zap.String("purpose", purpose))
		return nil, ErrAccountInactive
	}

	code, hash, expiresAt, err := s.newOTP()
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SetOTP(ctx, user.ID, hash, expiresAt); err != nil {
		return nil, notFoundAs(err, ErrUserNotFound)
	}

	if err := s.notifier.SendLoginOTP(ctx, user, code, s.config.OTP.TTLMinutes); err != nil {
		logger.LogError(err, "Failed to send OTP",
			zap.String("user_id", user.ID),
			zap.String("purpose", purpose))
		return nil, ErrOTPDeliveryFailed
	}

	logger.Info("OTP issued",
		zap.String("user_id", user.ID),
		zap.String("purpose", purpose))

	return &models.AuthResponse{
		Success: true,
		Message: "A verification code has been sent to your email.",
	}, nil
}

// VerifyOTP checks a code and, on success, activates the account and issues a
// session token. A wrong code leaves the stored code in place.
func (s *AuthService) VerifyOTP(ctx context.Context, req *models.VerifyOTPRequest) (*models.VerifyOTPResponse, string, error) {
	if s.tokenManager == nil {
		logger.Error("JWT secret not configured")
		metrics.OTPVerifications.WithLabelValues("not_configured").Inc()
		return nil, "", ErrSessionNotSet
	}

	user, err := s.userRepo.GetByEmail(ctx, models.NormalizeEmail(req.Email))
	if err != nil {
		metrics.OTPVerifications.WithLabelValues("user_not_found").Inc()
		return nil, "", notFoundAs(err, ErrUserNotFound)
	}
	if user.Status == models.UserStatusInactive {
		metrics.OTPVerifications.WithLabelValues("inactive").Inc()
		return nil, "", ErrAccountInactive
	}
	if user.OTPHash == nil || *user.OTPHash == "" {
		metrics.OTPVerifications.WithLabelValues("no_code").Inc()
		return nil, "", ErrNoOTPOutstanding
	}
	if user.OTPExpiresAt == nil || time.Now().After(*user.OTPExpiresAt) {
		metrics.OTPVerifications.WithLabelValues("expired").Inc()
		return nil, "", ErrOTPExpired
	}
	if !otp.Matches(*user.OTPHash, req.OTP) {
		logger.Warn("OTP mismatch", zap.String("user_id", user.ID))
		metrics.OTPVerifications.WithLabelValues("mismatch").Inc()
		return nil, "", ErrOTPMismatch
	}

	verified, err := s.userRepo.MarkVerified(ctx, user.ID)
	if err != nil {
		metrics.OTPVerifications.WithLabelValues("error").Inc()
		return nil, "", notFoundAs(err, ErrUserNotFound)
	}

	token, err := s.tokenManager.GenerateToken(verified.ID, verified.Email, string(verified.Role))
	if err != nil {
		metrics.OTPVerifications.WithLabelValues("jwt_failed").Inc()
		return nil, "", fmt.Errorf("failed to generate session: %w", err)
	}

	now := time.Now()
	session := &models.Session{
		UserID:    verified.ID,
		Email:     verified.Email,
		Role:      verified.Role,
		ExpiresAt: now.Add(s.tokenManager.GetExpirationTime()).Unix(),
		IssuedAt:  now.Unix(),
	}

	metrics.OTPVerifications.WithLabelValues("success").Inc()
	logger.Info("User signed in",
		zap.String("user_id", verified.ID),
		zap.String("role", string(verified.Role)))

	return &models.VerifyOTPResponse{Success: true, User: verified, Session: session}, token, nil
}

// CurrentUser reloads the account behind a session. Deleted or inactive
// accounts no longer have a valid session.
func (s *AuthService) CurrentUser(ctx context.Context, session *models.Session) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, session.UserID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("session user missing: %w", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if user.IsDeleted() {
		return nil, fmt.Errorf("session user deleted: %w", apperrors.ErrUnauthorized)
	}
	if user.Status == models.UserStatusInactive {
		return nil, ErrAccountInactive
	}
	return user, nil
}

func (s *AuthService) newOTP() (code, hash string, expiresAt time.Time, err error) {
	code, err = otp.Generate()
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to generate otp: %w", err)
	}
	hash, err = otp.Hash(code)
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to hash otp: %w", err)
	}
	return code, hash, time.Now().Add(time.Duration(s.config.OTP.TTLMinutes) * time.Minute), nil
}

// GetTokenManager returns the token manager used by the session middleware.
func (s *AuthService) GetTokenManager() *jwt.TokenManager {
	return s.tokenManager
}

// GetSessionTTL returns the session lifetime in seconds.
func (s *AuthService) GetSessionTTL() int {
	return s.config.Session.SessionTTLHours * 3600
}

func (s *AuthService) GetCookieName() string {
	return s.config.Session.CookieName
}

func (s *AuthService) GetCookieDomain() string {
	return s.config.Session.CookieDomain
}

func (s *AuthService) GetCookieSecure() bool {
	return s.config.Session.CookieSecure
}

