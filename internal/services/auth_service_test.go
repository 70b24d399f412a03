package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/urocareerz/urocareerz-api/internal/models"
	"github.com/urocareerz/urocareerz-api/internal/services"
	apperrors "github.com/urocareerz/urocareerz-api/pkg/errors"
	"github.com/urocareerz/urocareerz-api/pkg/mailer"
	"github.com/urocareerz/urocareerz-api/pkg/otp"
)

func newAuthService(t *testing.T) (*services.AuthService, *MockUserRepository, *fakeSender) {
	t.Helper()
	repo := new(MockUserRepository)
	notifier, sender := newNotifier()
	return services.NewAuthService(repo, notifier, testConfig()), repo, sender
}

func userWithOTP(t *testing.T, code string, expiresAt time.Time) *models.User {
	t.Helper()
	hash, err := otp.Hash(code)
	require.NoError(t, err)
	return &models.User{
		ID:           "user-1",
		Email:        "jane@example.com",
		FirstName:    "Jane",
		Role:         models.RoleMentee,
		Status:       models.UserStatusPending,
		OTPHash:      &hash,
		OTPExpiresAt: &expiresAt,
	}
}

func TestAuthService_Register(t *testing.T) {
	service, repo, sender := newAuthService(t)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "jane@example.com").Return(nil, apperrors.ErrNotFound).Once()
	repo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "jane@example.com" &&
			u.Status == models.UserStatusPending &&
			u.OTPHash != nil && *u.OTPHash != "" &&
			u.OTPExpiresAt != nil && u.TermsAccepted
	})).Return(&models.User{ID: "user-1", Email: "jane@example.com", FirstName: "Jane"}, nil).Once()

	resp, err := service.Register(ctx, &models.RegisterRequest{
		Email:         "  Jane@Example.com ",
		FirstName:     "Jane",
		LastName:      "Doe",
		Role:          models.RoleMentee,
		TermsAccepted: true,
	})

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, []string{mailer.TemplateLoginOTP}, sender.templates())
	repo.AssertExpectations(t)
}

func TestAuthService_Register_TermsRequired(t *testing.T) {
	service, repo, _ := newAuthService(t)

	_, err := service.Register(context.Background(), &models.RegisterRequest{Email: "a@b.co", Role: models.RoleMentor})

	assert.ErrorIs(t, err, services.ErrTermsNotAccepted)
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_EmailInUse(t *testing.T) {
	service, repo, _ := newAuthService(t)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "jane@example.com").Return(&models.User{ID: "user-1"}, nil).Once()

	_, err := service.Register(ctx, &models.RegisterRequest{Email: "jane@example.com", Role: models.RoleMentee, TermsAccepted: true})

	assert.ErrorIs(t, err, services.ErrEmailInUse)
	assert.True(t, apperrors.Is(err, apperrors.ErrConflict))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuthService_Register_RaceOnCreateIsConflict(t *testing.T) {
	service, repo, _ := newAuthService(t)
	ctx := context.Background()

	repo.On("GetByEmail", ctx, "jane@example.com").Return(nil, apperrors.ErrNotFound).Once()
	repo.On("Create", ctx, mock.Anything).Return(nil, apperrors.ErrConflict).Once()

	_, err := service.Register(ctx, &models.RegisterRequest{Email: "jane@example.com", Role: models.RoleMentee, TermsAccepted: true})

	assert.ErrorIs(t, err, services.ErrEmailInUse)
}

func TestAuthService_Register_MailFailureStillSucceeds(t *testing.T) {
	service, repo, sender := newAuthService(t)
	ctx := context.Background()
	sender.failFor["jane@example.com"] = errors.New("mailgun down")

	repo.On("GetByEmail", ctx, "jane@example.com").Return(nil, apperrors.ErrNotFound).Once()
	repo.On("Create", ctx, mock.Anything).Return(&models.User{ID: "user-1", Email: "jane@example.com"}, nil).Once()

	resp, err := service.Register(ctx, &models.RegisterRequest{Email: "jane@example.com", Role: models.RoleMentee, TermsAccepted: true})

	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestAuthService_RequestLogin(t *testing.T) {
	tests := []struct {
		name    string
		user    *models.User
		repoErr error
		mailErr error
		wantErr error
	}{
		{name: "active user", user: &models.User{ID: "user-1", Email: "jane@example.com", Status: models.UserStatusActive}},
		{name: "pending user", user: &models.User{ID: "user-1", Email: "jane@example.com", Status: models.UserStatusPending}},
		{name: "unknown email", repoErr: apperrors.ErrNotFound, wantErr: services.ErrUserNotFound},
		{name: "inactive user", user: &models.User{ID: "user-1", Email: "jane@example.com", Status: models.UserStatusInactive}, wantErr: services.ErrAccountInactive},
		{name: "mail failure", user: &models.User{ID: "user-1", Email: "jane@example.com", Status: models.UserStatusActive}, mailErr: errors.New("boom"), wantErr: services.ErrOTPDeliveryFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, sender := newAuthService(t)
			ctx := context.Background()
			if tt.mailErr != nil {
				sender.failFor["jane@example.com"] = tt.mailErr
			}

			repo.On("GetByEmail", ctx, "jane@example.com").Return(tt.user, tt.repoErr).Once()
			if tt.user != nil && tt.user.Status != models.UserStatusInactive {
				repo.On("SetOTP", ctx, "user-1", mock.AnythingOfType("string"), mock.AnythingOfType("time.Time")).Return(nil).Once()
			}

			resp, err := service.RequestLogin(ctx, "jane@example.com")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, resp)
				return
			}
			require.NoError(t, err)
			assert.True(t, resp.Success)
			assert.Equal(t, []string{mailer.TemplateLoginOTP}, sender.templates())
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_VerifyOTP(t *testing.T) {
	service, repo, _ := newAuthService(t)
	ctx := context.Background()
	user := userWithOTP(t, "123456", time.Now().Add(5*time.Minute))
	verified := &models.User{ID: "user-1", Email: "jane@example.com", Role: models.RoleMentee, Status: models.UserStatusActive}

	repo.On("GetByEmail", ctx, "jane@example.com").Return(user, nil).Once()
	repo.On("MarkVerified", ctx, "user-1").Return(verified, nil).Once()

	resp, token, err := service.VerifyOTP(ctx, &models.VerifyOTPRequest{Email: "jane@example.com", OTP: "123456"})

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, verified, resp.User)
	assert.Equal(t, "user-1", resp.Session.UserID)
	assert.Equal(t, models.RoleMentee, resp.Session.Role)

	claims, err := service.GetTokenManager().ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", claims.Email)
	repo.AssertExpectations(t)
}

func TestAuthService_VerifyOTP_Failures(t *testing.T) {
	tests := []struct {
		name     string
		user     func(t *testing.T) *models.User
		code     string
		wantErr  error
		category error
	}{
		{
			name: "no outstanding code",
			user: func(t *testing.T) *models.User {
				return &models.User{ID: "user-1", Email: "jane@example.com", Status: models.UserStatusActive}
			},
			code:     "123456",
			wantErr:  services.ErrNoOTPOutstanding,
			category: apperrors.ErrInvalidInput,
		},
		{
			name:     "expired code",
			user:     func(t *testing.T) *models.User { return userWithOTP(t, "123456", time.Now().Add(-time.Minute)) },
			code:     "123456",
			wantErr:  services.ErrOTPExpired,
			category: apperrors.ErrInvalidInput,
		},
		{
			name:     "mismatched code",
			user:     func(t *testing.T) *models.User { return userWithOTP(t, "123456", time.Now().Add(time.Minute)) },
			code:     "654321",
			wantErr:  services.ErrOTPMismatch,
			category: apperrors.ErrUnauthorized,
		},
		{
			name: "inactive account",
			user: func(t *testing.T) *models.User {
				u := userWithOTP(t, "123456", time.Now().Add(time.Minute))
				u.Status = models.UserStatusInactive
				return u
			},
			code:     "123456",
			wantErr:  services.ErrAccountInactive,
			category: apperrors.ErrAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, _ := newAuthService(t)
			ctx := context.Background()
			repo.On("GetByEmail", ctx, "jane@example.com").Return(tt.user(t), nil).Once()

			resp, token, err := service.VerifyOTP(ctx, &models.VerifyOTPRequest{Email: "jane@example.com", OTP: tt.code})

			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, apperrors.Is(err, tt.category))
			assert.Nil(t, resp)
			assert.Empty(t, token)
			repo.AssertNotCalled(t, "MarkVerified", mock.Anything, mock.Anything)
		})
	}
}

func TestAuthService_VerifyOTP_NoSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Session.JWTSecret = ""
	notifier, _ := newNotifier()
	service := services.NewAuthService(new(MockUserRepository), notifier, cfg)

	_, _, err := service.VerifyOTP(context.Background(), &models.VerifyOTPRequest{Email: "jane@example.com", OTP: "123456"})

	assert.ErrorIs(t, err, services.ErrSessionNotSet)
}

func TestAuthService_CurrentUser(t *testing.T) {
	deletedAt := time.Now()
	tests := []struct {
		name     string
		user     *models.User
		repoErr  error
		category error
	}{
		{name: "active", user: &models.User{ID: "user-1", Status: models.UserStatusActive}},
		{name: "missing", repoErr: apperrors.ErrNotFound, category: apperrors.ErrUnauthorized},
		{name: "deleted", user: &models.User{ID: "user-1", DeletedAt: &deletedAt}, category: apperrors.ErrUnauthorized},
		{name: "inactive", user: &models.User{ID: "user-1", Status: models.UserStatusInactive}, category: apperrors.ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, repo, _ := newAuthService(t)
			ctx := context.Background()
			repo.On("GetByID", ctx, "user-1").Return(tt.user, tt.repoErr).Once()

			user, err := service.CurrentUser(ctx, &models.Session{UserID: "user-1"})

			if tt.category == nil {
				require.NoError(t, err)
				assert.Equal(t, tt.user, user)
				return
			}
			assert.True(t, apperrors.Is(err, tt.category))
		})
	}
}
