package models

import (
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// Role is a user's platform role.
type Role string

const (
	RoleMentee Role = "MENTEE"
	RoleMentor Role = "MENTOR"
	RoleAdmin  Role = "ADMIN"
)

func (r Role) IsValid() bool {
	return r == RoleMentee || r == RoleMentor || r == RoleAdmin
}

// UserStatus is the account lifecycle state. Soft deletion is tracked
// separately through DeletedAt.
type UserStatus string

const (
	UserStatusPending  UserStatus = "PENDING"
	UserStatusActive   UserStatus = "ACTIVE"
	UserStatusInactive UserStatus = "INACTIVE"
)

func (s UserStatus) IsValid() bool {
	return s == UserStatusPending || s == UserStatusActive || s == UserStatusInactive
}

// CanTransitionTo reports whether an admin may move an account between statuses.
// PENDING accounts leave only through verification, approval or rejection.
func (s UserStatus) CanTransitionTo(next UserStatus) bool {
	switch s {
	case UserStatusPending:
		return next == UserStatusActive
	case UserStatusActive:
		return next == UserStatusInactive
	case UserStatusInactive:
		return next == UserStatusActive
	default:
		return false
	}
}

// User is an account. OTP fields are never serialized.
type User struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	Role            Role       `json:"role"`
	Status          UserStatus `json:"status"`
	OTPHash         *string    `json:"-"`
	OTPExpiresAt    *time.Time `json:"-"`
	TermsAccepted   bool       `json:"termsAccepted"`
	TermsAcceptedAt *time.Time `json:"termsAcceptedAt"`
	EmailVerifiedAt *time.Time `json:"emailVerifiedAt"`
	LastLoginAt     *time.Time `json:"lastLoginAt"`
	DeletedAt       *time.Time `json:"deletedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// FullName joins first and last name.
func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

// IsDeleted reports whether the account was soft-deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// UserColumns is the column list ScanUser expects, in order.
const UserColumns = `id, email, first_name, last_name, role, status, otp_hash, otp_expires_at,
	terms_accepted, terms_accepted_at, email_verified_at, last_login_at, deleted_at, created_at, updated_at`

// ScanUser scans a row selected with UserColumns.
func ScanUser(row pgx.Row) (*User, error) {
	var u User
	var role, status string
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&role,
		&status,
		&u.OTPHash,
		&u.OTPExpiresAt,
		&u.TermsAccepted,
		&u.TermsAcceptedAt,
		&u.EmailVerifiedAt,
		&u.LastLoginAt,
		&u.DeletedAt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.Role = Role(role)
	u.Status = UserStatus(status)
	return &u, nil
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type RegisterRequest struct {
	Email         string `json:"email" binding:"required,email,max=255"`
	FirstName     string `json:"firstName" binding:"required,min=1,max=100"`
	LastName      string `json:"lastName" binding:"required,min=1,max=100"`
	Role          Role   `json:"role" binding:"required,oneof=MENTEE MENTOR"`
	TermsAccepted bool   `json:"termsAccepted"`
}

type EmailRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email,max=255"`
	OTP   string `json:"otp" binding:"required,len=6,numeric"`
}

type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type VerifyOTPResponse struct {
	Success bool     `json:"success"`
	User    *User    `json:"user"`
	Session *Session `json:"session"`
}

// UserFilter narrows the admin user list.
type UserFilter struct {
	Status         UserStatus
	Role           Role
	Query          string
	IncludeDeleted bool
	Pagination
}

type UpdateUserRoleRequest struct {
	Role Role `json:"role" binding:"required,oneof=MENTEE MENTOR ADMIN"`
}

type UpdateUserStatusRequest struct {
	Status UserStatus `json:"status" binding:"required,oneof=ACTIVE INACTIVE"`
}

type RejectUserRequest struct {
	Reason string `json:"reason" binding:"max=1000"`
}
