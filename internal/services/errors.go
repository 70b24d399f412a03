package services

import (
	"fmt"

	apperrors "github.com/urocareerz/urocareerz-api/pkg/errors"
)

// Sentinel errors. Each wraps an error category so handlers can map it to a
// status code with errors.Is.
var (
	ErrEmailInUse        = apperrors.ConflictError("email already registered")
	ErrTermsNotAccepted  = fmt.Errorf("terms and conditions must be accepted: %w", apperrors.ErrInvalidInput)
	ErrUserNotFound      = apperrors.NotFoundError("user")
	ErrAccountInactive   = apperrors.AccessDeniedError("account is inactive")
	ErrNoOTPOutstanding  = fmt.Errorf("no verification code requested: %w", apperrors.ErrInvalidInput)
	ErrOTPExpired        = fmt.Errorf("verification code expired: %w", apperrors.ErrInvalidInput)
	ErrOTPMismatch       = fmt.Errorf("invalid verification code: %w", apperrors.ErrUnauthorized)
	ErrSessionNotSet     = apperrors.InternalError("session signing is not configured")
	ErrOTPDeliveryFailed = apperrors.InternalError("failed to send verification code")

	ErrForbidden         = apperrors.AccessDeniedError("not allowed")
	ErrInvalidTransition = fmt.Errorf("status change not allowed: %w", apperrors.ErrInvalidInput)
	ErrSelfModification  = fmt.Errorf("admins cannot demote or deactivate themselves: %w", apperrors.ErrInvalidInput)

	ErrOpportunityNotFound     = apperrors.NotFoundError("opportunity")
	ErrOpportunityTypeNotFound = apperrors.NotFoundError("opportunity type")
	ErrUnknownOpportunityType  = fmt.Errorf("unknown or inactive opportunity type: %w", apperrors.ErrInvalidInput)
	ErrOpportunityTypeInUse    = apperrors.ConflictError("opportunity type is used by opportunities")
	ErrOpportunityTypeExists   = apperrors.ConflictError("opportunity type name already exists")
	ErrConvertNotAllowed       = fmt.Errorf("only mentee submissions can be converted: %w", apperrors.ErrInvalidInput)
	ErrAlreadySaved            = apperrors.ConflictError("opportunity already saved")
	ErrNotSaved                = fmt.Errorf("opportunity not saved: %w", apperrors.ErrNotFound)

	ErrApplicationNotFound = apperrors.NotFoundError("application")
	ErrAlreadyApplied      = apperrors.ConflictError("already applied to this opportunity")
	ErrNotAcceptingApps    = fmt.Errorf("opportunity is not accepting applications: %w", apperrors.ErrInvalidInput)
	ErrNoResume            = fmt.Errorf("no resume attached: %w", apperrors.ErrNotFound)

	ErrDiscussionNotFound = apperrors.NotFoundError("discussion")
	ErrCommentNotFound    = apperrors.NotFoundError("comment")
	ErrDiscussionClosed   = fmt.Errorf("discussion is not accepting comments: %w", apperrors.ErrInvalidInput)
	ErrEmptyComment       = fmt.Errorf("comment is empty: %w", apperrors.ErrInvalidInput)

	ErrStorageUnavailable = apperrors.InternalError("file storage is not configured")
	ErrInvalidFile        = fmt.Errorf("invalid file: %w", apperrors.ErrInvalidInput)
	ErrFileNotOwned       = apperrors.AccessDeniedError("file does not belong to you")
)

// notFoundAs replaces a repository not-found error with a domain sentinel and
// passes any other error through.
func notFoundAs(err, sentinel error) error {
	if apperrors.Is(err, apperrors.ErrNotFound) {
		return sentinel
	}
	return err
}
