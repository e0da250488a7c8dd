// Package error defines domain-specific errors for the life energy review engine.
package error

import "errors"

// Monthly review domain errors.
var (
	// ErrReviewNotFound is returned when a monthly review does not exist or belongs to another user.
	ErrReviewNotFound = errors.New("monthly review not found")

	// ErrCategoryReviewNotFound is returned when a category breakdown does not exist or belongs to another user.
	ErrCategoryReviewNotFound = errors.New("monthly category review not found")

	// ErrInvalidMonthCode is returned when a month code is not a well-formed MMYYYY string.
	ErrInvalidMonthCode = errors.New("invalid month code")

	// ErrReviewConflict is returned when a review for the same user and month already exists.
	ErrReviewConflict = errors.New("monthly review already exists for this month")

	// ErrDisallowedReviewField is returned when a metadata update names a field other than notes or completed.
	ErrDisallowedReviewField = errors.New("field cannot be updated")

	// ErrReviewAlreadyCompleted is returned when an update tries to reopen a completed review.
	ErrReviewAlreadyCompleted = errors.New("completed reviews cannot be reopened")

	// ErrInvalidMark is returned when a reflection mark is not negative, neutral or positive.
	ErrInvalidMark = errors.New("invalid reflection mark")

	// ErrInvalidReviewDate is returned when the requested month date cannot be parsed.
	ErrInvalidReviewDate = errors.New("invalid month date, expected YYYY-MM-DD")

	// ErrLifeEnergyComputation is returned when totals cannot be derived from the ledger.
	ErrLifeEnergyComputation = errors.New("life energy computation failed")
)

// ReviewErrorCode defines error codes for monthly review errors.
// Format: MRV-XXYYYY where XX is category and YYYY is specific error.
type ReviewErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeDisallowedReviewField  ReviewErrorCode = "MRV-010001"
	ErrCodeReviewAlreadyCompleted ReviewErrorCode = "MRV-010002"
	ErrCodeInvalidMark            ReviewErrorCode = "MRV-010003"
	ErrCodeInvalidReviewDate      ReviewErrorCode = "MRV-010004"
	ErrCodeMissingReviewFields    ReviewErrorCode = "MRV-010005"

	// Not found errors (02XXXX)
	ErrCodeReviewNotFound         ReviewErrorCode = "MRV-020001"
	ErrCodeCategoryReviewNotFound ReviewErrorCode = "MRV-020002"
	ErrCodeInvalidMonthCode       ReviewErrorCode = "MRV-020003"
	ErrCodeReviewUserNotFound     ReviewErrorCode = "MRV-020004"

	// Conflict errors (03XXXX)
	ErrCodeReviewConflict ReviewErrorCode = "MRV-030001"

	// Internal errors (99XXXX)
	ErrCodeLifeEnergyComputation ReviewErrorCode = "MRV-990001"
)

// ReviewError represents a monthly review error with code and message.
type ReviewError struct {
	Code    ReviewErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ReviewError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ReviewError) Unwrap() error {
	return e.Err
}

// NewReviewError creates a new ReviewError with the given code and message.
func NewReviewError(code ReviewErrorCode, message string, err error) *ReviewError {
	return &ReviewError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
