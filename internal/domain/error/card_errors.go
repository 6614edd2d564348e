package error

import "errors"

// Card domain errors.
var (
	// ErrCardNotFound is returned when a card is not found in the system.
	ErrCardNotFound = errors.New("card not found")

	// ErrNotAuthorizedToModifyCard is returned when the card belongs to another user/profile.
	ErrNotAuthorizedToModifyCard = errors.New("not authorized to modify card")

	// ErrInvalidClosingDay is returned when the closing day is outside [1, 31].
	ErrInvalidClosingDay = errors.New("closing day must be between 1 and 31")

	// ErrInvalidDueDay is returned when the due day is outside [1, 31].
	ErrInvalidDueDay = errors.New("due day must be between 1 and 31")

	// ErrInvalidCardLimit is returned when the card limit is negative.
	ErrInvalidCardLimit = errors.New("card limit cannot be negative")

	// ErrEmptyCardName is returned when the card name is empty.
	ErrEmptyCardName = errors.New("card name cannot be empty")
)

// CardErrorCode defines error codes for card errors.
// Format: CRD-XXYYYY where XX is category and YYYY is specific error.
type CardErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidClosingDay CardErrorCode = "CRD-010001"
	ErrCodeInvalidDueDay     CardErrorCode = "CRD-010002"
	ErrCodeInvalidCardLimit  CardErrorCode = "CRD-010003"
	ErrCodeEmptyCardName     CardErrorCode = "CRD-010004"
	ErrCodeCardNotFound      CardErrorCode = "CRD-010005"
	ErrCodeCardNotOwned      CardErrorCode = "CRD-010006"
)

// CardError represents a card error with code and message.
type CardError struct {
	Code    CardErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *CardError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *CardError) Unwrap() error {
	return e.Err
}

// NewCardError creates a new CardError with the given code and message.
func NewCardError(code CardErrorCode, message string, err error) *CardError {
	return &CardError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
