package error

import "errors"

// Bill payment domain errors.
var (
	// ErrBillPaymentNotFound is returned when a bill payment is not found in the system.
	ErrBillPaymentNotFound = errors.New("bill payment not found")

	// ErrNotAuthorizedToModifyBillPayment is returned when the record belongs to another user/profile.
	ErrNotAuthorizedToModifyBillPayment = errors.New("not authorized to modify bill payment")

	// ErrInvalidBillPaymentType is returned when the type is neither payment nor refund.
	ErrInvalidBillPaymentType = errors.New("invalid bill payment type")

	// ErrInvalidBillPaymentAmount is returned when the amount is not positive.
	ErrInvalidBillPaymentAmount = errors.New("bill payment amount must be positive")
)

// BillPaymentErrorCode defines error codes for bill payment errors.
// Format: PAY-XXYYYY where XX is category and YYYY is specific error.
type BillPaymentErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBillPaymentType   BillPaymentErrorCode = "PAY-010001"
	ErrCodeInvalidBillPaymentAmount BillPaymentErrorCode = "PAY-010002"
	ErrCodeBillPaymentNotFound      BillPaymentErrorCode = "PAY-010003"
	ErrCodeBillPaymentNotOwned      BillPaymentErrorCode = "PAY-010004"
)

// BillPaymentError represents a bill payment error with code and message.
type BillPaymentError struct {
	Code    BillPaymentErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BillPaymentError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BillPaymentError) Unwrap() error {
	return e.Err
}

// NewBillPaymentError creates a new BillPaymentError with the given code and message.
func NewBillPaymentError(code BillPaymentErrorCode, message string, err error) *BillPaymentError {
	return &BillPaymentError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
