package error

import "errors"

// Statement engine domain errors.
var (
	// ErrStatementUnavailable is returned when the underlying record streams
	// cannot be queried and no statement can be computed.
	ErrStatementUnavailable = errors.New("could not load statement")

	// ErrIncompleteCardConfig is returned when a statement is requested for a
	// card without a valid closing/due day configuration.
	ErrIncompleteCardConfig = errors.New("card has no valid closing/due day configuration")

	// ErrInvalidCycleMonth is returned when the requested cycle month is invalid.
	ErrInvalidCycleMonth = errors.New("cycle month must be between 1 and 12")

	// ErrNoInstallmentsSelected is returned when an anticipation request
	// selects no future installments.
	ErrNoInstallmentsSelected = errors.New("no future installments selected")

	// ErrNotAnInstallment is returned when the anticipated expense is not part
	// of a multi-installment purchase.
	ErrNotAnInstallment = errors.New("expense is not an installment")

	// ErrInstallmentMismatch is returned when a selected installment does not
	// belong to the same original purchase.
	ErrInstallmentMismatch = errors.New("installment does not belong to the same purchase")

	// ErrInstallmentNotFuture is returned when a selected installment is not
	// dated strictly after the current one.
	ErrInstallmentNotFuture = errors.New("installment is not dated after the current one")

	// ErrInvalidAnticipationTotal is returned when the anticipation total is
	// not positive.
	ErrInvalidAnticipationTotal = errors.New("anticipation total must be positive")
)

// StatementErrorCode defines error codes for statement engine errors.
// Format: FAT-XXYYYY where XX is category and YYYY is specific error.
type StatementErrorCode string

const (
	// Computation errors (01XXXX)
	ErrCodeStatementUnavailable StatementErrorCode = "FAT-010001"
	ErrCodeIncompleteCardConfig StatementErrorCode = "FAT-010002"
	ErrCodeInvalidCycleMonth    StatementErrorCode = "FAT-010003"

	// Anticipation errors (02XXXX)
	ErrCodeNoInstallmentsSelected   StatementErrorCode = "FAT-020001"
	ErrCodeNotAnInstallment         StatementErrorCode = "FAT-020002"
	ErrCodeInstallmentMismatch      StatementErrorCode = "FAT-020003"
	ErrCodeInstallmentNotFuture     StatementErrorCode = "FAT-020004"
	ErrCodeInvalidAnticipationTotal StatementErrorCode = "FAT-020005"
	ErrCodeAnticipationFailed       StatementErrorCode = "FAT-020006"
)

// StatementError represents a statement engine error with code and message.
type StatementError struct {
	Code    StatementErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *StatementError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *StatementError) Unwrap() error {
	return e.Err
}

// NewStatementError creates a new StatementError with the given code and message.
func NewStatementError(code StatementErrorCode, message string, err error) *StatementError {
	return &StatementError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
