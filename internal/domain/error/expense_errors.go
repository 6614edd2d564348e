package error

import "errors"

// Expense domain errors.
var (
	// ErrExpenseNotFound is returned when an expense is not found in the system.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrNotAuthorizedToModifyExpense is returned when the expense belongs to another user/profile.
	ErrNotAuthorizedToModifyExpense = errors.New("not authorized to modify expense")

	// ErrInvalidExpenseAmount is returned when the expense amount is not positive.
	ErrInvalidExpenseAmount = errors.New("expense amount must be positive")

	// ErrInvalidExpenseDate is returned when the expense date is invalid.
	ErrInvalidExpenseDate = errors.New("invalid expense date")

	// ErrInvalidInstallments is returned when the installment count is below 1.
	ErrInvalidInstallments = errors.New("installments must be at least 1")

	// ErrEmptyExpenseDescription is returned when the expense description is empty.
	ErrEmptyExpenseDescription = errors.New("expense description cannot be empty")
)

// ExpenseErrorCode defines error codes for expense errors.
// Format: EXP-XXYYYY where XX is category and YYYY is specific error.
type ExpenseErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidExpenseAmount    ExpenseErrorCode = "EXP-010001"
	ErrCodeInvalidExpenseDate      ExpenseErrorCode = "EXP-010002"
	ErrCodeInvalidInstallments     ExpenseErrorCode = "EXP-010003"
	ErrCodeEmptyExpenseDescription ExpenseErrorCode = "EXP-010004"
	ErrCodeExpenseNotFound         ExpenseErrorCode = "EXP-010005"
	ErrCodeExpenseNotOwned         ExpenseErrorCode = "EXP-010006"
)

// ExpenseError represents an expense error with code and message.
type ExpenseError struct {
	Code    ExpenseErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ExpenseError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ExpenseError) Unwrap() error {
	return e.Err
}

// NewExpenseError creates a new ExpenseError with the given code and message.
func NewExpenseError(code ExpenseErrorCode, message string, err error) *ExpenseError {
	return &ExpenseError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
