package core

import "errors"

var (
	ErrValidation          = errors.New("validation failed")
	ErrDuplicateName       = errors.New("name already registered")
	ErrNotFound            = errors.New("account not found")
	ErrCorruptRecord       = errors.New("account data is corrupt")
	ErrMissingCredential   = errors.New("account has no pin")
	ErrInvalidPin          = errors.New("invalid pin")
	ErrInvalidAmount       = errors.New("amount must be greater than 0")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNotConfirmed        = errors.New("operation not confirmed")
	ErrNotLoggedIn         = errors.New("not logged in")
)

// UserMessage maps an error returned by the directory or the ledger to the short
// message shown to the person using the app. Unknown errors get a generic text.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return "Your PIN must have exactly 6 digits and your name cannot be empty"
	case errors.Is(err, ErrDuplicateName):
		return "This name is already registered. Try another!"
	case errors.Is(err, ErrNotFound):
		return "We could not find this account. Try again!"
	case errors.Is(err, ErrCorruptRecord):
		return "Error reading account data. Please delete and register again."
	case errors.Is(err, ErrMissingCredential):
		return "This account has no valid PIN. Please delete and register again."
	case errors.Is(err, ErrInvalidPin):
		return "Oops! PIN is incorrect. Try again."
	case errors.Is(err, ErrInvalidAmount):
		return "Enter a valid amount greater than 0"
	case errors.Is(err, ErrInsufficientBalance):
		return "Insufficient balance"
	case errors.Is(err, ErrNotConfirmed):
		return "Nothing changed."
	case errors.Is(err, ErrNotLoggedIn):
		return "Please log in first"
	default:
		return "Something went wrong. Please try again."
	}
}
