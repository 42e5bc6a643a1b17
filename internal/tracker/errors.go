package tracker

import "errors"

// Input rejections. Each is reported before any ledger write.
var (
	ErrInputEmpty       = errors.New("please enter an amount")
	ErrInputNotInteger  = errors.New("amount must be a whole number")
	ErrInputNonPositive = errors.New("amount must be greater than 0 after rounding")
)

// IsInputError reports whether err is one of the input rejections.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInputEmpty) ||
		errors.Is(err, ErrInputNotInteger) ||
		errors.Is(err, ErrInputNonPositive)
}
