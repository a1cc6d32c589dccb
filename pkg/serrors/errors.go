package serrors

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Base is a coded error. The code is stable and machine-readable, the message
// is what callers surface to users.
type Base struct {
	Code    string
	Message string
}

func (e *Base) Error() string {
	return e.Message
}

func NewError(code, message string) *Base {
	return &Base{Code: code, Message: message}
}

func Wrap(code string, err error) *Base {
	return &Base{Code: code, Message: err.Error()}
}

// ValidationErrors maps a field name to its human-readable error.
type ValidationErrors map[string]string

// ProcessValidatorErrors flattens go-playground validation errors into a
// field→message map using the supplied message resolver.
func ProcessValidatorErrors(errs validator.ValidationErrors, message func(field, tag string) string) ValidationErrors {
	out := make(ValidationErrors, len(errs))
	for _, fe := range errs {
		msg := message(fe.Field(), fe.Tag())
		if msg == "" {
			msg = fmt.Sprintf("%s is invalid", fe.Field())
		}
		out[fe.Field()] = msg
	}
	return out
}
