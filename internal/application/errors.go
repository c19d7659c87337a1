package application

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"
)

// ErrInvalidCredentials is returned by Login when the username is unknown or
// the password does not match. The two cases are not distinguished.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ValidationError reports a request payload that breaks an input contract.
// Fields holds per-field messages keyed by JSON name when available.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// asValidationError converts ozzo-validation field errors into a
// ValidationError. Internal rule errors are returned unchanged.
func asValidationError(err error) error {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		var internal validation.InternalError
		if errors.As(err, &internal) {
			return err
		}
		return invalid(err.Error())
	}

	fields := make(map[string]string, len(fieldErrs))
	for name, fe := range fieldErrs {
		fields[name] = fe.Error()
	}

	return &ValidationError{Message: fieldErrs.Error(), Fields: fields}
}
