package domain

// ValidationError is a client-input failure carrying a field-level message.
// The HTTP layer maps it to a 400 response with the message as the body.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalid builds a ValidationError with the given message.
func Invalid(msg string) error { return &ValidationError{Message: msg} }
