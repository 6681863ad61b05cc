package domain

// ValidationError reports an input that fails one of the calculator's
// validity rules. Validation runs before any arithmetic so an invalid
// profile never produces a partial or non-finite result.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError for the given field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
