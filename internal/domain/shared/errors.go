package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes used across the core. They map to the uniform
// {Status:false, Error} envelope at the HTTP boundary.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeAuthRequired = "AUTH_REQUIRED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeFetchFailed  = "FETCH_FAILED"
	CodeParseFailed  = "PARSE_FAILED"
	CodeConstraint   = "CONSTRAINT_VIOLATION"
	CodeInvalidState = "INVALID_STATE"
	CodeConflict     = "ALREADY_EXISTS"
)

// Common domain errors
var (
	ErrNotFound      = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists = NewDomainError(CodeConflict, "Resource already exists")
	ErrForbidden     = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
	ErrUnauthorized  = NewDomainError(CodeAuthRequired, "Authentication required")
	ErrInvalidState  = NewDomainError(CodeInvalidState, "Operation not allowed in current state")
)

// NewValidationError builds a VALIDATION_ERROR with a caller-supplied message.
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewConstraintError surfaces a storage constraint violation verbatim.
func NewConstraintError(message string) *DomainError {
	return NewDomainError(CodeConstraint, message)
}
