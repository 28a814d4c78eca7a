package shared

// DomainError is a business-rule violation with a stable machine code.
// The code is part of the API contract; handlers map it to an HTTP
// status without rewriting it.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// ErrNotFound is the shared miss sentinel; repositories return it so
// callers can test with errors.Is regardless of the backing store.
var ErrNotFound = NewDomainError("NOT_FOUND", "Resource not found")
