package errx

import (
	"fmt"
	"net/http"
)

// Type classifies an error for transport mapping and fallback policy decisions
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeBusiness      Type = "BUSINESS"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeInternal      Type = "INTERNAL"
	TypeExternal      Type = "EXTERNAL"
)

// Code identifies a registered error within a registry
type Code struct {
	registry   string
	code       string
	errType    Type
	httpStatus int
	message    string
}

// Registry groups error codes under a domain prefix (e.g. "ASSESSMENT")
type Registry struct {
	prefix string
}

// NewRegistry creates a new error registry with the given prefix
func NewRegistry(prefix string) *Registry {
	return &Registry{prefix: prefix}
}

// Register declares an error code in this registry
func (r *Registry) Register(code string, errType Type, httpStatus int, message string) Code {
	return Code{
		registry:   r.prefix,
		code:       code,
		errType:    errType,
		httpStatus: httpStatus,
		message:    message,
	}
}

// New builds an error from a registered code
func (r *Registry) New(code Code) *Error {
	return &Error{
		Registry:   code.registry,
		Code:       code.code,
		Type:       code.errType,
		HTTPStatus: code.httpStatus,
		Message:    code.message,
	}
}

// Error is a structured error carrying type, transport status, and details
type Error struct {
	Registry   string         `json:"registry"`
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	HTTPStatus int            `json:"-"`
	Message    string         `json:"message"`
	Details    map[string]any `json:"details,omitempty"`
	Cause      error          `json:"-"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s.%s] %s: %v", e.Registry, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s.%s] %s", e.Registry, e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// WithDetail attaches a key/value pair to the error
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithDetails merges a map of key/value pairs into the error
func (e *Error) WithDetails(details map[string]any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any, len(details))
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithCause attaches an underlying error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// IsType reports whether err is an *Error of the given type
func IsType(err error, t Type) bool {
	e, ok := err.(*Error)
	return ok && e.Type == t
}

// ToHTTPResponse renders the error as a JSON-serializable body
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"error":   e.Message,
		"type":    string(e.Type),
		"code":    fmt.Sprintf("%s.%s", e.Registry, e.Code),
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// Wrap converts an arbitrary error into an *Error with the given type
func Wrap(err error, message string, errType Type) *Error {
	status := http.StatusInternalServerError
	switch errType {
	case TypeValidation:
		status = http.StatusBadRequest
	case TypeNotFound:
		status = http.StatusNotFound
	case TypeConflict:
		status = http.StatusConflict
	case TypeAuthorization:
		status = http.StatusForbidden
	case TypeExternal:
		status = http.StatusBadGateway
	}

	return &Error{
		Registry:   "COMMON",
		Code:       "WRAPPED",
		Type:       errType,
		HTTPStatus: status,
		Message:    message,
		Cause:      err,
	}
}
