package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Common domain errors
var (
	// ErrNotFound is returned when a requested resource is not found
	ErrNotFound = errors.New("resource not found")
	// ErrAlreadyExists is returned when trying to create a resource that already exists
	ErrAlreadyExists = errors.New("resource already exists")
	// ErrValidation is returned when input validation fails
	ErrValidation = errors.New("validation error")
	// ErrUnauthorized is returned when a caller fails a role or ownership check
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidState is returned when an operation is not allowed from the current state
	ErrInvalidState = errors.New("invalid state")
	// ErrDuplicate is returned when an active assignment already exists.
	// It is a refinement of ErrInvalidState.
	ErrDuplicate = errors.New("duplicate assignment")
	// ErrConfiguration is returned when required provider credentials are missing
	ErrConfiguration = errors.New("configuration error")
	// ErrProviderRequest is returned when a payment provider answers with a non-success status
	ErrProviderRequest = errors.New("provider request failed")
)

// Kind classifies an Error. Each kind maps to one sentinel above.
type Kind uint8

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindUnauthorized
	KindInvalidState
	KindDuplicate
	KindConfiguration
	KindProviderRequest
)

var kindSentinels = map[Kind]error{
	KindValidation:      ErrValidation,
	KindNotFound:        ErrNotFound,
	KindUnauthorized:    ErrUnauthorized,
	KindInvalidState:    ErrInvalidState,
	KindDuplicate:       ErrDuplicate,
	KindConfiguration:   ErrConfiguration,
	KindProviderRequest: ErrProviderRequest,
}

// Error is the typed error returned by services. It carries enough context
// (operation, resource, field, state) for the HTTP layer to render a precise message.
type Error struct {
	Kind     Kind
	Op       string
	Resource string
	Field    string
	State    string
	Detail   string
	// StatusCode and Body are set for provider request failures.
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(kindSentinels[e.Kind].Error())
	if e.Resource != "" {
		b.WriteString(" (")
		b.WriteString(e.Resource)
		b.WriteString(")")
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " field=%s", e.Field)
	}
	if e.State != "" {
		fmt.Fprintf(&b, " state=%s", e.State)
	}
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " status=%d", e.StatusCode)
	}
	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}
	if e.Body != "" {
		b.WriteString(": ")
		b.WriteString(e.Body)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Is matches the sentinel of the error kind. Duplicate errors also match ErrInvalidState.
func (e *Error) Is(target error) bool {
	if target == kindSentinels[e.Kind] {
		return true
	}
	return e.Kind == KindDuplicate && target == ErrInvalidState
}

func (e *Error) Unwrap() error { return e.Err }

// NewValidationError reports a missing or malformed argument.
func NewValidationError(op, field, detail string) *Error {
	return &Error{Kind: KindValidation, Op: op, Field: field, Detail: detail}
}

// NewNotFoundError reports an absent resource.
func NewNotFoundError(op, resource string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Resource: resource}
}

// NewUnauthorizedError reports a failed role or ownership check.
func NewUnauthorizedError(op, detail string) *Error {
	return &Error{Kind: KindUnauthorized, Op: op, Detail: detail}
}

// NewInvalidStateError reports an operation attempted from a state that does not permit it.
func NewInvalidStateError(op, resource, state, detail string) *Error {
	return &Error{Kind: KindInvalidState, Op: op, Resource: resource, State: state, Detail: detail}
}

// NewDuplicateError reports an already existing active assignment.
func NewDuplicateError(op, resource, detail string) *Error {
	return &Error{Kind: KindDuplicate, Op: op, Resource: resource, Detail: detail}
}

// NewConfigurationError reports missing provider credentials.
func NewConfigurationError(op, detail string) *Error {
	return &Error{Kind: KindConfiguration, Op: op, Detail: detail}
}

// NewProviderRequestError reports a non-success provider response, embedding its body.
func NewProviderRequestError(op string, statusCode int, body string) *Error {
	return &Error{Kind: KindProviderRequest, Op: op, StatusCode: statusCode, Body: body}
}

// KindOf returns the kind of a typed error found in err's chain, or 0.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	switch {
	case errors.Is(err, ErrDuplicate):
		return KindDuplicate
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrInvalidState):
		return KindInvalidState
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, ErrProviderRequest):
		return KindProviderRequest
	}
	return 0
}

// AsNotFound replaces a bare ErrNotFound from a repository with a typed
// NotFoundError naming op and resource. Other errors pass through.
func AsNotFound(err error, op, resource string) error {
	var de *Error
	if errors.Is(err, ErrNotFound) && !errors.As(err, &de) {
		return NewNotFoundError(op, resource)
	}
	return err
}
