package errors

import (
	stdErrors "errors"
	"fmt"
)

type Code string

const (
	CodeAuthentication Code = "AUTHENTICATION_ERROR"
	CodeValidation     Code = "VALIDATION_ERROR"
	CodeTransient      Code = "TRANSIENT_ERROR"
	CodeBusinessRule   Code = "BUSINESS_RULE_ERROR"
	CodeNotFound       Code = "NOT_FOUND"
	CodeStateConflict  Code = "STATE_CONFLICT"
	CodeInternal       Code = "INTERNAL_ERROR"
)

type Metadata struct {
	Retryable       bool
	RedirectToLogin bool
	PublicMessage   string
	DetailsAllowed  bool
}

var metadataByCode = map[Code]Metadata{
	CodeAuthentication: {
		Retryable:       false,
		RedirectToLogin: true,
		PublicMessage:   "session expired, please sign in again",
		DetailsAllowed:  false,
	},
	CodeValidation: {
		Retryable:      false,
		PublicMessage:  "validation failed",
		DetailsAllowed: true,
	},
	CodeTransient: {
		Retryable:      true,
		PublicMessage:  "something went wrong, please try again",
		DetailsAllowed: false,
	},
	CodeBusinessRule: {
		Retryable:      true,
		PublicMessage:  "the order could not be placed",
		DetailsAllowed: true,
	},
	CodeNotFound: {
		Retryable:      false,
		PublicMessage:  "the requested item was not found",
		DetailsAllowed: true,
	},
	CodeStateConflict: {
		Retryable:      false,
		PublicMessage:  "action not allowed in the current step",
		DetailsAllowed: true,
	},
	CodeInternal: {
		Retryable:      false,
		PublicMessage:  "internal error",
		DetailsAllowed: false,
	},
}

func MetadataFor(code Code) Metadata {
	if meta, ok := metadataByCode[code]; ok {
		return meta
	}
	return metadataByCode[CodeInternal]
}

type Error struct {
	code    Code
	message string
	details any
	cause   error
}

func New(code Code, message string) *Error {
	return &Error{code: code, message: message}
}

func Wrap(code Code, err error, message string) *Error {
	if err == nil {
		return New(code, message)
	}
	return &Error{code: code, message: message, cause: err}
}

func (e *Error) Code() Code {
	if e == nil {
		return CodeInternal
	}
	return e.code
}

func (e *Error) Message() string {
	if e == nil {
		return ""
	}
	return e.message
}

func (e *Error) Details() any {
	if e == nil {
		return nil
	}
	return e.details
}

func (e *Error) WithDetails(details any) *Error {
	if e == nil {
		return nil
	}
	e.details = details
	return e
}

// UserMessage returns the text safe to surface in the interface layer:
// the wrapped message when the code allows it, the generic public
// message otherwise.
func (e *Error) UserMessage() string {
	if e == nil {
		return MetadataFor(CodeInternal).PublicMessage
	}
	meta := MetadataFor(e.code)
	if meta.DetailsAllowed && e.message != "" {
		return e.message
	}
	return meta.PublicMessage
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.code, e.message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

func As(err error) *Error {
	if err == nil {
		return nil
	}
	var typed *Error
	if stdErrors.As(err, &typed) {
		return typed
	}
	return nil
}

// IsRetryable reports whether the error's code permits a retry affordance.
func IsRetryable(err error) bool {
	typed := As(err)
	if typed == nil {
		return false
	}
	return MetadataFor(typed.Code()).Retryable
}

// RequiresLogin reports whether the error should trigger a redirect to login.
func RequiresLogin(err error) bool {
	typed := As(err)
	if typed == nil {
		return false
	}
	return MetadataFor(typed.Code()).RedirectToLogin
}
