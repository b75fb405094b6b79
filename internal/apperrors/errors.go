package apperrors

import (
	"errors"
	"net/http"
	"strings"
)

type Kind string

const (
	KindTransient  Kind = "transient"
	KindRateLimit  Kind = "rate_limit"
	KindAuth       Kind = "auth"
	KindValidation Kind = "validation"
	KindBadRequest Kind = "bad_request"
	// KindConfig marks a collaborator that could not be constructed (missing or invalid credential).
	KindConfig Kind = "config"
)

type Error struct {
	Kind Kind
	// SafeMessage is intended for user-facing output and logs.
	SafeMessage string
	// Cause keeps the original internal error for troubleshooting.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if msg := strings.TrimSpace(e.SafeMessage); msg != "" {
		return msg
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

var defaultMessages = map[Kind]string{
	KindTransient:  "Temporary upstream error. Please try again.",
	KindRateLimit:  "Rate limit exceeded. Please try again later.",
	KindAuth:       "Authentication failed. Please verify your API key and permissions.",
	KindValidation: "Response validation failed.",
	KindBadRequest: "Request rejected by upstream API.",
	KindConfig:     "Service is not configured.",
}

// New wraps cause with a kind and a message safe to show users. An empty
// safeMessage falls back to the kind's generic text.
func New(kind Kind, safeMessage string, cause error) error {
	msg := strings.TrimSpace(safeMessage)
	if msg == "" {
		msg = defaultMessages[kind]
	}
	if msg == "" {
		msg = "Request failed."
	}
	return &Error{Kind: kind, SafeMessage: msg, Cause: cause}
}

func Transient(err error) error {
	return New(KindTransient, "", err)
}

func RateLimit(err error) error {
	return New(KindRateLimit, "", err)
}

func Auth(err error) error {
	return New(KindAuth, "", err)
}

func Validation(err error) error {
	return New(KindValidation, "", err)
}

func BadRequest(err error) error {
	return New(KindBadRequest, "", err)
}

func Config(safeMessage string, err error) error {
	return New(KindConfig, safeMessage, err)
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Kind, true
}

func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}

// FromStatus maps an upstream HTTP status code to an error kind.
// The service name only appears in the safe message.
func FromStatus(service string, statusCode int, cause error) error {
	switch {
	case statusCode == http.StatusTooManyRequests:
		return New(KindRateLimit, service+" rate limit exceeded (429). Please try again later.", cause)
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		return New(KindAuth, service+" authentication/authorization failed. Please verify your API key.", cause)
	case statusCode >= http.StatusInternalServerError:
		return New(KindTransient, service+" server error. Please try again later.", cause)
	case statusCode == http.StatusNotFound:
		return New(KindBadRequest, service+" resource not found (404).", cause)
	default:
		return New(KindBadRequest, service+" rejected the request.", cause)
	}
}

// Temporary reports whether retrying the same request later could succeed.
func Temporary(err error) bool {
	kind, ok := KindOf(err)
	return ok && (kind == KindTransient || kind == KindRateLimit)
}
