package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error kinds. Match them with errors.Is.
var (
	ErrTimeout        = errors.New("request timed out")
	ErrNetwork        = errors.New("network error")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrMalformedToken = errors.New("malformed token")
	ErrValidation     = errors.New("request rejected")
	ErrServer         = errors.New("server error")
)

// Error is returned by every Client call that fails. Kind is one of the
// sentinels above; Status is 0 when no response was received.
type Error struct {
	Kind    error
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.Error())
	if e.Status != 0 {
		fmt.Fprintf(&b, " (%d)", e.Status)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the kind. A malformed token also counts as unauthorized.
func (e *Error) Is(target error) bool {
	if target == e.Kind {
		return true
	}
	return e.Kind == ErrMalformedToken && target == ErrUnauthorized
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// MessageOf returns the server-provided message carried by err, or "".
func MessageOf(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return ""
}

func kindForStatus(status int) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status >= http.StatusInternalServerError:
		return ErrServer
	default:
		return ErrValidation
	}
}

const maxMessageLen = 200

// messageFrom pulls a human message out of an error body: a JSON "message"
// or "error" field, or a short plain-text body.
func messageFrom(body []byte) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		return payload.Error
	}
	if strings.HasPrefix(text, "<") || len(text) > maxMessageLen {
		return ""
	}
	return text
}
