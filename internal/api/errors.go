// Package api implements the HTTP gateway to the SEOScribe service.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a gateway failure for status-specific handling.
type Kind int

const (
	// KindGeneric covers any non-2xx status or network failure not listed below.
	KindGeneric Kind = iota
	// KindTimeout is a cancelled round-trip past its deadline (surfaced as 408).
	KindTimeout
	// KindUnauthorized is an HTTP 401; the session should re-authenticate.
	KindUnauthorized
	// KindQuotaExceeded is an HTTP 429 rate/quota rejection.
	KindQuotaExceeded
	// KindNotFound is an HTTP 404.
	KindNotFound
	// KindInvalidResponse is a success response whose declared-JSON body
	// cannot be decoded.
	KindInvalidResponse
)

// Error is a structured gateway failure carrying the HTTP status and the
// decoded error payload when the server supplied one.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Data    map[string]any
}

// Error returns the server-supplied message when available.
func (e *Error) Error() string {
	return e.Message
}

// kindForStatus maps an HTTP status to an error kind.
func kindForStatus(status int) Kind {
	switch status {
	case http.StatusRequestTimeout:
		return KindTimeout
	case http.StatusUnauthorized:
		return KindUnauthorized
	case http.StatusTooManyRequests:
		return KindQuotaExceeded
	case http.StatusNotFound:
		return KindNotFound
	default:
		return KindGeneric
	}
}

// newHTTPError builds an Error from a non-success response body. The message
// prefers the decoded payload's error/message field, then the raw text.
func newHTTPError(status int, body []byte) *Error {
	e := &Error{
		Kind:   kindForStatus(status),
		Status: status,
	}

	text := strings.TrimSpace(string(body))
	var data map[string]any
	if text != "" {
		if err := json.Unmarshal(body, &data); err != nil {
			data = nil
		}
	}
	e.Data = data

	switch {
	case data != nil && stringField(data, "error") != "":
		e.Message = stringField(data, "error")
	case data != nil && stringField(data, "message") != "":
		e.Message = stringField(data, "message")
	case text != "":
		e.Message = text
	default:
		e.Message = fmt.Sprintf("HTTP %d", status)
	}

	if e.Data == nil {
		msg := text
		if msg == "" {
			msg = "Request failed"
		}
		e.Data = map[string]any{"error": msg}
	}

	return e
}

func newTimeoutError() *Error {
	return &Error{
		Kind:    KindTimeout,
		Status:  http.StatusRequestTimeout,
		Message: "Request timed out. Please try again.",
	}
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

// IsTimeout reports whether err is a gateway timeout.
func IsTimeout(err error) bool { return hasKind(err, KindTimeout) }

// IsUnauthorized reports whether err is an HTTP 401.
func IsUnauthorized(err error) bool { return hasKind(err, KindUnauthorized) }

// IsQuotaExceeded reports whether err is an HTTP 429.
func IsQuotaExceeded(err error) bool { return hasKind(err, KindQuotaExceeded) }

// IsNotFound reports whether err is an HTTP 404.
func IsNotFound(err error) bool { return hasKind(err, KindNotFound) }

func hasKind(err error, kind Kind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}
