package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnauthorized marks a 401 response. Callers match it with errors.Is to
// force a sign-out instead of showing the message inline.
var ErrUnauthorized = errors.New("api: unauthorized")

// Error is any failed request, transport or HTTP. Status is zero when no
// response was received. Message is always human-readable and safe to show.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func (e *Error) Unwrap() error {
	if e.Status == 401 {
		return ErrUnauthorized
	}
	return nil
}

const genericMessage = "Something went wrong. Please try again."

var statusMessages = map[int]string{
	400: "The request could not be processed.",
	401: "Your session has expired. Please sign in again.",
	403: "You do not have permission to perform this action.",
	404: "The requested record could not be found.",
	409: "This change conflicts with the current state of the record.",
	422: "Some fields failed validation. Please review and try again.",
	500: "The server encountered an internal error.",
	502: "The server is temporarily unreachable.",
	503: "The service is temporarily unavailable. Please try again shortly.",
}

// extractMessage picks the message shown for a failed request. Preference
// order: a "message" field in the body, an "error" field, a plain-string
// body, the fixed per-status message, the transport's own text, then the
// generic fallback. It tolerates any body shape without panicking.
func extractMessage(status int, body []byte, transport string) string {
	if m := bodyMessage(body); m != "" {
		return m
	}
	if m, ok := statusMessages[status]; ok {
		return m
	}
	if transport != "" {
		return transport
	}
	return genericMessage
}

func bodyMessage(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}

	var payload map[string]any
	if err := json.Unmarshal(trimmed, &payload); err == nil {
		if m, ok := payload["message"].(string); ok && m != "" {
			return m
		}
		if m, ok := payload["error"].(string); ok && m != "" {
			return m
		}
		return ""
	}

	var s string
	if err := json.Unmarshal(trimmed, &s); err == nil {
		return s
	}

	// Raw text bodies count as plain-string messages, but markup from
	// proxies or error pages is never shown to a person.
	switch trimmed[0] {
	case '<', '{', '[':
		return ""
	}
	return string(trimmed)
}
