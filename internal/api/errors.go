package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	// ErrNetwork wraps transport failures: the server was never heard from.
	ErrNetwork      = errors.New("network error")
	ErrBadRequest   = errors.New("bad request")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrServer       = errors.New("server error")
)

// Error is a non-2xx response from the backend.
type Error struct {
	Status  int
	Message string
	// Fields holds per-field validation messages, keyed by field name.
	Fields map[string][]string
}

func (e *Error) Error() string {
	if msg := e.firstFieldMessage(); msg != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), msg)
	}
	if e.Message != "" {
		return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
	}
	return fmt.Sprintf("%d %s", e.Status, http.StatusText(e.Status))
}

// Is lets errors.Is match an Error against the status sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrBadRequest:
		return e.Status == http.StatusBadRequest
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized
	case ErrForbidden:
		return e.Status == http.StatusForbidden
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrServer:
		return e.Status >= 500
	}
	return false
}

func (e *Error) firstFieldMessage() string {
	if len(e.Fields) == 0 {
		return ""
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if msgs := e.Fields[name]; len(msgs) > 0 {
			return fmt.Sprintf("%s: %s", name, msgs[0])
		}
	}
	return ""
}

// parseError decodes the backend's error shapes: {"error": ...},
// {"message": ...}, {"detail": ...}, {"non_field_errors": [...]} or a map of
// field name to message list.
func parseError(status int, body []byte) *Error {
	e := &Error{Status: status}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		if text := strings.TrimSpace(string(body)); text != "" && len(text) < 200 && !strings.HasPrefix(text, "<") {
			e.Message = text
		}
		return e
	}

	for _, key := range []string{"error", "message", "detail"} {
		if raw, ok := obj[key]; ok {
			if msgs := decodeMessages(raw); len(msgs) > 0 {
				e.Message = msgs[0]
				break
			}
		}
	}
	if e.Message == "" {
		if msgs := decodeMessages(obj["non_field_errors"]); len(msgs) > 0 {
			e.Message = msgs[0]
		}
	}

	for key, raw := range obj {
		switch key {
		case "error", "message", "detail", "non_field_errors":
			continue
		}
		if msgs := decodeMessages(raw); len(msgs) > 0 {
			if e.Fields == nil {
				e.Fields = make(map[string][]string)
			}
			e.Fields[key] = msgs
		}
	}
	return e
}

func decodeMessages(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return nil
		}
		return []string{s}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	return nil
}

// NetworkMessage is the text shown when the server could not be reached.
const NetworkMessage = "Could not reach the server. Check your connection and try again."

// DisplayMessage turns err into text for the user: a field-specific message
// if the server sent one, then its general message, then fallback. Transport
// failures always show fallback.
func DisplayMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		if msg := apiErr.firstFieldMessage(); msg != "" {
			return msg
		}
		if apiErr.Message != "" {
			return apiErr.Message
		}
	}
	return fallback
}
