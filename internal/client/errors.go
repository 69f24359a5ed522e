package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// APIError is a non-2xx response from the ERP backend.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Detail)
}

// IsNotFound reports whether err is a 404 from the backend.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// The backend reports errors as {"detail": "..."}, or as a list of field
// errors for request validation failures.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
	Error  string          `json:"error"`
}

type fieldError struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

func newAPIError(status int, body []byte) *APIError {
	e := &APIError{Status: status, Detail: strings.TrimSpace(string(body))}

	var eb errorBody
	if json.Unmarshal(body, &eb) != nil {
		return e
	}
	if eb.Error != "" {
		e.Detail = eb.Error
		return e
	}

	var msg string
	if json.Unmarshal(eb.Detail, &msg) == nil && msg != "" {
		e.Detail = msg
		return e
	}

	var fields []fieldError
	if json.Unmarshal(eb.Detail, &fields) == nil && len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			loc := make([]string, 0, len(f.Loc))
			for _, l := range f.Loc {
				loc = append(loc, fmt.Sprint(l))
			}
			parts = append(parts, strings.Join(loc, ".")+": "+f.Msg)
		}
		e.Detail = strings.Join(parts, "; ")
	}
	return e
}
