package clerk

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/tailscale-portfolio/clerkcli/internal/identity"
)

// APIError is a non-2xx response from the Clerk Backend API.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("clerk: status %d", e.StatusCode)
	if e.Code != "" {
		msg += " " + e.Code
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// errorBody is Clerk's error envelope.
type errorBody struct {
	Errors []struct {
		Message     string `json:"message"`
		LongMessage string `json:"long_message"`
		Code        string `json:"code"`
	} `json:"errors"`
}

func newAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		first := parsed.Errors[0]
		apiErr.Code = first.Code
		apiErr.Message = first.LongMessage
		if apiErr.Message == "" {
			apiErr.Message = first.Message
		}
	} else {
		apiErr.Message = strings.TrimSpace(string(body))
	}

	if status == http.StatusNotFound {
		apiErr.Err = identity.ErrNotFound
	}
	return apiErr
}
