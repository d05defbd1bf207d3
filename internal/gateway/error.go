package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// RequestError is the uniform error shape every gateway operation
// fails with. Views display Message or Errors and never branch on
// Status. Status is 0 for transport failures that produced no response.
type RequestError struct {
	Message string
	Errors  []string
	Status  int
}

func (e *RequestError) Error() string {
	return e.Message
}

func (e *RequestError) NotFound() bool {
	return e.Status == http.StatusNotFound
}

// apiError is the structured 4xx body of the order API.
type apiError struct {
	Status int      `json:"status"`
	Errors []string `json:"errors"`
}

func transportError(err error) *RequestError {
	msg := fmt.Sprintf("request failed: %v", err)
	return &RequestError{Message: msg, Errors: []string{msg}}
}

func contractError(message string) *RequestError {
	return &RequestError{Message: message, Errors: []string{message}}
}

// statusError maps an HTTP failure response to a RequestError
// according to the gateway error policy:
// 400 with a structured errors array surfaces those messages, 404 is
// "order not found", 5xx is a generic retry-later message, anything
// else uses an API-supplied errors list when present.
func statusError(status int, body []byte) *RequestError {
	var parsed apiError
	hasErrors := json.Unmarshal(body, &parsed) == nil && len(parsed.Errors) > 0

	switch {
	case status == http.StatusBadRequest && hasErrors:
		return &RequestError{
			Message: strings.Join(parsed.Errors, "; "),
			Errors:  parsed.Errors,
			Status:  status,
		}
	case status == http.StatusNotFound:
		return &RequestError{
			Message: "order not found",
			Errors:  []string{"order not found"},
			Status:  status,
		}
	case status >= http.StatusInternalServerError:
		msg := "server error, try again later"
		return &RequestError{Message: msg, Errors: []string{msg}, Status: status}
	case hasErrors:
		return &RequestError{
			Message: strings.Join(parsed.Errors, "; "),
			Errors:  parsed.Errors,
			Status:  status,
		}
	default:
		msg := fmt.Sprintf("unexpected status %d", status)
		return &RequestError{Message: msg, Errors: []string{msg}, Status: status}
	}
}
