package reaction

import (
	"fmt"
	"strings"

	"dummy-data/internal/adapters/reaction/dto"
)

type HTTPStatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if strings.TrimSpace(e.Body) == "" {
		return fmt.Sprintf("reaction request failed: %s", e.Status)
	}
	return fmt.Sprintf("reaction request failed: %s: %s", e.Status, e.Body)
}

func newHTTPStatusError(statusCode int, status string, body []byte) error {
	return &HTTPStatusError{
		StatusCode: statusCode,
		Status:     status,
		Body:       strings.TrimSpace(string(body)),
	}
}

// GraphQLErrors reads as the server's messages so they can be shown as-is.
type GraphQLErrors []dto.GraphQLError

func (errs GraphQLErrors) Error() string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		msg := strings.TrimSpace(e.Message)
		if msg == "" {
			continue
		}
		parts = append(parts, msg)
	}
	if len(parts) == 0 {
		return "unknown graphql error"
	}
	return strings.Join(parts, "; ")
}

// Code returns the first extensions.code, if any.
func (errs GraphQLErrors) Code() string {
	for _, e := range errs {
		if code, ok := e.Extensions["code"].(string); ok && code != "" {
			return code
		}
	}
	return ""
}
