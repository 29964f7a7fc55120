package portalsdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// APIError is a non-success response of the service.
type APIError struct {
	StatusCode  int
	Code        string
	Description string

	// Fields is set for validation failures (422).
	Fields map[string]string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Description)
}

// IsForbidden reports whether err is a policy denial.
func IsForbidden(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.StatusCode == http.StatusForbidden
}

func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if resp.StatusCode == http.StatusForbidden {
		return &APIError{StatusCode: resp.StatusCode, Code: "forbidden"}
	}

	var valErr ValidationErrorResponse
	if err := json.Unmarshal(body, &valErr); err == nil && valErr.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        valErr.Error,
			Description: valErr.ErrorDescription,
			Fields:      valErr.Fields,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        "http_error",
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
