package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrSessionExpired is returned when a 401 could not be recovered by a token
// refresh. The token store has been cleared by the time callers see it.
var ErrSessionExpired = errors.New("session expired; please log in again")

// APIError is a non-2xx response from the LexiBel API.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("lexibel api: %d %s", e.Status, e.Detail)
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// errorFromResponse drains the body and builds an APIError. The API reports
// errors as {"detail": ...} where detail is a string or a structured object;
// anything else falls back to the HTTP status text.
func errorFromResponse(resp *http.Response) *APIError {
	defer resp.Body.Close()
	detail := http.StatusText(resp.StatusCode)

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && len(body) > 0 {
		var envelope struct {
			Detail json.RawMessage `json:"detail"`
		}
		if json.Unmarshal(body, &envelope) == nil && len(envelope.Detail) > 0 {
			var s string
			if json.Unmarshal(envelope.Detail, &s) == nil {
				detail = s
			} else {
				detail = string(envelope.Detail)
			}
		}
	}

	return &APIError{Status: resp.StatusCode, Detail: detail}
}
