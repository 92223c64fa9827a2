package college

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/college-portal/internal/errors"
)

var (
	ErrUnauthorized = apperrors.ErrUnauthorized
	ErrNotFound     = apperrors.ErrNotFound
)

const maxDetailLength = 200

// APIError is returned for any non-2xx backend response
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("college api error: status=%d detail=%s", e.StatusCode, e.Detail)
}

func (e *APIError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	default:
		return apperrors.ErrBackend
	}
}

// newAPIError reads the error body. The backend reports problems under
// "detail" or "error"; anything else is kept as truncated text.
func newAPIError(resp *http.Response) *APIError {
	apiErr := &APIError{StatusCode: resp.StatusCode, Detail: http.StatusText(resp.StatusCode)}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil || len(body) == 0 {
		return apiErr
	}

	var payload map[string]any
	if json.Unmarshal(body, &payload) == nil {
		for _, key := range []string{"detail", "error", "message"} {
			if s, ok := payload[key].(string); ok && s != "" {
				apiErr.Detail = s
				return apiErr
			}
		}
	}

	text := strings.TrimSpace(string(body))
	if len(text) > maxDetailLength {
		text = text[:maxDetailLength]
	}
	apiErr.Detail = text
	return apiErr
}
