package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/live-collection/models"
	"github.com/go-resty/resty/v2"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusForbidden:           ErrForbidden,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusBadGateway:          ErrBadGateway,
}

// mapHTTPError converts a non-2xx response into an error wrapping the
// sentinel for its status. Statuses without a sentinel become "http <code>".
func mapHTTPError(resp *resty.Response) error {
	if isSuccess(resp) {
		return nil
	}

	detail := responseDetail(resp)
	if sentinel, ok := statusErrors[resp.StatusCode()]; ok {
		return fmt.Errorf("%w: %s", sentinel, detail)
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), detail)
}

// responseDetail prefers the first server-reported error of a JSON:API
// error document, then the raw body, then the status text.
func responseDetail(resp *resty.Response) string {
	body := resp.Body()

	var doc struct {
		Errors []models.ServerError `json:"errors"`
	}
	if json.Unmarshal(body, &doc) == nil && len(doc.Errors) > 0 {
		return doc.Errors[0].Error()
	}

	if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		return trimmed
	}
	return http.StatusText(resp.StatusCode())
}
