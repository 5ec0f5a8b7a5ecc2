package sdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/comanda-pos/sdk-go/headers"
)

// APIError captures a non-success response from the POS backend.
type APIError struct {
	Status    int
	Detail    string
	RequestID string
	Fields    []FieldError
}

// FieldError is one entry of a request validation failure.
type FieldError struct {
	Loc     []any  `json:"loc"`
	Message string `json:"msg"`
	Type    string `json:"type"`
}

// Error implements the error interface.
func (e APIError) Error() string {
	detail := e.Detail
	if detail == "" {
		detail = http.StatusText(e.Status)
	}
	return fmt.Sprintf("sdk: http %d: %s", e.Status, detail)
}

// IsUnauthorized reports whether err is an APIError with status 401, i.e. a
// request the transport could not resolve by refreshing.
func IsUnauthorized(err error) bool {
	var apiErr APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// decodeAPIError parses the backend's error envelope: {"detail": "..."} for
// plain failures, {"detail": [{loc, msg, type}, ...]} for validation ones.
func decodeAPIError(resp *http.Response) error {
	data, _ := io.ReadAll(resp.Body)
	apiErr := APIError{
		Status:    resp.StatusCode,
		RequestID: resp.Header.Get(headers.RequestID),
	}
	if len(data) == 0 {
		apiErr.Detail = resp.Status
		return apiErr
	}
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil || len(envelope.Detail) == 0 {
		apiErr.Detail = strings.TrimSpace(string(data))
		return apiErr
	}
	var detail string
	if json.Unmarshal(envelope.Detail, &detail) == nil {
		apiErr.Detail = detail
		return apiErr
	}
	var fields []FieldError
	if json.Unmarshal(envelope.Detail, &fields) == nil {
		apiErr.Fields = fields
		if len(fields) > 0 {
			apiErr.Detail = fields[0].Message
		}
		return apiErr
	}
	apiErr.Detail = strings.TrimSpace(string(envelope.Detail))
	return apiErr
}
