package net

import (
	"net/http"

	perr "wikicord/internal/platform/errors"
)

// Wire is a common envelope used by transports
type Wire struct {
	StatusCode int            `json:"status_code"`
	Status     string         `json:"status"`
	Code       perr.ErrorCode `json:"code,omitempty"`
	Error      string         `json:"error,omitempty"`
	RequestID  string         `json:"request_id,omitempty"`
	Data       any            `json:"data,omitempty"`
}

// OK builds a 200 envelope
func OK(data any, reqID string) (int, Wire) {
	return http.StatusOK, Wire{
		StatusCode: http.StatusOK,
		Status:     http.StatusText(http.StatusOK),
		RequestID:  reqID,
		Data:       data,
	}
}

// Error builds an error envelope
func Error(err error, reqID string) (int, Wire) {
	if err == nil {
		return OK(nil, reqID)
	}
	status := HTTPStatus(err)
	w := perr.WireFrom(err)
	return status, Wire{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       w.Code,
		Error:      w.Message,
		RequestID:  reqID,
	}
}

// Text builds a plain-text rejection: the status and a single-line body
// foreign errors never leak their message; they read as the status text
func Text(err error) (int, string) {
	if err == nil {
		return http.StatusOK, ""
	}
	status := HTTPStatus(err)
	if e, ok := perr.As(err); ok && e.Message() != "" {
		return status, e.Message()
	}
	if isContextErr(err) {
		return status, "request timed out"
	}
	return status, http.StatusText(status)
}
