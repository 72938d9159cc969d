package net

import (
	"context"
	"errors"
	"net/http"

	perr "wikicord/internal/platform/errors"
)

// HTTPStatus maps a project error to http status
// context deadline and cancellation map like a perr Timeout
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if _, ok := perr.As(err); !ok && isContextErr(err) {
		return perr.HTTPStatusCode(perr.ErrorCodeTimeout)
	}
	return perr.HTTPStatus(err)
}

func isContextErr(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}
