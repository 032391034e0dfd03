// Package errs maps service errors onto the JSON error bodies the HTTP
// surface returns. Wire it up once with httpx.SetErrorHandlerCtx(Handle).
package errs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

type CodeError struct {
	status int
	msg    string
}

func (e *CodeError) Error() string {
	return e.msg
}

func (e *CodeError) Status() int {
	return e.status
}

func New(status int, format string, args ...interface{}) *CodeError {
	return &CodeError{status: status, msg: fmt.Sprintf(format, args...)}
}

func BadRequest(format string, args ...interface{}) *CodeError {
	return New(http.StatusBadRequest, format, args...)
}

func Internal(format string, args ...interface{}) *CodeError {
	return New(http.StatusInternalServerError, format, args...)
}

type ErrorBody struct {
	Error string `json:"error"`
}

// Handle is the go-zero error handler: CodeError keeps its status, anything
// else becomes a 500. The body is always {"error": "..."}.
func Handle(_ context.Context, err error) (int, any) {
	var ce *CodeError
	if errors.As(err, &ce) {
		return ce.Status(), ErrorBody{Error: ce.Error()}
	}
	return http.StatusInternalServerError, ErrorBody{Error: err.Error()}
}
