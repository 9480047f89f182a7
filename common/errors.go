package common

import (
	"fmt"
	"net/http"

	"go-fintrack/logger"

	"github.com/sirupsen/logrus"
)

// AppError carries an HTTP status and a user-facing message across the
// handler boundary. The wrapped internal error is logged, never rendered.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Send logs the internal error and renders a minimal error page. Pages with
// richer chrome (the 404 page, form re-renders) are produced by handlers
// before an AppError is ever returned.
func (e *AppError) Send(w http.ResponseWriter) {
	if e.Err != nil {
		logger.Log.WithFields(logrus.Fields{
			"status_code":    e.Code,
			"internal_error": e.Err.Error(),
		}).Error(e.Message)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(e.Code)
	fmt.Fprintf(w, "<!DOCTYPE html><html><head><title>%d</title></head><body><h1>%d</h1><p>%s</p><p><a href=\"/\">Back to dashboard</a></p></body></html>",
		e.Code, e.Code, e.Message)
}
