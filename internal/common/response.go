package common

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// ErrorBody is the error part of the response envelope
type ErrorBody struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Success bool      `json:"success"`
	Error   ErrorBody `json:"error"`
}

// MessageResponse is the body of command endpoints without a payload
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{Error: ErrorBody{Code: code, Message: message, Details: details}}
}

// SendSuccess writes a {success, message} body
func SendSuccess(c echo.Context, message string) error {
	return c.JSON(http.StatusOK, MessageResponse{Success: true, Message: message})
}

// HTTPErrorHandler converts every error returned by a handler into the envelope
func HTTPErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := classify(err)
		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Error(err))
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			log.Error("failed to write error response", zap.Error(writeErr))
		}
	}
}

func classify(err error) (int, *ErrorResponse) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		message := appErr.Message
		if appErr.Kind == KindInternal {
			message = http.StatusText(http.StatusInternalServerError)
		}
		return appErr.Status(), CreateErrorResponse(string(appErr.Kind), message, appErr.Details)
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		message := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
		return he.Code, CreateErrorResponse(codeForStatus(he.Code), message, nil)
	}

	return http.StatusInternalServerError, CreateErrorResponse(string(KindInternal), http.StatusText(http.StatusInternalServerError), nil)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return string(KindNotFound)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return string(KindValidation)
	case http.StatusConflict:
		return string(KindConflict)
	case http.StatusUnauthorized:
		return string(KindUnauthorized)
	case http.StatusForbidden:
		return string(KindForbidden)
	case http.StatusServiceUnavailable:
		return string(KindUpstream)
	case http.StatusTooManyRequests:
		return string(KindRateLimited)
	default:
		if status >= http.StatusInternalServerError {
			return string(KindInternal)
		}
		return "CLIENT_ERROR"
	}
}
