package common

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// CreateErrorResponse creates a standardized error response
func CreateErrorResponse(code string, message string, details map[string]string) *ErrorResponse {
	var resp ErrorResponse
	resp.Error.Code = code
	resp.Error.Message = message
	resp.Error.Details = details
	return &resp
}

// SendValidationError sends a validation error response
func SendValidationError(c echo.Context, field, message string) error {
	details := map[string]string{
		field: message,
	}
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("VALIDATION_ERROR", "Validation failed", details))
}

// SendClientError sends a client error response
func SendClientError(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, CreateErrorResponse("CLIENT_ERROR", message, nil))
}

// SendServerError sends a server error response
func SendServerError(c echo.Context, message string) error {
	return c.JSON(http.StatusInternalServerError, CreateErrorResponse("SERVER_ERROR", message, nil))
}

// SendUnavailableError sends a service unavailable response
func SendUnavailableError(c echo.Context, message string) error {
	return c.JSON(http.StatusServiceUnavailable, CreateErrorResponse("SERVICE_UNAVAILABLE", message, nil))
}

// ErrorStatus maps a service error to an HTTP status and a client-safe message.
func ErrorStatus(err error) (int, string) {
	var queryErr *QueryError
	switch {
	case errors.Is(err, ErrServiceUnavailable):
		return http.StatusServiceUnavailable, ErrServiceUnavailable.Error()
	case errors.Is(err, ErrInvalidCriteria):
		return http.StatusBadRequest, err.Error()
	case errors.As(err, &queryErr) && queryErr.BadInput():
		return http.StatusBadRequest, "search criteria rejected by the database"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// SendError writes the standardized JSON body for a service error.
func SendError(c echo.Context, err error) error {
	var paramErr *ParamError
	if errors.As(err, &paramErr) {
		return SendValidationError(c, paramErr.Param, paramErr.Reason)
	}
	status, message := ErrorStatus(err)
	switch status {
	case http.StatusServiceUnavailable:
		return SendUnavailableError(c, message)
	case http.StatusBadRequest:
		return SendClientError(c, message)
	default:
		return SendServerError(c, message)
	}
}
