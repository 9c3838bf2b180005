// internal/utils/response.go
package utils

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// APIResponse represents standard API response structure
type APIResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     *APIError   `json:"error,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"`
}

// APIError represents error information
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func newResponse(c *gin.Context, message string, data interface{}, apiError *APIError) APIResponse {
	return APIResponse{
		Success:   apiError == nil,
		Message:   message,
		Data:      data,
		Error:     apiError,
		Timestamp: time.Now(),
		RequestID: c.GetString("request_id"),
	}
}

// SuccessResponse sends a successful response
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, newResponse(c, message, data, nil))
}

// ErrorResponse sends an error response with a code derived from the
// status.
func ErrorResponse(c *gin.Context, statusCode int, message string, err error) {
	ErrorResponseWithData(c, statusCode, getErrorCode(statusCode), message, err, nil)
}

// ErrorResponseWithCode sends an error response with an explicit code
func ErrorResponseWithCode(c *gin.Context, statusCode int, code, message string, err error) {
	ErrorResponseWithData(c, statusCode, code, message, err, nil)
}

// ErrorResponseWithData sends an error response that also carries a partial
// result, such as the writes completed before a failure.
func ErrorResponseWithData(c *gin.Context, statusCode int, code, message string, err error, data interface{}) {
	apiError := &APIError{Code: code, Message: message}
	if err != nil {
		apiError.Details = err.Error()
	}
	c.JSON(statusCode, newResponse(c, message, data, apiError))
}

// BindingErrorResponse answers a failed request bind. Validation failures
// list the offending fields; malformed bodies get a plain BAD_REQUEST.
func BindingErrorResponse(c *gin.Context, message string, err error) {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		ErrorResponse(c, http.StatusBadRequest, message, err)
		return
	}

	fields := make(map[string]string, len(validationErrors))
	for _, fieldError := range validationErrors {
		fields[strings.ToLower(fieldError.Field())] = describeFieldError(fieldError)
	}
	ValidationErrorResponse(c, message, fields)
}

// ValidationErrorResponse sends validation error response
func ValidationErrorResponse(c *gin.Context, message string, fields map[string]string) {
	apiError := &APIError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
	c.JSON(http.StatusBadRequest, newResponse(c, message, gin.H{"validation_errors": fields}, apiError))
}

func describeFieldError(fieldError validator.FieldError) string {
	switch fieldError.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fieldError.Param()
	case "max":
		return "must be at most " + fieldError.Param()
	default:
		return "failed " + fieldError.Tag() + " validation"
	}
}

// getErrorCode returns error code based on HTTP status
func getErrorCode(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return "BAD_REQUEST"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusInternalServerError:
		return "INTERNAL_SERVER_ERROR"
	case http.StatusBadGateway:
		return "BAD_GATEWAY"
	case http.StatusServiceUnavailable:
		return "SERVICE_UNAVAILABLE"
	default:
		return "UNKNOWN_ERROR"
	}
}
