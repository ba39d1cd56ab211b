package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"helpdesk/internal/shared/errors"
	"helpdesk/internal/shared/logger"
)

// APIResponse represents a standard API response structure
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorInfo represents error information in API response
type ErrorInfo struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ListResponse represents a paginated list response
type ListResponse struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// SuccessResponse sends a successful response with custom status code
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// CreatedResponse sends a created response
func CreatedResponse(c *gin.Context, data interface{}, message ...string) {
	response := APIResponse{
		Success: true,
		Data:    data,
	}

	if len(message) > 0 {
		response.Message = message[0]
	} else {
		response.Message = "Resource created successfully"
	}

	c.JSON(http.StatusCreated, response)
}

// ErrorResponse sends an error response with a custom status code.
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Type:    errorTypeForStatus(statusCode),
			Message: message,
		},
	})
}

func errorTypeForStatus(statusCode int) string {
	switch statusCode {
	case http.StatusBadRequest:
		return string(errors.ErrorTypeValidation)
	case http.StatusUnauthorized:
		return string(errors.ErrorTypeUnauthorized)
	case http.StatusForbidden:
		return string(errors.ErrorTypeForbidden)
	case http.StatusNotFound:
		return string(errors.ErrorTypeNotFound)
	case http.StatusServiceUnavailable:
		return string(errors.ErrorTypeDatabase)
	default:
		return string(errors.ErrorTypeInternal)
	}
}

// ErrorResponseWithError maps an error to a stable error-kind response.
// AppError details and raw store errors stay in server-side logs only.
func ErrorResponseWithError(c *gin.Context, err error) {
	err = ValidationErrorToAppError(err)

	if appErr := errors.GetAppError(err); appErr != nil {
		if appErr.Details != "" {
			logger.NewLogger().Warnw("request failed",
				"type", string(appErr.Type),
				"details", appErr.Details,
				"path", c.FullPath(),
			)
		}
		c.JSON(appErr.Code, APIResponse{
			Success: false,
			Error: &ErrorInfo{
				Type:    string(appErr.Type),
				Message: appErr.Message,
			},
		})
		return
	}

	logger.NewLogger().Errorw("unhandled error", "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, APIResponse{
		Success: false,
		Error: &ErrorInfo{
			Type:    string(errors.ErrorTypeInternal),
			Message: "An unexpected error occurred",
		},
	})
}
