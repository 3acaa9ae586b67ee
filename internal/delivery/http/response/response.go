package response

import (
	"github.com/gin-gonic/gin"
	"github.com/sakibmtatva/online-job-portal-be/pkg/apperror"
)

// Response standardizes the API JSON response
type Response struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     *ErrorBody  `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// ErrorBody carries the machine-readable error kind
type ErrorBody struct {
	Kind    apperror.Kind `json:"kind"`
	Details interface{}   `json:"details,omitempty"`
}

func requestID(c *gin.Context) string {
	return c.GetString("RequestID")
}

// Success sends a success response
func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, Response{
		Success:   true,
		Message:   message,
		Data:      data,
		RequestID: requestID(c),
	})
}

// Error sends an error response
func Error(c *gin.Context, code int, kind apperror.Kind, message string, details interface{}) {
	c.JSON(code, Response{
		Success:   false,
		Message:   message,
		Error:     &ErrorBody{Kind: kind, Details: details},
		RequestID: requestID(c),
	})
}

// AppError renders an *apperror.AppError with its own status and kind
func AppError(c *gin.Context, err *apperror.AppError, details interface{}) {
	Error(c, err.Code, err.Kind, err.Message, details)
}
