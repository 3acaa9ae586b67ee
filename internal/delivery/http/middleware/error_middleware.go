package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sakibmtatva/online-job-portal-be/internal/delivery/http/response"
	"github.com/sakibmtatva/online-job-portal-be/pkg/apperror"
	"github.com/sakibmtatva/online-job-portal-be/pkg/logger"
	"github.com/sakibmtatva/online-job-portal-be/pkg/validation"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err

		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			response.Error(c, http.StatusBadRequest, apperror.KindValidation, "Validation failed", validation.FormatValidationErrors(err))
			return
		}

		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			if appErr.Kind == apperror.KindInternal || appErr.Kind == apperror.KindUpstream {
				logger.Log.Error("request failed",
					"request_id", c.GetString("RequestID"),
					"path", c.FullPath(),
					"kind", appErr.Kind,
					"error", appErr.Err,
				)
			}
			response.AppError(c, appErr, nil)
			return
		}

		// Never expose internal error details to clients
		logger.Log.Error("unhandled error",
			"request_id", c.GetString("RequestID"),
			"path", c.FullPath(),
			"error", err,
		)
		response.AppError(c, apperror.Internal(err), nil)
	}
}
