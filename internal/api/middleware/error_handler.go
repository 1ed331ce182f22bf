package middleware

import (
	stderrors "errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Lorak9904/RhetorAI/internal/api/errors"
	"github.com/Lorak9904/RhetorAI/internal/app/common"
)

// ErrorHandler recovers handler panics and writes them as APIError JSON.
// Anything that is not an *APIError is logged and reported as a bare 500.
func ErrorHandler(logger *zap.Logger) gin.HandlerFunc {
	logger = common.OrNop(logger)

	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		if apiErr, ok := recovered.(*errors.APIError); ok {
			writeError(c, apiErr)
			return
		}

		fields := []zap.Field{
			zap.String("request_id", GetRequestID(c)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
		}
		if err, ok := recovered.(error); ok {
			fields = append(fields, zap.Error(err))
		} else {
			fields = append(fields, zap.Any("recovered", recovered))
		}
		logger.Error("Unhandled error", fields...)

		writeError(c, errors.NewInternalError("Internal server error"))
	})
}

// HandleError writes err if it is (or wraps) an *APIError. Other errors are
// re-panicked for ErrorHandler so their text never reaches the client.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var apiErr *errors.APIError
	if stderrors.As(err, &apiErr) {
		writeError(c, apiErr)
		return
	}
	panic(err)
}

func writeError(c *gin.Context, apiErr *errors.APIError) {
	apiErr.RequestID = GetRequestID(c)
	c.AbortWithStatusJSON(apiErr.HTTPStatus(), apiErr)
}
