package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"radbytes.org/pulse/common/logger"
)

const RequestIDHeader = "X-Request-ID"

// RequestID reuses the caller's request id or mints one, echoes it on the response and
// attaches it to every log line written for the request.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(RequestIDHeader, requestID)

		ctx := logger.WithLogFields(c.Request.Context(), logger.LogFields{
			RequestID: &requestID,
			Component: "pulse.http",
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
