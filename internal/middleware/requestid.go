package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const requestIDKey = "request_id"

// RequestIDHeader is the response header carrying the request correlation id.
const RequestIDHeader = "X-Request-ID"

// WithRequestID assigns a correlation id to each request. An incoming
// X-Request-ID is honored so ids survive proxies; otherwise a fresh UUID
// is generated.
func WithRequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// RequestID returns the correlation id for the current request, if any.
func RequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
