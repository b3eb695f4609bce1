package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// RequestIDHeader carries the request identifier on the wire.
	RequestIDHeader = "X-Request-ID"

	// RequestIDKey is the gin.Context key the identifier is stored under, so
	// the request logger and handlers can read it without touching headers.
	RequestIDKey = "request_id"
)

// RequestIDMiddleware tags every request with an identifier. An inbound
// X-Request-ID (from a reverse proxy or the frontend) is kept as-is;
// otherwise a fresh UUID v4 is generated. The ID is stored on the context
// under RequestIDKey and echoed in the response header, which is what lets a
// browser error report be matched to the server-side log line.
//
// Register it before the logging middleware so every log entry carries the ID.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(RequestIDKey, id)
		c.Header(RequestIDHeader, id)

		c.Next()
	}
}
