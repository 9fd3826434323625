package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophprofile/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	userIDKey    = "userID"
	requestIDKey = "requestID"
)

// requestID echoes the caller's X-Request-ID, or mints one.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(common.RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(common.RequestIDHeader, id)
		c.Next()
	}
}

func (s *Server) accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		s.logger.Info(c.Request.Context(), "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"request_id", c.GetString(requestIDKey),
		)
	}
}

// authenticate requires a valid bearer token and stores its user ID under
// userIDKey.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := common.BearerToken(c.GetHeader(common.AuthorizationHeader))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				response{Code: CodeUnauthorized, Message: "Missing or invalid authorization header."})
			return
		}

		userID, err := s.users.UserIDFromToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				response{Code: CodeUnauthorized, Message: tokenErrorMessage(err)})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}
