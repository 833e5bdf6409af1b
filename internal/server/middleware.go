package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ctxUserID = "userID"

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// authRequired validates the bearer token and stashes the user id on
// the request context. No database hit on the hot path.
func (s *Server) authRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "No authentication token, access denied",
			})
			return
		}
		userID, err := s.auth.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "Token is not valid",
			})
			return
		}
		c.Set(ctxUserID, userID)
		c.Next()
	}
}

// adminRequired loads the user and checks it against the configured
// admin address. A one-entry allow-list, not a role system.
func (s *Server) adminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "No authentication token, access denied",
			})
			return
		}
		user, err := s.auth.UserFromToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false, "message": "Token is not valid",
			})
			return
		}
		if !strings.EqualFold(user.Email, s.cfg.AdminEmail) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false, "message": "Access denied. Admin privileges required.",
			})
			return
		}
		c.Set(ctxUserID, user.ID)
		c.Next()
	}
}

func userID(c *gin.Context) uuid.UUID {
	id, _ := c.Get(ctxUserID)
	userID, _ := id.(uuid.UUID)
	return userID
}

// measured records request count and latency per route.
func (s *Server) measured() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		handler := c.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		s.metrics.Requests.WithLabelValues(handler, strconv.Itoa(c.Writer.Status())).Inc()
		s.metrics.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Milliseconds()))
	}
}
