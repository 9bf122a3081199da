// Package identity extracts the caller's identity from requests.
// Authentication happens upstream; callers arrive with their numeric id
// already resolved in the X-Sharer-User-Id header.
package identity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Header carries the pre-resolved numeric id of the caller.
const Header = "X-Sharer-User-Id"

const contextKey = "callerID"

// Required is a Gin middleware that rejects requests without a valid
// X-Sharer-User-Id header.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(Header)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "missing " + Header + " header",
			})
			return
		}

		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": "invalid " + Header + " header",
			})
			return
		}

		c.Set(contextKey, id)
		c.Next()
	}
}

// CallerID returns the caller's id set by Required, or 0 if absent.
func CallerID(c *gin.Context) int64 {
	if v, ok := c.Get(contextKey); ok {
		if id, ok := v.(int64); ok {
			return id
		}
	}
	return 0
}
