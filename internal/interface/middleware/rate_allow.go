package middleware

import (
	"net"

	"github.com/gin-gonic/gin"
)

// AllowFunc returns true to let a request bypass the limiter.
type AllowFunc func(*gin.Context) bool

// AllowPrivateIP bypasses the limiter for loopback and private addresses.
// Used in development so local tooling is not throttled.
func AllowPrivateIP() AllowFunc {
	return func(c *gin.Context) bool {
		parsed := net.ParseIP(ipFromCtx(c))
		if parsed == nil {
			return false
		}
		return parsed.IsLoopback() || parsed.IsPrivate()
	}
}
