package middleware

import (
	"crypto/subtle"
	"net/http"

	"storent/internal/pkg/config"

	"github.com/gin-gonic/gin"
)

const deviceTokenHeader = "X-Device-Token"

// RequireDeviceToken guards the relay-controller endpoint. Controllers are
// provisioned with a static token; JWT auth does not apply to them.
func RequireDeviceToken(cfg config.RelayConfig) gin.HandlerFunc {
	expected := []byte(cfg.DeviceToken)

	return func(c *gin.Context) {
		got := []byte(c.GetHeader(deviceTokenHeader))
		if len(got) == 0 || subtle.ConstantTimeCompare(got, expected) != 1 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid device token",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
