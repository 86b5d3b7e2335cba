//go:build unit

package middleware_test

import (
	"net/http"
	"testing"

	"storent/internal/handler/middleware"
	"storent/internal/pkg/config"
	"storent/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestRequireDeviceToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/check",
		middleware.RequireDeviceToken(config.RelayConfig{DeviceToken: "relay-secret"}),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	cases := []struct {
		name       string
		headers    map[string]string
		expectCode int
	}{
		{"valid token", map[string]string{"X-Device-Token": "relay-secret"}, http.StatusOK},
		{"wrong token", map[string]string{"X-Device-Token": "guess"}, http.StatusUnauthorized},
		{"missing header", nil, http.StatusUnauthorized},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rec := httptest.PerformRequestWithHeaders(t, router, http.MethodGet, "/check", nil, c.headers)
			assert.Equal(t, c.expectCode, rec.Code)
		})
	}
}
