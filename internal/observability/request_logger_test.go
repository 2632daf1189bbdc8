package observability

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	metrics := NewMetrics("bedbook")

	app := fiber.New()
	app.Use(RequestLogger(zap.New(core), metrics))
	app.Get("/hospitals/:id", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusTeapot)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/hospitals/7", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTeapot, resp.StatusCode)

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/hospitals/7", fields["path"])
	assert.Equal(t, "/hospitals/:id", fields["route"])
	assert.Equal(t, int64(fiber.StatusTeapot), fields["status"])

	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.requests.WithLabelValues("/hospitals/:id", "GET", "418")))
}
