package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MOHAMMEDJAFRAN/clinical-site-sub000/monitoring"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPrometheusUsesRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(PrometheusMetrics())
	r.GET("/api/doctors/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	counter := monitoring.RequestsTotal.WithLabelValues("GET", "/api/doctors/:id", "No Content")
	before := testutil.ToFloat64(counter)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/doctors/7", nil))

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestErrorHandlerLogsAttachedErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.ErrorLevel)

	r := gin.New()
	r.Use(ErrorHandler(zap.New(core)))
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("database unreachable"))
		c.Status(http.StatusInternalServerError)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "/boom", entries[0].ContextMap()["path"])
		assert.Equal(t, int64(500), entries[0].ContextMap()["status"])
	}
}

func TestSafeHeadersFiltersCredentials(t *testing.T) {
	h := http.Header{}
	h.Set("Authorization", "Bearer abc")
	h.Set("Accept", "application/json")

	safe := safeHeaders(h)
	assert.Equal(t, "[FILTERED]", safe["Authorization"])
	assert.Equal(t, []string{"application/json"}, safe["Accept"])
}
