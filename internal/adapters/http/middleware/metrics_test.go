package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Metrics())
	router.GET("/file.txt", func(c *gin.Context) {
		c.String(200, "content")
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "200"))

	req := httptest.NewRequest(http.MethodGet, "/file.txt", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "200"))
	assert.Equal(t, before+1, after)
}

func TestMetrics_SkipsMetricsEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(Metrics())
	router.GET("/metrics", func(c *gin.Context) {
		c.String(200, "prom")
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "200"))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(httptest.NewRecorder(), req)

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "200"))
	assert.Equal(t, before, after)
}

func TestRecordFileServed(t *testing.T) {
	servedBefore := testutil.ToFloat64(FilesServedTotal.WithLabelValues("served"))
	bytesBefore := testutil.ToFloat64(FileBytesSent)

	RecordFileServed("served", 1024)

	assert.Equal(t, servedBefore+1, testutil.ToFloat64(FilesServedTotal.WithLabelValues("served")))
	assert.Equal(t, bytesBefore+1024, testutil.ToFloat64(FileBytesSent))
}

func TestRecordFileServed_NoBytesForErrors(t *testing.T) {
	bytesBefore := testutil.ToFloat64(FileBytesSent)

	RecordFileServed("not_found", 0)

	assert.Equal(t, bytesBefore, testutil.ToFloat64(FileBytesSent))
}
