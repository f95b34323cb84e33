package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
)

func TestTracing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	var handlerSpan trace.SpanContext
	r := gin.New()
	r.Use(Tracing(tp))
	r.GET("/libros/:id", func(c *gin.Context) {
		handlerSpan = trace.SpanContextFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})
	r.GET("/boom", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/libros/7", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/boom", nil))

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	assert.Equal(t, "GET /libros/:id", spans[0].Name, "Span名使用路由模板而不是实际路径")
	assert.Equal(t, trace.SpanKindServer, spans[0].SpanKind)
	assert.Equal(t, spans[0].SpanContext.SpanID(), handlerSpan.SpanID(), "请求context应携带服务端Span")
	assert.Equal(t, codes.Unset, spans[0].Status.Code)

	assert.Equal(t, codes.Error, spans[1].Status.Code)
}
