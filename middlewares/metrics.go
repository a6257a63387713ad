package middlewares

import (
	"strconv"
	"time"

	"github.com/Kariqs/amexan-commerce/metrics"
	"github.com/gin-gonic/gin"
)

func Metrics(m *metrics.ServerMetrics) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		handler := ctx.FullPath()
		if handler == "" {
			handler = "unmatched"
		}
		m.Requests.WithLabelValues(handler, ctx.Request.Method, strconv.Itoa(ctx.Writer.Status())).Inc()
		m.LatencyMS.WithLabelValues(handler).Observe(float64(time.Since(start).Microseconds()) / 1000)
	}
}
