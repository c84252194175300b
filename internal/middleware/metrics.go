package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Requests *prometheus.CounterVec
	Errors   prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "workbridge_requests_total",
			Help: "Total number of HTTP requests by method and status.",
		}, []string{"method", "status"}),
		Errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "workbridge_errors_total",
			Help: "Total number of 5xx HTTP responses.",
		}),
	}
	reg.MustRegister(m.Requests, m.Errors)
	return m
}

func (m *Metrics) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		status := c.Writer.Status()
		m.Requests.WithLabelValues(c.Request.Method, strconv.Itoa(status)).Inc()
		if status >= 500 {
			m.Errors.Inc()
		}
	}
}
