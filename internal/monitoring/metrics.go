package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics 监控指标
type Metrics struct {
	// HTTP 请求指标
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPRequestSize     *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// 记录指标
	RecordsCreated prometheus.Counter
	RecordsUpdated prometheus.Counter

	// 验证指标（按失败规则区分）
	ValidationFailures *prometheus.CounterVec

	// 错误指标
	ErrorsTotal *prometheus.CounterVec
	PanicsTotal prometheus.Counter

	// 限流指标
	RateLimitBlocks prometheus.Counter
}

// NewMetrics 创建监控指标
func NewMetrics() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "emailbook_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "emailbook_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),

		HTTPRequestSize: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "emailbook_http_request_size_bytes",
			Help:    "HTTP request size in bytes",
			Buckets: prometheus.ExponentialBuckets(128, 4, 6),
		}, []string{"method", "path"}),

		HTTPResponseSize: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "emailbook_http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(128, 4, 6),
		}, []string{"method", "path"}),

		RecordsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "emailbook_records_created_total",
			Help: "Total number of email address records created",
		}),

		RecordsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "emailbook_records_updated_total",
			Help: "Total number of email address records updated",
		}),

		ValidationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "emailbook_validation_failures_total",
			Help: "Total number of validation gate rejections by message",
		}, []string{"message"}),

		ErrorsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "emailbook_errors_total",
			Help: "Total number of errors",
		}, []string{"type", "component"}),

		PanicsTotal: promauto.NewCounter(prometheus.CounterOpts{
			Name: "emailbook_panics_total",
			Help: "Total number of recovered panics",
		}),

		RateLimitBlocks: promauto.NewCounter(prometheus.CounterOpts{
			Name: "emailbook_rate_limit_blocks_total",
			Help: "Total number of requests rejected by the rate limiter",
		}),
	}
}

// RecordHTTPRequest 记录一次 HTTP 请求的指标
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, requestSize, responseSize int64) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.HTTPRequestSize.WithLabelValues(method, path).Observe(float64(requestSize))
	m.HTTPResponseSize.WithLabelValues(method, path).Observe(float64(responseSize))
}

// RecordValidationFailure 记录一次验证门拒绝
func (m *Metrics) RecordValidationFailure(message string) {
	m.ValidationFailures.WithLabelValues(message).Inc()
}

// RecordError 记录一次错误
func (m *Metrics) RecordError(errType, component string) {
	m.ErrorsTotal.WithLabelValues(errType, component).Inc()
}

// RecordPanic 记录一次 panic
func (m *Metrics) RecordPanic() {
	m.PanicsTotal.Inc()
}

// HTTPHandler 返回 Prometheus 指标端点处理器
func (m *Metrics) HTTPHandler() http.Handler {
	return promhttp.Handler()
}
