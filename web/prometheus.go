package web

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/to404hanga/online_judge_contest/errs"
)

const metricsNamespace = "online_judge_contest"

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Requests total by operation.",
		},
		[]string{"operation", "code", "reason"},
	)
	requestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Request duration in seconds by operation.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation", "code", "reason"},
	)
	updateStatusTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "status",
			Name:      "update_status_total",
			Help:      "UpdateStatus calls by outcome.",
		},
		[]string{"code", "reason", "accept"},
	)
	exportRankingBytes = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "ranking",
			Name:      "export_ranking_bytes",
			Help:      "ExportRanking response size in bytes.",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		},
		[]string{"format"},
	)
	notificationConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: "notification",
			Name:      "connections",
			Help:      "Open notification websocket connections.",
		},
	)
	notificationDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "notification",
			Name:      "dropped_total",
			Help:      "Notifications dropped because the client was too slow.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		requestsTotal,
		requestDurationSeconds,
		updateStatusTotal,
		exportRankingBytes,
		notificationConnections,
		notificationDropped,
	)
}

// observe 记录一次请求的结果与耗时
func observe(operation string, start time.Time, err error) {
	code := statusCode(err)
	reason := errs.Reason(err)
	requestsTotal.WithLabelValues(operation, code, reason).Inc()
	requestDurationSeconds.WithLabelValues(operation, code, reason).Observe(time.Since(start).Seconds())
}

func statusCode(err error) string {
	return strconv.Itoa(errs.HTTPStatus(err))
}
