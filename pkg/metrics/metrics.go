package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics registro Prometheus propio de la API (no usa el registro global).
type Metrics struct {
	registry *prometheus.Registry

	httpReqCnt *prometheus.CounterVec
	httpDur    *prometheus.HistogramVec
	httpInfl   prometheus.Gauge

	ingestReadings *prometheus.CounterVec
	ingestBatchDur prometheus.Histogram
	auditFailures  prometheus.Counter
	reportDur      *prometheus.HistogramVec
	traceCache     *prometheus.CounterVec
}

// New registra los colectores bajo el namespace indicado.
func New(namespace string) *Metrics {
	r := prometheus.NewRegistry()
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		registry: r,
		httpReqCnt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total",
		}, []string{"method", "route", "status"}),
		httpDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds", Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		httpInfl: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Name: "http_requests_inflight",
		}),
		ingestReadings: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "ingest_readings_total",
			Help: "Lecturas IoT procesadas por tipo de dispositivo y resultado.",
		}, []string{"device_type", "result"}),
		ingestBatchDur: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace, Name: "ingest_batch_duration_seconds", Buckets: prometheus.DefBuckets,
		}),
		auditFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "audit_write_failures_total",
		}),
		reportDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "report_generation_duration_seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 40, 60, 120},
		}, []string{"report_type", "result"}),
		traceCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "trace_cache_lookups_total",
		}, []string{"result"}),
	}
	r.MustRegister(m.httpReqCnt, m.httpDur, m.httpInfl)
	r.MustRegister(m.ingestReadings, m.ingestBatchDur, m.auditFailures, m.reportDur, m.traceCache)
	return m
}

// Middleware mide cada petición HTTP. La ruta se toma del patrón registrado
// (/api/factories/:id) para no explotar la cardinalidad con IDs.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		m.httpInfl.Inc()
		start := time.Now()
		err := c.Next()
		m.httpInfl.Dec()

		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Response().StatusCode())
		m.httpReqCnt.WithLabelValues(c.Method(), route, status).Inc()
		m.httpDur.WithLabelValues(c.Method(), route, status).Observe(time.Since(start).Seconds())
		return err
	}
}

// IngestReading cuenta una lectura IoT (result: ok | failed).
func (m *Metrics) IngestReading(deviceType, result string) {
	m.ingestReadings.WithLabelValues(deviceType, result).Inc()
}

// IngestBatchDone registra la duración de un lote.
func (m *Metrics) IngestBatchDone(since time.Time) {
	m.ingestBatchDur.Observe(time.Since(since).Seconds())
}

// AuditFailure cuenta un registro de auditoría que no pudo escribirse.
func (m *Metrics) AuditFailure() {
	m.auditFailures.Inc()
}

// ReportDone registra la duración de una generación de reporte.
func (m *Metrics) ReportDone(reportType, result string, since time.Time) {
	m.reportDur.WithLabelValues(reportType, result).Observe(time.Since(since).Seconds())
}

// TraceCacheLookup cuenta aciertos/fallos de la caché de trazabilidad.
func (m *Metrics) TraceCacheLookup(hit bool) {
	if hit {
		m.traceCache.WithLabelValues("hit").Inc()
		return
	}
	m.traceCache.WithLabelValues("miss").Inc()
}

// Handler expone el registro en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry acceso directo para tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
