// Package metrics expone contadores Prometheus del marketplace y el endpoint /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/jhoicas/Marketplace-api/internal/application/chat"
	"github.com/jhoicas/Marketplace-api/internal/application/link"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	_ link.Metrics = (*Metrics)(nil)
	_ chat.Metrics = (*Metrics)(nil)
)

// Metrics registro propio (no el global) para poder instanciarlo en tests.
type Metrics struct {
	registry     *prometheus.Registry
	httpReqCnt   *prometheus.CounterVec
	httpDur      *prometheus.HistogramVec
	linkEvents   *prometheus.CounterVec
	messagesSent prometheus.Counter
}

// New registra los colectores bajo namespace.
func New(namespace string) *Metrics {
	r := prometheus.NewRegistry()
	r.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	r.MustRegister(collectors.NewGoCollector())

	m := &Metrics{
		registry: r,
		httpReqCnt: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "http_requests_total", Help: "Peticiones HTTP por método, ruta y status.",
		}, []string{"method", "route", "status"}),
		httpDur: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Name: "http_request_duration_seconds", Help: "Latencia de las peticiones HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		linkEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Name: "link_events_total", Help: "Transiciones de links proveedor-consumidor.",
		}, []string{"event"}),
		messagesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Name: "messages_sent_total", Help: "Mensajes enviados por chat.",
		}),
	}
	r.MustRegister(m.httpReqCnt, m.httpDur, m.linkEvents, m.messagesSent)
	return m
}

// LinkEvent cuenta una transición (requested, approved, rejected).
func (m *Metrics) LinkEvent(event string) {
	m.linkEvents.WithLabelValues(event).Inc()
}

// MessageSent cuenta un mensaje enviado.
func (m *Metrics) MessageSent() {
	m.messagesSent.Inc()
}

// Middleware mide cada petición por ruta registrada (no por path, para acotar cardinalidad).
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		// Las etiquetas quedan guardadas en el registro: no pueden apuntar al buffer de la petición.
		method := utils.CopyString(c.Method())
		route := c.Route().Path
		m.httpReqCnt.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.httpDur.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone el registro en formato Prometheus.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
