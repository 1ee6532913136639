// Package metric provides RED (request, error, duration) metrics middleware
// helpers for service implementations.
package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// REDClient is a metrics client for service level instrumentation.
type REDClient struct {
	metrics []metric
}

// New creates a new REDClient.
func New(reg prometheus.Registerer, service string, opts ...ClientOptFn) *REDClient {
	opt := metricOpts{
		namespace: "service",
		service:   service,
	}
	for _, o := range opts {
		o(&opt)
	}

	client := &REDClient{metrics: []metric{
		&counter{
			fn: opt.counterFn(),
			CounterVec: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: opt.namespace,
				Subsystem: opt.serviceName(),
				Name:      "call_total",
				Help:      "Number of calls",
			}, []string{"method"}),
		},
		&counter{
			fn: opt.errCounterFn(),
			CounterVec: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: opt.namespace,
				Subsystem: opt.serviceName(),
				Name:      "error_total",
				Help:      "Number of errors encountered",
			}, []string{"method", "code"}),
		},
		&histogram{
			fn: opt.histogramFn(),
			HistogramVec: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: opt.namespace,
				Subsystem: opt.serviceName(),
				Name:      "duration",
				Help:      "Duration of calls",
				Buckets:   prometheus.ExponentialBuckets(0.001, 5, 7),
			}, []string{"method"}),
		},
	}}

	for _, metric := range client.metrics {
		reg.MustRegister(metric.collector())
	}

	return client
}

// RecFn depicts the recorder function which is returned from a call to
// REDClient.Record.
type RecFn func(err error, opts ...RecordOptFn) error

// Record returns a record fn that is called on any given return err. If an error is encountered
// it will register the err metric. The err is never altered.
func (c *REDClient) Record(method string) RecFn {
	start := time.Now()
	return func(err error, opts ...RecordOptFn) error {
		opt := recordOpt{}
		for _, o := range opts {
			o(&opt)
		}

		for _, metric := range c.metrics {
			metric.record(method, start, err, opt)
		}

		return err
	}
}

type metric interface {
	collector() prometheus.Collector
	record(method string, start time.Time, err error, opt recordOpt)
}

// RecordOptFn is an option to pass in additional information to the recording
// of a metric.
type RecordOptFn func(opt *recordOpt)

// RecordAdditional provides an extended functionality to the mechanism, by
// allowing to pass additional data to the metrics.
func RecordAdditional(props AdditionalProperties) RecordOptFn {
	return func(opt *recordOpt) {
		opt.additionalProps = props
	}
}

type recordOpt struct {
	additionalProps AdditionalProperties
}

// AdditionalProperties carries custom key/value data into metric recorders.
type AdditionalProperties map[string]interface{}

type counter struct {
	fn CountFn
	*prometheus.CounterVec
}

func (c *counter) collector() prometheus.Collector {
	return c.CounterVec
}

func (c *counter) record(method string, start time.Time, err error, opt recordOpt) {
	c.fn(c.CounterVec, method, start, err, opt.additionalProps)
}

type histogram struct {
	fn HistogramFn
	*prometheus.HistogramVec
}

func (h *histogram) collector() prometheus.Collector {
	return h.HistogramVec
}

func (h *histogram) record(method string, start time.Time, err error, opt recordOpt) {
	h.fn(h.HistogramVec, method, start, err, opt.additionalProps)
}
