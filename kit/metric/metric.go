package metric

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/pulseboard/pulseboard/kit/platform/errors"
)

type (
	// CountFn is a counter function to increment a prometheus CounterVec.
	CountFn func(vec *prometheus.CounterVec, method string, start time.Time, err error, additionalProps AdditionalProperties)

	// HistogramFn is a histogram function to observe into a prometheus HistogramVec.
	HistogramFn func(vec *prometheus.HistogramVec, method string, start time.Time, err error, additionalProps AdditionalProperties)
)

// ClientOptFn is an option used by a metric middleware.
type ClientOptFn func(*metricOpts)

type metricOpts struct {
	namespace     string
	service       string
	serviceSuffix string
	counterMetric CountFn
	errMetric     CountFn
	histoMetric   HistogramFn
}

func (o metricOpts) serviceName() string {
	if o.serviceSuffix != "" {
		return o.service + "_" + o.serviceSuffix
	}
	return o.service
}

func (o metricOpts) counterFn() CountFn {
	if o.counterMetric != nil {
		return o.counterMetric
	}
	return func(vec *prometheus.CounterVec, method string, start time.Time, err error, additionalProps AdditionalProperties) {
		vec.With(prometheus.Labels{"method": method}).Inc()
	}
}

func (o metricOpts) errCounterFn() CountFn {
	if o.errMetric != nil {
		return o.errMetric
	}
	return func(vec *prometheus.CounterVec, method string, start time.Time, err error, additionalProps AdditionalProperties) {
		if err == nil {
			return
		}
		vec.With(prometheus.Labels{
			"method": method,
			"code":   errors.ErrorCode(err),
		}).Inc()
	}
}

func (o metricOpts) histogramFn() HistogramFn {
	if o.histoMetric != nil {
		return o.histoMetric
	}
	return func(vec *prometheus.HistogramVec, method string, start time.Time, err error, additionalProps AdditionalProperties) {
		vec.With(prometheus.Labels{"method": method}).Observe(time.Since(start).Seconds())
	}
}

// WithSuffix returns a metric option that applies a suffix to the service
// name of the metric.
func WithSuffix(suffix string) ClientOptFn {
	return func(opts *metricOpts) {
		opts.serviceSuffix = suffix
	}
}

// ApplyMetricOpts applies the options to a new opts struct.
func ApplyMetricOpts(opts ...ClientOptFn) *metricOpts {
	o := metricOpts{}
	for _, opt := range opts {
		opt(&o)
	}
	return &o
}

// ApplySuffix returns the prefix with the stored suffix applied, falling back
// to the prefix alone when no suffix was configured.
func (o *metricOpts) ApplySuffix(prefix string) string {
	if o.serviceSuffix != "" {
		return prefix + "_" + o.serviceSuffix
	}
	return prefix
}
