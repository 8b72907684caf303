package metrics

import (
	"time"

	"nest/internal/pkg/errs"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "nest"

// Pipeline exports ingestion metrics. A nil *Pipeline records nothing.
type Pipeline struct {
	received   *prometheus.CounterVec
	processed  *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	requeued   prometheus.Counter
	errors     prometheus.Counter
	queueDepth prometheus.Gauge

	notifications *prometheus.CounterVec
}

// NewPipeline registers the pipeline collectors on reg, reusing collectors
// that are already registered.
func NewPipeline(reg prometheus.Registerer) (*Pipeline, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	var (
		p   Pipeline
		err error
	)
	if p.received, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "webhook",
		Name:      "deliveries_received_total",
		Help:      "Webhook events accepted, by stored status.",
	}, []string{"status"})); err != nil {
		return nil, err
	}
	if p.processed, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "worker",
		Name:      "deliveries_processed_total",
		Help:      "Processing attempts, by event kind and resulting status.",
	}, []string{"kind", "status"})); err != nil {
		return nil, err
	}
	if p.duration, err = register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "worker",
		Name:      "process_duration_seconds",
		Help:      "Time to classify and apply one delivery.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"kind"})); err != nil {
		return nil, err
	}
	if p.requeued, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "worker",
		Name:      "deliveries_requeued_total",
		Help:      "Deliveries scheduled for another attempt.",
	})); err != nil {
		return nil, err
	}
	if p.errors, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "worker",
		Name:      "process_errors_total",
		Help:      "Attempts that ended without recording an outcome.",
	})); err != nil {
		return nil, err
	}
	if p.queueDepth, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "worker",
		Name:      "queue_depth",
		Help:      "Deliveries waiting for a worker.",
	})); err != nil {
		return nil, err
	}
	if p.notifications, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "bridge",
		Name:      "notifications_total",
		Help:      "Change notifications dispatched, by channel.",
	}, []string{"channel"})); err != nil {
		return nil, err
	}
	return &p, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errs.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, errs.Wrap(err, "register pipeline metric")
	}
	return c, nil
}

// MustNewPipeline panics when registration fails.
func MustNewPipeline(reg prometheus.Registerer) *Pipeline {
	p, err := NewPipeline(reg)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Pipeline) Received(status string) {
	if p == nil {
		return
	}
	p.received.WithLabelValues(status).Inc()
}

func (p *Pipeline) Processed(kind, status string, d time.Duration) {
	if p == nil {
		return
	}
	p.processed.WithLabelValues(kind, status).Inc()
	p.duration.WithLabelValues(kind).Observe(d.Seconds())
}

func (p *Pipeline) Requeued() {
	if p == nil {
		return
	}
	p.requeued.Inc()
}

func (p *Pipeline) ProcessError() {
	if p == nil {
		return
	}
	p.errors.Inc()
}

func (p *Pipeline) QueueDepth(n int) {
	if p == nil {
		return
	}
	p.queueDepth.Set(float64(n))
}

func (p *Pipeline) Notification(channel string) {
	if p == nil {
		return
	}
	p.notifications.WithLabelValues(channel).Inc()
}
