package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Checkout outcome labels.
const (
	OutcomeCompleted = "completed"
	OutcomeRejected  = "rejected"
	OutcomeFailed    = "failed"
)

// Checkout holds the order-engine collectors.
type Checkout struct {
	outcomes *prometheus.CounterVec
	duration prometheus.Histogram
}

func NewCheckout(reg prometheus.Registerer) *Checkout {
	factory := promauto.With(reg)
	return &Checkout{
		outcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bobapos",
			Subsystem: "checkout",
			Name:      "total",
			Help:      "Checkout invocations by outcome.",
		}, []string{"outcome"}),
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bobapos",
			Subsystem: "checkout",
			Name:      "duration_seconds",
			Help:      "Checkout transaction duration.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}

// Observe is nil-safe so metrics stay optional in tests.
func (c *Checkout) Observe(outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.outcomes.WithLabelValues(outcome).Inc()
	c.duration.Observe(d.Seconds())
}
