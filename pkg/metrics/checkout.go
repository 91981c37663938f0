package metrics

import "github.com/prometheus/client_golang/prometheus"

// CheckoutMetrics counts WhatsApp handoff outcomes.
type CheckoutMetrics struct {
	attempts  prometheus.Counter
	rejected  prometheus.Counter
	failures  prometheus.Counter
	succeeded prometheus.Counter
}

// NewCheckoutMetrics registers the checkout counters on the provided registerer.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}
	attempts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_attempts_total",
		Help: "Checkout handoffs attempted.",
	})
	rejected := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_rejected_total",
		Help: "Checkouts rejected before handoff (empty cart, missing number).",
	})
	failures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_failures_total",
		Help: "Handoffs that failed to open the messaging link.",
	})
	succeeded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_succeeded_total",
		Help: "Handoffs that completed and cleared the cart.",
	})
	reg.MustRegister(attempts, rejected, failures, succeeded)
	return &CheckoutMetrics{
		attempts:  attempts,
		rejected:  rejected,
		failures:  failures,
		succeeded: succeeded,
	}
}

func (c *CheckoutMetrics) IncAttempt() {
	if c == nil || c.attempts == nil {
		return
	}
	c.attempts.Inc()
}

func (c *CheckoutMetrics) IncRejected() {
	if c == nil || c.rejected == nil {
		return
	}
	c.rejected.Inc()
}

func (c *CheckoutMetrics) IncFailure() {
	if c == nil || c.failures == nil {
		return
	}
	c.failures.Inc()
}

func (c *CheckoutMetrics) IncSuccess() {
	if c == nil || c.succeeded == nil {
		return
	}
	c.succeeded.Inc()
}
