package lifecycle

import "github.com/prometheus/client_golang/prometheus"

const (
	outcomeOK       = "ok"
	outcomeRejected = "rejected"
	outcomeError    = "error"
)

var transitions = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "plantya_lifecycle_transitions_total",
		Help: "Resource lifecycle transitions by outcome",
	},
	[]string{"resource", "transition", "outcome"},
)

func init() { prometheus.MustRegister(transitions) }

func observe(resource, transition, outcome string) {
	transitions.WithLabelValues(resource, transition, outcome).Inc()
}
