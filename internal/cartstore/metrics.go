package cartstore

import "github.com/prometheus/client_golang/prometheus"

var (
	mutationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_store_mutations_total",
			Help: "Cart mutations applied, by operation.",
		},
		[]string{"op"},
	)
	corruptSlotsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cart_store_corrupt_slots_total",
			Help: "Cart slots that could not be decoded and were treated as empty.",
		},
	)
	hydrationErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "cart_store_hydration_errors_total",
			Help: "Cart slot reads that failed with a storage error.",
		},
	)
)

func init() {
	prometheus.MustRegister(mutationsTotal, corruptSlotsTotal, hydrationErrorsTotal)
}
