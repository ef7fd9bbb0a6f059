package store

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	opsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workspace",
		Subsystem: "store",
		Name:      "operations_total",
		Help:      "Mapper operations by kind, operation and result.",
	}, []string{"kind", "op", "result"})

	keyProbes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "workspace",
		Subsystem: "store",
		Name:      "key_probes_total",
		Help:      "Candidate keys probed while generating identifiers.",
	}, []string{"kind"})
)

func observe(kind Kind, op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	opsTotal.WithLabelValues(kind.String(), op, result).Inc()
}
