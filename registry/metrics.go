package registry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Upgrade paths, used as metric labels.
const (
	pathImmediate = "immediate" // definition present at construction time
	pathDeferred  = "deferred"  // pending element upgraded later
	pathDirect    = "direct"    // constructed through Engine.New
)

type metrics struct {
	definitions   *prometheus.CounterVec
	upgrades      *prometheus.CounterVec
	upgradeErrors prometheus.Counter
	pending       prometheus.Gauge
}

// newMetrics creates the engine's metrics. With a nil Registerer the metrics
// are maintained but not registered anywhere.
func newMetrics(reg prometheus.Registerer) *metrics {
	factory := promauto.With(reg)
	return &metrics{
		definitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scopedreg",
			Subsystem: "registry",
			Name:      "definitions_total",
			Help:      "Total number of custom element definitions",
		}, []string{"scope"}),
		upgrades: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scopedreg",
			Subsystem: "registry",
			Name:      "upgrades_total",
			Help:      "Total number of elements upgraded to a custom element class",
		}, []string{"path"}),
		upgradeErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "scopedreg",
			Subsystem: "registry",
			Name:      "upgrade_errors_total",
			Help:      "Total number of failed upgrades",
		}),
		pending: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "scopedreg",
			Subsystem: "registry",
			Name:      "pending_elements",
			Help:      "Number of elements waiting for a definition",
		}),
	}
}
