package metab

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus instruments the engine updates while
// stepping an environment. All instruments are labeled by environment ID
// so several isolated environments can share one registry.
type Metrics struct {
	registry *prometheus.Registry

	steps              *prometheus.CounterVec
	reactionsExecuted  *prometheus.CounterVec
	reactionsBlocked   *prometheus.CounterVec
	cascadeActivations *prometheus.CounterVec
	metaboliteQuantity *prometheus.GaugeVec
}

// NewMetrics registers the engine instruments on the given registry. A nil
// registry gets a fresh private one.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := &Metrics{
		registry: registry,
		steps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metabol",
			Subsystem: "engine",
			Name:      "steps_total",
			Help:      "Simulation steps executed per environment.",
		}, []string{"environment"}),
		reactionsExecuted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metabol",
			Subsystem: "engine",
			Name:      "reactions_executed_total",
			Help:      "Reactions that completed with a nonzero extent.",
		}, []string{"environment", "reaction"}),
		reactionsBlocked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metabol",
			Subsystem: "engine",
			Name:      "reactions_blocked_total",
			Help:      "Reactions blocked by zero rate or exhausted substrate.",
		}, []string{"environment", "reaction"}),
		cascadeActivations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "metabol",
			Subsystem: "engine",
			Name:      "cascade_activations_total",
			Help:      "Downstream enzymes switched on by reaction cascades.",
		}, []string{"environment"}),
		metaboliteQuantity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "metabol",
			Subsystem: "engine",
			Name:      "metabolite_quantity",
			Help:      "Current quantity of each metabolite pool.",
		}, []string{"environment", "metabolite"}),
	}
	registry.MustRegister(m.steps, m.reactionsExecuted, m.reactionsBlocked, m.cascadeActivations, m.metaboliteQuantity)
	return m
}

// Registry returns the registry the instruments live on, for exposure via
// promhttp.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) recordStep(env EnvironmentID, results []StepResult) {
	if m == nil {
		return
	}
	id := string(env)
	m.steps.WithLabelValues(id).Inc()
	for _, r := range results {
		if r.Blocked {
			m.reactionsBlocked.WithLabelValues(id, r.Reaction).Inc()
			continue
		}
		m.reactionsExecuted.WithLabelValues(id, r.Reaction).Inc()
		if r.CascadeActivations > 0 {
			m.cascadeActivations.WithLabelValues(id).Add(float64(r.CascadeActivations))
		}
	}
}

func (m *Metrics) recordQuantities(env EnvironmentID, metabolites []Metabolite) {
	if m == nil {
		return
	}
	id := string(env)
	for _, mol := range metabolites {
		m.metaboliteQuantity.WithLabelValues(id, mol.Name).Set(mol.Quantity)
	}
}
